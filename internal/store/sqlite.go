// Package store provides chat history storage backends for FitQuest.
//
// This file implements the SQLite-backed chat log.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/fabianfernandess/FitQuest/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore persists the chat log in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN. The DSN is
// a file path to the database file; its directory is created if missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// AddMessage appends a chat message to the log.
func (s *SQLiteStore) AddMessage(msg models.ChatMessage) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid chat message: %w", err)
	}
	replyJSON, err := marshalReply(msg.Reply)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO chat_messages (id, user_id, sender, text, reply_json, time) VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.UserID, string(msg.Sender), msg.Text, replyJSON, msg.Time,
	)
	if err != nil {
		slog.Error("SQLiteStore AddMessage failed", "error", err, "user", msg.UserID)
		return fmt.Errorf("failed to insert chat message for %s: %w", msg.UserID, err)
	}
	slog.Debug("SQLiteStore AddMessage succeeded", "user", msg.UserID, "sender", msg.Sender)
	return nil
}

// GetMessages returns the user's chat log in insertion order. Ordering by
// seq rather than time keeps messages inserted within the same second in
// the order they arrived.
func (s *SQLiteStore) GetMessages(userID string) ([]models.ChatMessage, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, sender, text, reply_json, time FROM chat_messages WHERE user_id = ? ORDER BY seq`,
		userID,
	)
	if err != nil {
		slog.Error("SQLiteStore GetMessages query failed", "error", err, "user", userID)
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
