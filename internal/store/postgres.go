// Package store provides chat history storage backends for FitQuest.
//
// This file implements the PostgreSQL-backed chat log.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "embed"

	"github.com/fabianfernandess/FitQuest/internal/models"
	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists the chat log in a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store with the given DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// AddMessage appends a chat message to the log.
func (s *PostgresStore) AddMessage(msg models.ChatMessage) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid chat message: %w", err)
	}
	replyJSON, err := marshalReply(msg.Reply)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO chat_messages (id, user_id, sender, text, reply_json, time) VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.UserID, string(msg.Sender), msg.Text, replyJSON, msg.Time,
	)
	if err != nil {
		slog.Error("PostgresStore AddMessage failed", "error", err, "user", msg.UserID)
		return fmt.Errorf("failed to insert chat message for %s: %w", msg.UserID, err)
	}
	slog.Debug("PostgresStore AddMessage succeeded", "user", msg.UserID, "sender", msg.Sender)
	return nil
}

// GetMessages returns the user's chat log in insertion order. Ordering by
// seq rather than time keeps messages inserted within the same second in
// the order they arrived.
func (s *PostgresStore) GetMessages(userID string) ([]models.ChatMessage, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, sender, text, reply_json, time FROM chat_messages WHERE user_id = $1 ORDER BY seq`,
		userID,
	)
	if err != nil {
		slog.Error("PostgresStore GetMessages query failed", "error", err, "user", userID)
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
