// Package store provides chat history storage backends for FitQuest.
//
// The chat log is append-only per user. An in-memory store backs tests and
// single-process deployments; SQLite and PostgreSQL stores provide
// persistence.
package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fabianfernandess/FitQuest/internal/models"
)

// Store is the persistence capability the API layer needs: append a message
// and read a user's ordered log back.
type Store interface {
	AddMessage(msg models.ChatMessage) error
	GetMessages(userID string) ([]models.ChatMessage, error)
	Close() error
}

// Opts holds configuration options for storage backends.
type Opts struct {
	DSN string // database connection string
}

// Option defines a configuration option for a storage backend.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// DetectDSNType reports "postgres" for PostgreSQL-style DSNs and "sqlite"
// for everything else (file paths).
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	// Key-value DSNs like "host=... dbname=..." are also Postgres.
	if strings.Contains(dsn, "host=") || strings.Contains(dsn, "dbname=") {
		return "postgres"
	}
	return "sqlite"
}

// InMemoryStore is a mutex-guarded in-memory chat log.
type InMemoryStore struct {
	mu       sync.Mutex
	messages map[string][]models.ChatMessage
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{messages: make(map[string][]models.ChatMessage)}
}

// AddMessage appends a message to the user's log.
func (s *InMemoryStore) AddMessage(msg models.ChatMessage) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid chat message: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[msg.UserID] = append(s.messages[msg.UserID], msg)
	return nil
}

// GetMessages returns a copy of the user's log in append order.
func (s *InMemoryStore) GetMessages(userID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := s.messages[userID]
	out := make([]models.ChatMessage, len(log))
	copy(out, log)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
