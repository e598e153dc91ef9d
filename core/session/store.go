package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is the persisted form of a session. The token itself is never
// stored; stores are addressed by a key derived from it.
type Record struct {
	ID        uuid.UUID
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Store defines the persistence interface for sessions.
// Implementations must be safe for concurrent use and must expire records
// natively at Record.ExpiresAt; the core runs no sweeper.
type Store interface {
	// Get returns ErrNotFound when no record exists for key, ErrExpired when
	// the record is held past Record.ExpiresAt, and an error wrapping
	// ErrStoreUnavailable on infrastructure failure.
	Get(ctx context.Context, key string) (Record, error)
	Save(ctx context.Context, key string, rec Record) error
	// Delete is idempotent: deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
