package store

import (
	"context"
	"iter"
	"time"
)

// Record is the durable view of a username.
type Record struct {
	Username  string    `json:"username" yaml:"username"`
	Claimed   bool      `json:"claimed" yaml:"claimed"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Store persists one record per username. Implementations are safe for
// concurrent use.
type Store interface {
	// Ensure creates the row unclaimed if missing and returns it. Concurrent
	// calls for one username leave exactly one row.
	Ensure(ctx context.Context, username string) (Record, error)
	Get(ctx context.Context, username string) (Record, error)
	// SetClaimed returns ErrNotFound when the row does not exist.
	SetClaimed(ctx context.Context, username string, claimed bool) error
	// ResetAllToFree clears every claim and reports how many rows changed.
	ResetAllToFree(ctx context.Context) (int64, error)
	// ListAll yields rows ordered by username. The sequence is restartable.
	ListAll(ctx context.Context) iter.Seq2[Record, error]
	Ping(ctx context.Context) error
	Close() error
}
