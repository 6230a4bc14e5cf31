// Package store provides the durable per-key snapshot store behind the
// in-memory application state. Each logical collection is serialized as a
// whole under one key; backends additionally expose a change feed so other
// process instances can reconcile snapshots they did not write themselves.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Event describes a snapshot write observed on the change feed.
// Origin identifies the writing process so consumers can skip their own writes.
type Event struct {
	Key    string
	Origin string
}

// Envelope wraps every persisted snapshot. Rev increments per write of the
// key; it is recorded for audit and leaves room for optimistic concurrency,
// but Put is last-writer-wins by design.
type Envelope struct {
	Rev       int64           `json:"rev"`
	Origin    string          `json:"origin"`
	UpdatedAt time.Time       `json:"updated_at"`
	Data      json.RawMessage `json:"data"`
}

// Store is a durable per-key snapshot store with a change feed.
type Store interface {
	// Get returns the envelope stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Envelope, error)

	// Put replaces the snapshot under key with data, bumping the revision.
	Put(ctx context.Context, key string, data []byte) error

	// Watch returns a channel of change events for all keys. The channel is
	// closed when ctx is cancelled. Events for writes made through this Store
	// instance carry its own Origin and are typically filtered by the caller.
	Watch(ctx context.Context) (<-chan Event, error)

	// Origin returns the identifier this instance stamps on its writes.
	Origin() string

	Close() error
}
