package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"shopfront/internal/store"
)

// Engine owns the authoritative State for this process. Every mutation runs
// under the write lock against the in-memory state first; the collections it
// touched are then persisted as whole snapshots. Persistence failures are
// logged and do not roll the mutation back, so the in-memory state stays the
// source of truth for the life of the process.
type Engine struct {
	mu    sync.RWMutex
	state State
	store store.Store
}

func NewEngine(st store.Store) *Engine {
	return &Engine{store: st}
}

// Load hydrates the state from the store. Keys that have never been written
// keep their zero value; the caller decides whether to seed afterwards.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, key := range AllKeys() {
		env, err := e.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return fmt.Errorf("load collection %q: %w", key, err)
		}
		if err := e.state.decodeCollection(key, env.Data); err != nil {
			return fmt.Errorf("load collection %q: %w", key, err)
		}
	}
	return nil
}

// View runs fn with read access to the state. fn must not retain references
// to slices or maps past its return.
func (e *Engine) View(fn func(s *State)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(&e.state)
}

// Update runs fn with exclusive access to the state. fn returns the
// collection keys it modified; on success those collections are written
// through to the store. If fn errors, nothing is persisted and the error is
// returned as-is so sentinel checks keep working.
//
// A failed write-through is logged rather than surfaced: the mutation already
// happened in memory and the snapshot will be rewritten on the next touch of
// the same key.
func (e *Engine) Update(ctx context.Context, fn func(s *State) ([]string, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys, err := fn(&e.state)
	if err != nil {
		return err
	}
	for _, key := range keys {
		data, err := e.state.encodeCollection(key)
		if err != nil {
			log.Printf("persist %q: %v", key, err)
			continue
		}
		if err := e.store.Put(ctx, key, data); err != nil {
			log.Printf("persist %q: %v", key, err)
		}
	}
	return nil
}

// ReplaceCollection swaps in a snapshot written by another instance. Used by
// the replicator only; the data is trusted as-is, last writer wins.
func (e *Engine) ReplaceCollection(key string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.decodeCollection(key, data)
}

// Origin returns the store origin this engine writes under.
func (e *Engine) Origin() string { return e.store.Origin() }
