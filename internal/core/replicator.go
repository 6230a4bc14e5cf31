package core

import (
	"context"
	"errors"
	"log"

	"shopfront/internal/store"
)

// Replicator keeps this instance's state in sync with snapshots written by
// other instances sharing the same store. It consumes the store's change
// feed, skips events for its own writes, and swaps in the latest snapshot of
// each changed collection. Reconciliation is last writer wins per
// collection.
type Replicator struct {
	engine *Engine
	store  store.Store
}

func NewReplicator(engine *Engine, st store.Store) *Replicator {
	return &Replicator{engine: engine, store: st}
}

// Run blocks consuming the change feed until ctx is cancelled or the feed
// closes. Individual event failures are logged and skipped so one bad
// snapshot cannot stall reconciliation.
func (r *Replicator) Run(ctx context.Context) error {
	events, err := r.store.Watch(ctx)
	if err != nil {
		return err
	}
	own := r.store.Origin()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Origin == own {
				continue
			}
			r.apply(ctx, ev.Key)
		}
	}
}

func (r *Replicator) apply(ctx context.Context, key string) {
	env, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("replicate %q: %v", key, err)
		}
		return
	}
	// The snapshot may have been rewritten by this instance between the
	// event and the read; applying our own latest write is harmless.
	if err := r.engine.ReplaceCollection(key, env.Data); err != nil {
		log.Printf("replicate %q: %v", key, err)
	}
}
