package core_test

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/core"
	"shopfront/internal/store"
)

func TestReplicator_AppliesRemoteWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Two engines over the same durable store, as if two instances of the
	// service were running side by side.
	storeA := store.NewMemoryStore()
	storeB := storeA.Attach()

	engineA := core.NewEngine(storeA)
	engineB := core.NewEngine(storeB)
	catalogA := core.NewCatalogService(engineA)
	catalogB := core.NewCatalogService(engineB)

	go func() {
		_ = core.NewReplicator(engineB, storeB).Run(ctx)
	}()
	// Let the watcher register before writing.
	time.Sleep(10 * time.Millisecond)

	addProduct(t, catalogA, "Runner Pro", 2500, 10)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if list := catalogB.List(ctx); len(list) == 1 {
			if list[0].ID != "SOLEA-001" || list[0].VariantStock("Black", "42") != 10 {
				t.Fatalf("replicated product = %+v", list[0])
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("instance B never saw the product written by instance A")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestReplicator_SkipsOwnWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := store.NewMemoryStore()
	engine := core.NewEngine(st)
	catalog := core.NewCatalogService(engine)

	go func() {
		_ = core.NewReplicator(engine, st).Run(ctx)
	}()
	time.Sleep(10 * time.Millisecond)

	addProduct(t, catalog, "Runner Pro", 2500, 10)
	time.Sleep(50 * time.Millisecond)

	// The state must still hold exactly what was written; a replicator that
	// reacted to its own origin would at worst clobber newer state, so the
	// observable contract is simply that nothing changed.
	if list := catalog.List(ctx); len(list) != 1 {
		t.Fatalf("products = %+v, want exactly one", list)
	}
}
