package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopfront/internal/store"
)

func TestMemoryStore_GetPutRevisions(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	if _, err := st.Get(ctx, "products"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get unwritten key: err = %v, want ErrNotFound", err)
	}

	if err := st.Put(ctx, "products", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Put(ctx, "products", []byte(`[{"id":"SOLEA-001"}]`)); err != nil {
		t.Fatalf("put again: %v", err)
	}

	env, err := st.Get(ctx, "products")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if env.Rev != 2 {
		t.Errorf("rev = %d, want 2", env.Rev)
	}
	if env.Origin != st.Origin() {
		t.Errorf("origin = %s, want %s", env.Origin, st.Origin())
	}
	if string(env.Data) != `[{"id":"SOLEA-001"}]` {
		t.Errorf("data = %s", env.Data)
	}
}

func TestMemoryStore_WatchSeesAttachedWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := store.NewMemoryStore()
	other := root.Attach()
	if root.Origin() == other.Origin() {
		t.Fatal("attached handle shares the origin of its root")
	}

	events, err := root.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := other.Put(ctx, "orders", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Key != "orders" || ev.Origin != other.Origin() {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for write from attached handle")
	}

	// Data written through one handle is visible through the other.
	if _, err := root.Get(ctx, "orders"); err != nil {
		t.Errorf("get through root handle: %v", err)
	}
}

func TestMemoryStore_WatchClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	st := store.NewMemoryStore()

	events, err := st.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("received event after cancel, want closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
