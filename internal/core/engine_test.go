package core_test

import (
	"context"
	"testing"

	"shopfront/internal/core"
	"shopfront/internal/store"
)

func TestEngine_StateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	engine := core.NewEngine(st)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	orders := core.NewOrderService(engine)

	p := addProduct(t, catalog, "Runner Pro", 1000, 10)
	if err := cart.Add(ctx, p.ID, "42", "Black", 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	placed, err := orders.PlaceOrder(ctx, testCustomer(), core.PaymentBank, "")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	// A fresh engine over the same store sees everything, typed.
	reloaded := core.NewEngine(st)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	orders2 := core.NewOrderService(reloaded)
	catalog2 := core.NewCatalogService(reloaded)

	got, err := orders2.Get(ctx, placed.ID)
	if err != nil {
		t.Fatalf("get order after reload: %v", err)
	}
	if got.Total.String() != "2500" {
		t.Errorf("total after reload = %s, want 2500", got.Total)
	}
	if got.PlacedAt.IsZero() {
		t.Error("PlacedAt lost its value across reload")
	}
	if got := variantStock(t, catalog2, p.ID, "42"); got != 8 {
		t.Errorf("stock after reload = %d, want 8", got)
	}

	// Counters reload too, so IDs keep counting instead of restarting.
	next := addProduct(t, core.NewCatalogService(reloaded), "Court Classic", 1800, 3)
	if next.ID != "SOLEA-002" {
		t.Errorf("ID after reload = %s, want SOLEA-002", next.ID)
	}
}

func TestEngine_LoadEmptyStore(t *testing.T) {
	engine := core.NewEngine(store.NewMemoryStore())
	if err := engine.Load(context.Background()); err != nil {
		t.Fatalf("load empty store: %v", err)
	}
}
