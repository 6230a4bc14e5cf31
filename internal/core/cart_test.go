package core_test

import (
	"context"
	"errors"
	"testing"

	"shopfront/internal/core"
)

func TestCart_AddMergesMatchingLines(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	ctx := context.Background()

	p := addProduct(t, catalog, "Runner Pro", 2000, 10)

	if err := cart.Add(ctx, p.ID, "42", "Black", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.Add(ctx, p.ID, "42", "Black", 2); err != nil {
		t.Fatalf("add again: %v", err)
	}
	// Different size is its own line.
	if err := cart.Add(ctx, p.ID, "41", "Black", 1); err != nil {
		t.Fatalf("add other size: %v", err)
	}

	items := cart.Items(ctx)
	if len(items) != 2 {
		t.Fatalf("lines = %d, want 2", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("merged quantity = %d, want 3", items[0].Quantity)
	}

	if got := cart.Total(ctx); got.String() != "8000" {
		t.Errorf("total = %s, want 8000", got)
	}
}

func TestCart_StockLimits(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	ctx := context.Background()

	inStock := addProduct(t, catalog, "Runner Pro", 2000, 2)
	soldOut := addProduct(t, catalog, "Court Classic", 1800, 0)

	tests := []struct {
		name    string
		id      string
		qty     int
		wantErr error
	}{
		{"sold out product", soldOut.ID, 1, core.ErrOutOfStock},
		{"more than stock", inStock.ID, 3, core.ErrInsufficientStock},
		{"unknown product", "SOLEA-999", 1, core.ErrNotFound},
		{"within stock", inStock.ID, 2, nil},
		{"merge beyond stock", inStock.ID, 1, core.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cart.Add(ctx, tt.id, "42", "Black", tt.qty)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("add: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// A (color, size) pair the product does not stock reads as out of stock.
	if err := cart.Add(ctx, inStock.ID, "45", "Black", 1); !errors.Is(err, core.ErrOutOfStock) {
		t.Errorf("unknown variant: err = %v, want ErrOutOfStock", err)
	}
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	ctx := context.Background()

	p := addProduct(t, catalog, "Runner Pro", 2000, 5)
	if err := cart.Add(ctx, p.ID, "42", "Black", 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := cart.SetQuantity(ctx, p.ID, "42", "Black", 4); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if items := cart.Items(ctx); items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", items[0].Quantity)
	}

	if err := cart.SetQuantity(ctx, p.ID, "42", "Black", 9); !errors.Is(err, core.ErrInsufficientStock) {
		t.Errorf("set beyond stock: err = %v, want ErrInsufficientStock", err)
	}

	// Zero quantity drops the line.
	if err := cart.SetQuantity(ctx, p.ID, "42", "Black", 0); err != nil {
		t.Fatalf("set zero: %v", err)
	}
	if items := cart.Items(ctx); len(items) != 0 {
		t.Errorf("cart = %+v, want empty", items)
	}

	if err := cart.Remove(ctx, p.ID, "42", "Black"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("remove missing line: err = %v, want ErrNotFound", err)
	}
}

func TestCart_Clear(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	ctx := context.Background()

	p := addProduct(t, catalog, "Runner Pro", 2000, 5)
	if err := cart.Add(ctx, p.ID, "42", "Black", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cart.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if items := cart.Items(ctx); len(items) != 0 {
		t.Errorf("cart = %+v, want empty", items)
	}
	// Clearing an empty cart is fine.
	if err := cart.Clear(ctx); err != nil {
		t.Errorf("clear empty: %v", err)
	}
}
