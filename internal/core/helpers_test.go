package core_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"shopfront/internal/core"
	"shopfront/internal/store"
)

func newEngine(t *testing.T) *core.Engine {
	t.Helper()
	return core.NewEngine(store.NewMemoryStore())
}

// addProduct creates a black-only product stocked with qty units in each of
// sizes 41 and 42.
func addProduct(t *testing.T, catalog core.CatalogService, name string, price int64, qty int) *core.Product {
	t.Helper()
	p, err := catalog.Add(context.Background(), core.ProductInput{
		Name:     name,
		Brand:    "Servis",
		Category: "Men",
		Price:    decimal.NewFromInt(price),
		Sizes:    []string{"41", "42"},
		Colors:   []string{"Black"},
		Stock: []core.StockEntry{
			{Color: "Black", Size: "41", Quantity: qty},
			{Color: "Black", Size: "42", Quantity: qty},
		},
	})
	if err != nil {
		t.Fatalf("add product %s: %v", name, err)
	}
	return p
}

// variantStock re-reads the product and returns the Black variant's quantity
// for one size.
func variantStock(t *testing.T, catalog core.CatalogService, id, size string) int {
	t.Helper()
	p, err := catalog.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get product %s: %v", id, err)
	}
	return p.VariantStock("Black", size)
}

func testCustomer() core.Customer {
	return core.Customer{
		FullName: "Ayesha Khan",
		Address:  "House 12, Gulberg III, Lahore",
		Mobile:   "0300-1234567",
		Email:    "ayesha@example.com",
	}
}
