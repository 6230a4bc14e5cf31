package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry tracks the on-hand quantity of one (color, size) variant.
type StockEntry struct {
	Color    string `json:"color" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// Product is a catalog entry. Stock is tracked per variant: every (color,
// size) pair a buyer can select carries exactly one StockEntry.
type Product struct {
	ID          string              `json:"id"` // SOLEA-### assigned at creation
	Name        string              `json:"name"`
	Brand       string              `json:"brand"`
	Category    string              `json:"category"` // Men, Women, Kids
	Subcategory string              `json:"subcategory,omitempty"`
	Price       decimal.Decimal     `json:"price"`
	SalePrice   *decimal.Decimal    `json:"sale_price,omitempty"`
	Sizes       []string            `json:"sizes"`
	Colors      []string            `json:"colors"`
	Stock       []StockEntry        `json:"stock"`
	Description string              `json:"description"`
	Images      map[string][]string `json:"images,omitempty"` // color to ordered image URLs
	VideoURL    string              `json:"video_url,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// OnSale reports whether a discounted price is set.
func (p *Product) OnSale() bool { return p.SalePrice != nil }

// EffectivePrice is the price a buyer pays right now: the sale price when
// one is set, the list price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// HasVariant reports whether the (color, size) pair is stocked at all.
func (p *Product) HasVariant(color, size string) bool {
	for i := range p.Stock {
		if p.Stock[i].Color == color && p.Stock[i].Size == size {
			return true
		}
	}
	return false
}

// VariantStock returns the quantity on hand for one variant, zero when the
// pair is not stocked.
func (p *Product) VariantStock(color, size string) int {
	for i := range p.Stock {
		if p.Stock[i].Color == color && p.Stock[i].Size == size {
			return p.Stock[i].Quantity
		}
	}
	return 0
}

// ImageFor returns the first image for a color, falling back to the first
// image of any color so carts always have a thumbnail.
func (p *Product) ImageFor(color string) string {
	if urls := p.Images[color]; len(urls) > 0 {
		return urls[0]
	}
	for _, c := range p.Colors {
		if urls := p.Images[c]; len(urls) > 0 {
			return urls[0]
		}
	}
	return ""
}

// Clone returns a copy sharing no slice or map storage with the receiver, so
// it can be read after the engine's lock is released while stock adjustments
// keep mutating the authoritative entry in place.
func (p *Product) Clone() Product {
	cp := *p
	cp.Sizes = append([]string(nil), p.Sizes...)
	cp.Colors = append([]string(nil), p.Colors...)
	cp.Stock = append([]StockEntry(nil), p.Stock...)
	if p.Images != nil {
		cp.Images = make(map[string][]string, len(p.Images))
		for color, urls := range p.Images {
			cp.Images[color] = append([]string(nil), urls...)
		}
	}
	return cp
}

// ProductInput is the payload for creating or updating a product. The ID and
// creation timestamp are assigned by the catalog service; the stock table is
// normalized so every (color, size) pair ends up with exactly one entry.
type ProductInput struct {
	Name        string              `json:"name" validate:"required"`
	Brand       string              `json:"brand" validate:"required"`
	Category    string              `json:"category" validate:"required,oneof=Men Women Kids"`
	Subcategory string              `json:"subcategory"`
	Price       decimal.Decimal     `json:"price"`
	SalePrice   *decimal.Decimal    `json:"sale_price"`
	Sizes       []string            `json:"sizes" validate:"required,min=1"`
	Colors      []string            `json:"colors" validate:"required,min=1"`
	Stock       []StockEntry        `json:"stock" validate:"dive"`
	Description string              `json:"description"`
	Images      map[string][]string `json:"images"`
	VideoURL    string              `json:"video_url"`
}

// normalizeStock returns one entry per (color, size) pair in color-major
// order, taking quantities from in where a matching pair is present and
// zero otherwise. Entries for pairs outside colors x sizes are dropped.
func normalizeStock(colors, sizes []string, in []StockEntry) []StockEntry {
	out := make([]StockEntry, 0, len(colors)*len(sizes))
	for _, c := range colors {
		for _, s := range sizes {
			qty := 0
			for i := range in {
				if in[i].Color == c && in[i].Size == s {
					qty = in[i].Quantity
					break
				}
			}
			out = append(out, StockEntry{Color: c, Size: s, Quantity: qty})
		}
	}
	return out
}

// Review is a customer product review. Rating is 1 to 5 stars.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
