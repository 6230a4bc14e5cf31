package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// CartService manages the storefront cart. Lines are keyed by product, size,
// and color; adding an existing combination merges quantities. Stock is
// checked against the catalog on every add, but is only deducted when the
// cart is checked out.
type CartService interface {
	Items(ctx context.Context) []CartItem
	// Add puts qty units of the given variant in the cart. It returns
	// ErrOutOfStock when the (color, size) variant is missing or empty, and
	// ErrInsufficientStock when the merged line would exceed its stock.
	Add(ctx context.Context, productID, size, color string, qty int) error
	// SetQuantity replaces a line's quantity; zero or less removes the line.
	SetQuantity(ctx context.Context, productID, size, color string, qty int) error
	Remove(ctx context.Context, productID, size, color string) error
	// Total is the plain sum of line totals, before tax and delivery.
	Total(ctx context.Context) decimal.Decimal
	Clear(ctx context.Context) error
}

type cartService struct {
	engine *Engine
}

func NewCartService(engine *Engine) CartService {
	return &cartService{engine: engine}
}

func (s *cartService) Items(ctx context.Context) []CartItem {
	var out []CartItem
	s.engine.View(func(st *State) {
		out = append(out, st.Cart...)
	})
	return out
}

func (s *cartService) Add(ctx context.Context, productID, size, color string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		var product *Product
		for i := range st.Products {
			if st.Products[i].ID == productID {
				product = &st.Products[i]
				break
			}
		}
		if product == nil {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		available := product.VariantStock(color, size)
		if !product.HasVariant(color, size) || available <= 0 {
			return nil, ErrOutOfStock
		}

		for i := range st.Cart {
			line := &st.Cart[i]
			if line.ProductID == productID && line.Size == size && line.Color == color {
				if line.Quantity+qty > available {
					return nil, ErrInsufficientStock
				}
				line.Quantity += qty
				return []string{KeyCart}, nil
			}
		}

		if qty > available {
			return nil, ErrInsufficientStock
		}
		st.Cart = append(st.Cart, CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.EffectivePrice(),
			Size:      size,
			Color:     color,
			Quantity:  qty,
			Image:     product.ImageFor(color),
		})
		return []string{KeyCart}, nil
	})
}

func (s *cartService) SetQuantity(ctx context.Context, productID, size, color string, qty int) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Cart {
			line := &st.Cart[i]
			if line.ProductID != productID || line.Size != size || line.Color != color {
				continue
			}
			if qty <= 0 {
				st.Cart = append(st.Cart[:i], st.Cart[i+1:]...)
				return []string{KeyCart}, nil
			}
			for j := range st.Products {
				if st.Products[j].ID == productID && qty > st.Products[j].VariantStock(color, size) {
					return nil, ErrInsufficientStock
				}
			}
			line.Quantity = qty
			return []string{KeyCart}, nil
		}
		return nil, fmt.Errorf("cart line %s/%s/%s: %w", productID, size, color, ErrNotFound)
	})
}

func (s *cartService) Remove(ctx context.Context, productID, size, color string) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Cart {
			line := st.Cart[i]
			if line.ProductID == productID && line.Size == size && line.Color == color {
				st.Cart = append(st.Cart[:i], st.Cart[i+1:]...)
				return []string{KeyCart}, nil
			}
		}
		return nil, fmt.Errorf("cart line %s/%s/%s: %w", productID, size, color, ErrNotFound)
	})
}

func (s *cartService) Total(ctx context.Context) decimal.Decimal {
	total := decimal.Zero
	s.engine.View(func(st *State) {
		for _, line := range st.Cart {
			total = total.Add(line.LineTotal())
		}
	})
	return total
}

func (s *cartService) Clear(ctx context.Context) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		if len(st.Cart) == 0 {
			return nil, nil
		}
		st.Cart = nil
		return []string{KeyCart}, nil
	})
}
