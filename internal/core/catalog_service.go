package core

import (
	"context"
	"fmt"
	"time"
)

// CatalogService manages the product catalog, per-variant stock, and
// customer reviews.
type CatalogService interface {
	List(ctx context.Context) []Product
	Get(ctx context.Context, id string) (*Product, error)
	// Add assigns the next SOLEA-### ID and stamps the creation time.
	Add(ctx context.Context, in ProductInput) (*Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error

	// AdjustStock moves one (color, size) variant's quantity by delta. An
	// unknown product or variant is a silent no-op so order-lifecycle stock
	// effects survive catalog edits. Quantities are not clamped; callers
	// check availability before decrementing.
	AdjustStock(ctx context.Context, id, color, size string, delta int) error

	AddReview(ctx context.Context, productID, author string, rating int, comment string) (*Review, error)
	ListReviews(ctx context.Context, productID string) []Review
}

type catalogService struct {
	engine *Engine
}

func NewCatalogService(engine *Engine) CatalogService {
	return &catalogService{engine: engine}
}

// List and Get hand out clones: the authoritative entries keep having their
// stock mutated in place under the engine's lock, and callers marshal the
// returned products outside it.
func (s *catalogService) List(ctx context.Context) []Product {
	var out []Product
	s.engine.View(func(st *State) {
		out = make([]Product, 0, len(st.Products))
		for i := range st.Products {
			out = append(out, st.Products[i].Clone())
		}
	})
	return out
}

func (s *catalogService) Get(ctx context.Context, id string) (*Product, error) {
	var found *Product
	s.engine.View(func(st *State) {
		for i := range st.Products {
			if st.Products[i].ID == id {
				cp := st.Products[i].Clone()
				found = &cp
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return found, nil
}

func (s *catalogService) Add(ctx context.Context, in ProductInput) (*Product, error) {
	var created Product
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		st.Counters.Product++
		created = Product{
			ID:          fmt.Sprintf("SOLEA-%03d", st.Counters.Product),
			Name:        in.Name,
			Brand:       in.Brand,
			Category:    in.Category,
			Subcategory: in.Subcategory,
			Price:       in.Price,
			SalePrice:   in.SalePrice,
			Sizes:       in.Sizes,
			Colors:      in.Colors,
			Stock:       normalizeStock(in.Colors, in.Sizes, in.Stock),
			Description: in.Description,
			Images:      in.Images,
			VideoURL:    in.VideoURL,
			CreatedAt:   time.Now().UTC(),
		}
		st.Products = append(st.Products, created)
		created = created.Clone()
		return []string{KeyProducts, KeyCounters}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *catalogService) Update(ctx context.Context, id string, in ProductInput) (*Product, error) {
	var updated Product
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Products {
			if st.Products[i].ID != id {
				continue
			}
			p := &st.Products[i]
			p.Name = in.Name
			p.Brand = in.Brand
			p.Category = in.Category
			p.Subcategory = in.Subcategory
			p.Price = in.Price
			p.SalePrice = in.SalePrice
			p.Sizes = in.Sizes
			p.Colors = in.Colors
			// Re-normalizing against the (possibly changed) color and size
			// lists keeps the one-entry-per-pair invariant; quantities for
			// surviving pairs carry over from the submitted table.
			p.Stock = normalizeStock(in.Colors, in.Sizes, in.Stock)
			p.Description = in.Description
			p.Images = in.Images
			p.VideoURL = in.VideoURL
			updated = p.Clone()
			return []string{KeyProducts}, nil
		}
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Products {
			if st.Products[i].ID == id {
				st.Products = append(st.Products[:i], st.Products[i+1:]...)
				return []string{KeyProducts}, nil
			}
		}
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	})
}

func (s *catalogService) AdjustStock(ctx context.Context, id, color, size string, delta int) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		if st.adjustVariantStock(id, color, size, delta) {
			return []string{KeyProducts}, nil
		}
		// Product or variant removed since the caller last looked.
		return nil, nil
	})
}

func (s *catalogService) AddReview(ctx context.Context, productID, author string, rating int, comment string) (*Review, error) {
	var created Review
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		exists := false
		for i := range st.Products {
			if st.Products[i].ID == productID {
				exists = true
				break
			}
		}
		if !exists {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		st.Counters.Review++
		created = Review{
			ID:        fmt.Sprintf("REV-%03d", st.Counters.Review),
			ProductID: productID,
			Author:    author,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: time.Now().UTC(),
		}
		st.Reviews = append(st.Reviews, created)
		return []string{KeyReviews, KeyCounters}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *catalogService) ListReviews(ctx context.Context, productID string) []Review {
	var out []Review
	s.engine.View(func(st *State) {
		for _, r := range st.Reviews {
			if r.ProductID == productID {
				out = append(out, r)
			}
		}
	})
	return out
}
