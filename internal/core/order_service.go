package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Checkout math. Tax applies to every order; the delivery charge only to
// online orders, walk-in sales carry none.
var (
	taxRate        = decimal.RequireFromString("0.10")
	deliveryCharge = decimal.NewFromInt(300)
)

// PreviewTotals computes the checkout math for a set of lines without
// placing anything. The storefront cart preview and PlaceOrder share it so
// the shown total always matches the frozen one. An empty set has no
// delivery charge.
func PreviewTotals(items []CartItem) (subtotal, tax, delivery, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	tax = subtotal.Mul(taxRate).Round(2)
	delivery = decimal.Zero
	if len(items) > 0 {
		delivery = deliveryCharge
	}
	return subtotal, tax, delivery, subtotal.Add(tax).Add(delivery)
}

// ShopSaleLine is one line of a walk-in sale rung up at the counter.
type ShopSaleLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// OrderService manages the order lifecycle and the stock effects tied to it.
type OrderService interface {
	List(ctx context.Context) []Order
	Get(ctx context.Context, id string) (*Order, error)

	// PlaceOrder checks out the current cart: it verifies stock for every
	// line, freezes the totals, deducts stock, records a placement
	// notification, and clears the cart. The order starts Pending.
	// paymentProof is an optional reference (transfer screenshot URL or
	// transaction number) the buyer attaches for prepaid methods.
	PlaceOrder(ctx context.Context, customer Customer, method PaymentMethod, paymentProof string) (*Order, error)

	// AddShopSale records a walk-in sale. The order is created Delivered
	// with stock deducted immediately and no delivery charge.
	AddShopSale(ctx context.Context, customerName string, lines []ShopSaleLine, method PaymentMethod) (*Order, error)

	// UpdateStatus moves an order along the lifecycle, applying the stock
	// and notification effects of the edge. The returned StatusChange lets
	// callers run follow-up effects such as cash-in on delivery.
	UpdateStatus(ctx context.Context, id string, to OrderStatus) (*StatusChange, error)

	// CancelByCustomer cancels the customer's own order. Only Pending and
	// Confirmed orders qualify; it reports whether the cancellation
	// happened. On success the items are restocked, the placement
	// notification is removed, and a cancellation notification is added.
	CancelByCustomer(ctx context.Context, id string) (bool, error)
}

type orderService struct {
	engine *Engine
}

func NewOrderService(engine *Engine) OrderService {
	return &orderService{engine: engine}
}

func (s *orderService) List(ctx context.Context) []Order {
	var out []Order
	s.engine.View(func(st *State) {
		out = append(out, st.Orders...)
	})
	// Newest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (s *orderService) Get(ctx context.Context, id string) (*Order, error) {
	var found *Order
	s.engine.View(func(st *State) {
		for i := range st.Orders {
			if st.Orders[i].ID == id {
				cp := st.Orders[i]
				found = &cp
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return found, nil
}

func (s *orderService) PlaceOrder(ctx context.Context, customer Customer, method PaymentMethod, paymentProof string) (*Order, error) {
	var created Order
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		if len(st.Cart) == 0 {
			return nil, errors.New("cart is empty")
		}
		// Verify every line against current variant stock before touching
		// anything.
		for _, line := range st.Cart {
			product := st.findProduct(line.ProductID)
			if product == nil {
				return nil, fmt.Errorf("product %s: %w", line.ProductID, ErrNotFound)
			}
			available := product.VariantStock(line.Color, line.Size)
			if available <= 0 {
				return nil, ErrOutOfStock
			}
			if line.Quantity > available {
				return nil, ErrInsufficientStock
			}
		}

		subtotal, tax, delivery, total := PreviewTotals(st.Cart)

		st.Counters.OnlineOrder++
		created = Order{
			ID:             fmt.Sprintf("ONL-%03d", st.Counters.OnlineOrder),
			Type:           TypeOnline,
			Status:         StatusPending,
			Customer:       customer,
			Items:          append([]CartItem(nil), st.Cart...),
			Subtotal:       subtotal,
			Tax:            tax,
			DeliveryCharge: delivery,
			Total:          total,
			PaymentMethod:  method,
			PaymentProof:   paymentProof,
			PlacedAt:       time.Now().UTC(),
		}
		st.Orders = append(st.Orders, created)

		for _, line := range created.Items {
			st.adjustVariantStock(line.ProductID, line.Color, line.Size, -line.Quantity)
		}
		st.pushNotification(fmt.Sprintf("Order %s placed by %s.", created.ID, customer.FullName), created.ID)
		st.Cart = nil

		return []string{KeyOrders, KeyProducts, KeyCart, KeyNotifications, KeyCounters}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *orderService) AddShopSale(ctx context.Context, customerName string, lines []ShopSaleLine, method PaymentMethod) (*Order, error) {
	if len(lines) == 0 {
		return nil, errors.New("sale has no items")
	}
	var created Order
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		items := make([]CartItem, 0, len(lines))
		for _, line := range lines {
			product := st.findProduct(line.ProductID)
			if product == nil {
				return nil, fmt.Errorf("product %s: %w", line.ProductID, ErrNotFound)
			}
			if line.Quantity > product.VariantStock(line.Color, line.Size) {
				return nil, ErrInsufficientStock
			}
			items = append(items, CartItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.EffectivePrice(),
				Size:      line.Size,
				Color:     line.Color,
				Quantity:  line.Quantity,
				Image:     product.ImageFor(line.Color),
			})
		}

		subtotal := decimal.Zero
		for _, it := range items {
			subtotal = subtotal.Add(it.LineTotal())
		}
		tax := subtotal.Mul(taxRate).Round(2)
		now := time.Now().UTC()

		st.Counters.ShopOrder++
		created = Order{
			ID:             fmt.Sprintf("SHP-%03d", st.Counters.ShopOrder),
			Type:           TypeShop,
			Status:         StatusDelivered,
			Customer:       Customer{FullName: customerName},
			Items:          items,
			Subtotal:       subtotal,
			Tax:            tax,
			DeliveryCharge: decimal.Zero,
			Total:          subtotal.Add(tax),
			PaymentMethod:  method,
			PlacedAt:       now,
			DeliveredAt:    &now,
		}
		st.Orders = append(st.Orders, created)

		for _, it := range items {
			st.adjustVariantStock(it.ProductID, it.Color, it.Size, -it.Quantity)
		}
		return []string{KeyOrders, KeyProducts, KeyCounters}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, to OrderStatus) (*StatusChange, error) {
	var change StatusChange
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		order := st.findOrder(id)
		if order == nil {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		edge, err := lookupTransition(order.Status, to)
		if err != nil {
			return nil, err
		}

		keys := []string{KeyOrders, KeyNotifications}
		switch edge.stock {
		case stockRestock:
			for _, it := range order.Items {
				st.adjustVariantStock(it.ProductID, it.Color, it.Size, it.Quantity)
			}
			keys = append(keys, KeyProducts)
		case stockDeduct:
			for _, it := range order.Items {
				st.adjustVariantStock(it.ProductID, it.Color, it.Size, -it.Quantity)
			}
			keys = append(keys, KeyProducts)
		}

		from := order.Status
		order.Status = to
		now := time.Now().UTC()
		switch to {
		case StatusDelivered:
			order.DeliveredAt = &now
			order.CancelledAt = nil
		case StatusCancelled:
			order.CancelledAt = &now
			order.DeliveredAt = nil
		default:
			order.DeliveredAt = nil
			order.CancelledAt = nil
		}

		if edge.terminal {
			st.purgeOrderNotifications(order.ID)
		} else {
			st.pushNotification(fmt.Sprintf("Order %s is now %s.", order.ID, to), order.ID)
		}

		change = StatusChange{Order: *order, From: from, To: to}
		return keys, nil
	})
	if err != nil {
		return nil, err
	}
	return &change, nil
}

func (s *orderService) CancelByCustomer(ctx context.Context, id string) (bool, error) {
	cancelled := false
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		order := st.findOrder(id)
		if order == nil {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		if order.Status != StatusPending && order.Status != StatusConfirmed {
			return nil, nil
		}

		for _, it := range order.Items {
			st.adjustVariantStock(it.ProductID, it.Color, it.Size, it.Quantity)
		}
		order.Status = StatusCancelled
		now := time.Now().UTC()
		order.CancelledAt = &now

		st.purgeOrderNotifications(order.ID)
		st.pushNotification(fmt.Sprintf("Order %s was cancelled by the customer.", order.ID), order.ID)

		cancelled = true
		return []string{KeyOrders, KeyProducts, KeyNotifications}, nil
	})
	if err != nil {
		return false, err
	}
	return cancelled, nil
}

// ── State helpers shared by the lifecycle paths ───────────────────────────────

func (st *State) findProduct(id string) *Product {
	for i := range st.Products {
		if st.Products[i].ID == id {
			return &st.Products[i]
		}
	}
	return nil
}

func (st *State) findOrder(id string) *Order {
	for i := range st.Orders {
		if st.Orders[i].ID == id {
			return &st.Orders[i]
		}
	}
	return nil
}

// adjustVariantStock moves one (color, size) variant's quantity by delta and
// reports whether the variant was found. Products or variants removed from
// the catalog since the order was placed are skipped. Quantities are not
// clamped; availability is the caller's check.
func (st *State) adjustVariantStock(id, color, size string, delta int) bool {
	p := st.findProduct(id)
	if p == nil {
		return false
	}
	for i := range p.Stock {
		if p.Stock[i].Color == color && p.Stock[i].Size == size {
			p.Stock[i].Quantity += delta
			return true
		}
	}
	return false
}
