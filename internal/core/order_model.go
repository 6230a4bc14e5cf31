package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
//
//	Pending → Confirmed → Dispatched → Delivered
//	any non-terminal → Cancelled
//
// Delivered and Cancelled are terminal for notification purposes, but the
// back office may still move an order out of Cancelled, which re-deducts the
// stock the cancellation returned.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusConfirmed  OrderStatus = "Confirmed"
	StatusDispatched OrderStatus = "Dispatched"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderType distinguishes storefront checkouts from walk-in shop sales.
type OrderType string

const (
	TypeOnline OrderType = "Online" // ONL-### IDs, delivery charge applies
	TypeShop   OrderType = "Shop"   // SHP-### IDs, created Delivered, no delivery charge
)

// PaymentMethod is how the buyer pays.
type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "Cash on Delivery"
	PaymentBank     PaymentMethod = "Bank Transfer"
	PaymentWallet   PaymentMethod = "Mobile Wallet"
	PaymentCashShop PaymentMethod = "Cash" // in-shop sales
)

// CartItem is one line of a cart or order. Lines are keyed by product, size,
// and color; adding the same combination again merges quantities.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// LineTotal is price times quantity for this line.
func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// Order is a placed order with its frozen checkout math. Subtotal, Tax,
// DeliveryCharge, and Total are captured at placement and never recomputed.
type Order struct {
	ID             string          `json:"id"`
	Type           OrderType       `json:"type"`
	Status         OrderStatus     `json:"status"`
	Customer       Customer        `json:"customer"`
	Items          []CartItem      `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Total          decimal.Decimal `json:"total"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	PaymentProof   string          `json:"payment_proof,omitempty"` // reference for prepaid methods, frozen at placement
	PlacedAt       time.Time       `json:"placed_at"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
}

// StatusChange reports a completed transition so callers can run follow-up
// effects (cash-in on delivery of a COD order, for example).
type StatusChange struct {
	Order Order
	From  OrderStatus
	To    OrderStatus
}
