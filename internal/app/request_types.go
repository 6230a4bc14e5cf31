package app

import (
	"time"

	"github.com/shopspring/decimal"

	"shopfront/internal/core"
)

// CartLineRequest addresses one cart line. Quantity is ignored by
// RemoveCartLine.
type CartLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is the input for placing an online order. PaymentProof is
// an optional transfer reference or screenshot URL for prepaid methods.
type CheckoutRequest struct {
	Customer      core.Customer      `json:"customer" validate:"required"`
	PaymentMethod core.PaymentMethod `json:"payment_method" validate:"required,oneof='Cash on Delivery' 'Bank Transfer' 'Mobile Wallet'"`
	PaymentProof  string             `json:"payment_proof"`
}

// ProductRequest is the input for creating or updating a catalog product.
// Stock lists per-variant quantities; pairs not listed start at zero.
type ProductRequest struct {
	Name        string              `json:"name" validate:"required"`
	Brand       string              `json:"brand" validate:"required"`
	Category    string              `json:"category" validate:"required,oneof=Men Women Kids"`
	Subcategory string              `json:"subcategory"`
	Price       decimal.Decimal     `json:"price"`
	SalePrice   *decimal.Decimal    `json:"sale_price"`
	Sizes       []string            `json:"sizes" validate:"required,min=1"`
	Colors      []string            `json:"colors" validate:"required,min=1"`
	Stock       []core.StockEntry   `json:"stock" validate:"dive"`
	Description string              `json:"description"`
	Images      map[string][]string `json:"images"`
	VideoURL    string              `json:"video_url"`
}

// RestockRequest adds stock to one (color, size) variant.
type RestockRequest struct {
	Color    string `json:"color" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// ReviewRequest is the input for posting a product review.
type ReviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Comment   string `json:"comment"`
}

// ShopSaleRequest is the input for ringing up a walk-in sale.
type ShopSaleRequest struct {
	CustomerName  string              `json:"customer_name"`
	Lines         []core.ShopSaleLine `json:"lines" validate:"required,min=1,dive"`
	PaymentMethod core.PaymentMethod  `json:"payment_method" validate:"required,oneof=Cash 'Bank Transfer'"`
}

// TransactionRequest is the input for a manual ledger entry.
type TransactionRequest struct {
	Type        core.TransactionType  `json:"type" validate:"required,oneof='Cash In' 'Cash Out'"`
	Method      core.SettlementMethod `json:"method" validate:"required,oneof=Cash Bank"`
	Amount      decimal.Decimal       `json:"amount"`
	Description string                `json:"description" validate:"required"`
}

// PayeeRequest is the input for adding a payee to the directory.
type PayeeRequest struct {
	Name          string `json:"name" validate:"required"`
	BusinessTitle string `json:"business_title"`
	Purpose       string `json:"purpose"`
	Contact       string `json:"contact"`
}

// ObligationRequest is the input for recording a payable or receivable.
type ObligationRequest struct {
	PayeeID     string          `json:"payee_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required"`
	DueDate     time.Time       `json:"due_date"`
}

// SettleRequest picks the settlement method for paying off an obligation.
// An empty method settles in cash.
type SettleRequest struct {
	Method core.SettlementMethod `json:"method" validate:"omitempty,oneof=Cash Bank"`
}

// BankAccountRequest is the input for adding a bank account to the payment
// directory.
type BankAccountRequest struct {
	BankName      string `json:"bank_name" validate:"required"`
	AccountTitle  string `json:"account_title" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
}

// WalletRequest is the input for adding a mobile wallet to the payment
// directory.
type WalletRequest struct {
	WalletName   string `json:"wallet_name" validate:"required"`
	AccountTitle string `json:"account_title" validate:"required"`
	WalletNumber string `json:"wallet_number" validate:"required"`
}

// UserRequest is the input for creating a back-office operator.
type UserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=Admin 'Sales Manager' Rider"`
	Password string `json:"password" validate:"required,min=8"`
}
