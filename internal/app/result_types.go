package app

import (
	"github.com/shopspring/decimal"

	"shopfront/internal/core"
)

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// ProductResult is returned by single-product operations.
type ProductResult struct {
	Product *core.Product `json:"product"`
}

// ProductDetailResult is returned by GetProduct.
type ProductDetailResult struct {
	Product *core.Product `json:"product"`
	Reviews []core.Review `json:"reviews"`
}

// ReviewResult is returned by AddReview.
type ReviewResult struct {
	Review *core.Review `json:"review"`
}

// CartResult is the cart plus its checkout preview. The preview uses the
// same math as Checkout so the storefront never shows a different total
// than the order it places.
type CartResult struct {
	Items          []core.CartItem `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
}

// OrderResult is returned by order operations.
type OrderResult struct {
	Order *core.Order `json:"order"`
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []core.Order `json:"orders"`
}

// CancelResult is returned by CancelMyOrder.
type CancelResult struct {
	Cancelled bool `json:"cancelled"`
}

// PaymentDirectoryResult is returned by PaymentDirectory.
type PaymentDirectoryResult struct {
	Profile      core.ShopProfile     `json:"profile"`
	BankAccounts []core.BankAccount   `json:"bank_accounts"`
	Wallets      []core.WalletAccount `json:"wallets"`
}

// AdviceResult is returned by AskAdvisor. Products holds the resolved
// recommendations in catalog form, ready to render.
type AdviceResult struct {
	Reply    string         `json:"reply"`
	Products []core.Product `json:"products"`
}

// DescriptionResult is returned by DraftDescription.
type DescriptionResult struct {
	Description string `json:"description"`
}

// LedgerResult is returned by ListTransactions.
type LedgerResult struct {
	Transactions []core.Transaction `json:"transactions"`
	CashInHand   decimal.Decimal    `json:"cash_in_hand"`
	Currency     string             `json:"currency"`
}

// TransactionResult is returned by AddTransaction.
type TransactionResult struct {
	Transaction *core.Transaction `json:"transaction"`
}

// PayeeListResult is returned by ListPayees.
type PayeeListResult struct {
	Payees []core.Payee `json:"payees"`
}

// PayeeResult is returned by AddPayee.
type PayeeResult struct {
	Payee *core.Payee `json:"payee"`
}

// PayableListResult is returned by ListPayables.
type PayableListResult struct {
	Payables []core.Payable `json:"payables"`
}

// PayableResult is returned by payable operations.
type PayableResult struct {
	Payable *core.Payable `json:"payable"`
}

// ReceivableListResult is returned by ListReceivables.
type ReceivableListResult struct {
	Receivables []core.Receivable `json:"receivables"`
}

// ReceivableResult is returned by receivable operations.
type ReceivableResult struct {
	Receivable *core.Receivable `json:"receivable"`
}

// NotificationListResult is returned by ListNotifications.
type NotificationListResult struct {
	Notifications []core.Notification `json:"notifications"`
	Unread        int                 `json:"unread"`
}

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// UserListResult is returned by ListUsers. Password hashes are stripped.
type UserListResult struct {
	Users []core.User `json:"users"`
}

// UserResult is returned by CreateUser. The password hash is stripped.
type UserResult struct {
	User *core.User `json:"user"`
}
