package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType says which way money moved.
type TransactionType string

const (
	TxnCashIn  TransactionType = "Cash In"
	TxnCashOut TransactionType = "Cash Out"
)

// SettlementMethod is the channel a transaction moved through. Only cash
// movements change the running cash-in-hand balance; bank movements are
// recorded for the ledger but leave the balance untouched.
type SettlementMethod string

const (
	MethodCash SettlementMethod = "Cash"
	MethodBank SettlementMethod = "Bank"
)

// Transaction is one immutable ledger entry. Balance is the cash-in-hand
// running balance after this entry was applied.
type Transaction struct {
	ID          string           `json:"id"`
	Type        TransactionType  `json:"type"`
	Method      SettlementMethod `json:"method"`
	Amount      decimal.Decimal  `json:"amount"`
	Balance     decimal.Decimal  `json:"balance"`
	Description string           `json:"description"`
	OrderID     string           `json:"order_id,omitempty"`
	PayeeID     string           `json:"payee_id,omitempty"`
	Date        time.Time        `json:"date"`
}

// TransactionInput is the payload for recording a manual ledger entry. The
// date is stamped server-side at append time.
type TransactionInput struct {
	Type        TransactionType  `json:"type" validate:"required,oneof='Cash In' 'Cash Out'"`
	Method      SettlementMethod `json:"method" validate:"required,oneof=Cash Bank"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description" validate:"required"`
	OrderID     string           `json:"order_id"`
	PayeeID     string           `json:"payee_id"`
}

// Payee is a party the shop owes money to or expects money from, typically a
// supplier or commission agent.
type Payee struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	BusinessTitle string    `json:"business_title,omitempty"`
	Purpose       string    `json:"purpose,omitempty"` // default payment purpose
	Contact       string    `json:"contact,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PayeeInput is the payload for adding a payee to the directory.
type PayeeInput struct {
	Name          string `json:"name" validate:"required"`
	BusinessTitle string `json:"business_title"`
	Purpose       string `json:"purpose"`
	Contact       string `json:"contact"`
}

// ObligationStatus is the settlement state of a payable or receivable.
type ObligationStatus string

const (
	ObligationPending ObligationStatus = "Pending"
	ObligationPaid    ObligationStatus = "Paid"
)

// Payable is an amount the shop owes a payee. Settling it emits exactly one
// Cash Out transaction; settling an already-Paid payable is a no-op.
type Payable struct {
	ID          string           `json:"id"`
	PayeeID     string           `json:"payee_id"`
	PayeeName   string           `json:"payee_name"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	DueDate     time.Time        `json:"due_date"`
	Status      ObligationStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	SettledAt   *time.Time       `json:"settled_at,omitempty"`
}

// Receivable is an amount a payee owes the shop. Settling it emits exactly
// one Cash In transaction; settling twice is a no-op.
type Receivable struct {
	ID          string           `json:"id"`
	PayeeID     string           `json:"payee_id"`
	PayeeName   string           `json:"payee_name"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	DueDate     time.Time        `json:"due_date"`
	Status      ObligationStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	SettledAt   *time.Time       `json:"settled_at,omitempty"`
}
