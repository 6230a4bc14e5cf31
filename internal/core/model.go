package core

import (
	"errors"
	"time"
)

// Currency is the display currency for every monetary value in the system.
const Currency = "PKR"

// Sentinel errors adapters translate into user-facing responses. Availability
// errors reject the mutation and leave state untouched.
var (
	ErrNotFound          = errors.New("not found")
	ErrOutOfStock        = errors.New("this item is out of stock")
	ErrInsufficientStock = errors.New("cannot add more than the available stock")
)

// Customer is the buyer snapshot frozen onto an order at placement time.
type Customer struct {
	FullName  string       `json:"full_name" validate:"required"`
	Address   string       `json:"address" validate:"required"`
	Mobile    string       `json:"mobile" validate:"required"`
	AltMobile string       `json:"alt_mobile,omitempty"`
	Email     string       `json:"email" validate:"required,email"`
	Location  *Geolocation `json:"location,omitempty"`
}

type Geolocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ShopProfile holds the shop's own identity printed on invoices and receipts.
type ShopProfile struct {
	Name          string       `json:"name"`
	Owner         string       `json:"owner"`
	Address       string       `json:"address"`
	ContactPerson string       `json:"contact_person"`
	ContactMobile string       `json:"contact_mobile"`
	Email         string       `json:"email"`
	Logo          string       `json:"logo,omitempty"`
	Location      *Geolocation `json:"location,omitempty"`
}

// BankAccount is an entry in the payment directory shown to customers paying
// by bank transfer.
type BankAccount struct {
	ID            string `json:"id"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountTitle  string `json:"account_title" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
}

// WalletAccount is a mobile-wallet entry in the payment directory.
type WalletAccount struct {
	ID           string `json:"id"`
	WalletName   string `json:"wallet_name" validate:"required"`
	AccountTitle string `json:"account_title" validate:"required"`
	WalletNumber string `json:"wallet_number" validate:"required"`
}

// User is a back-office operator account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"` // Admin, Sales Manager, Rider
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Notification is an event message tied to an order, newest first. Entries
// are never deleted one by one; terminal order transitions purge the order's
// entries in bulk instead.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	OrderID   string    `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}
