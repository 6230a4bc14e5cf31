package core

import (
	"fmt"

	"shopfront/internal/store"
)

// Collection keys under which each slice of state is persisted. One key maps
// to one snapshot in the store; a mutation persists only the keys it touched.
const (
	KeyProducts      = "products"
	KeyCart          = "cart"
	KeyOrders        = "orders"
	KeyTransactions  = "transactions"
	KeyPayees        = "payees"
	KeyPayables      = "payables"
	KeyReceivables   = "receivables"
	KeyNotifications = "notifications"
	KeyShopProfile   = "shop_profile"
	KeyBankAccounts  = "bank_accounts"
	KeyWallets       = "wallets"
	KeyUsers         = "users"
	KeyReviews       = "reviews"
	KeyCounters      = "counters"
)

// AllKeys lists every collection key, in load order.
func AllKeys() []string {
	return []string{
		KeyProducts, KeyCart, KeyOrders, KeyTransactions,
		KeyPayees, KeyPayables, KeyReceivables, KeyNotifications,
		KeyShopProfile, KeyBankAccounts, KeyWallets, KeyUsers,
		KeyReviews, KeyCounters,
	}
}

// Counters holds the monotonic sequences behind human-readable IDs. They only
// ever increase, so IDs stay unique even after records are deleted.
type Counters struct {
	Product     int64 `json:"product"`
	OnlineOrder int64 `json:"online_order"`
	ShopOrder   int64 `json:"shop_order"`
	Transaction int64 `json:"transaction"`
	Payee       int64 `json:"payee"`
	Payable     int64 `json:"payable"`
	Receivable  int64 `json:"receivable"`
	Review      int64 `json:"review"`
}

// State is the authoritative in-memory dataset. All reads and mutations go
// through the Engine, which serializes access and persists touched
// collections after each successful mutation.
type State struct {
	Products      []Product
	Cart          []CartItem
	Orders        []Order
	Transactions  []Transaction
	Payees        []Payee
	Payables      []Payable
	Receivables   []Receivable
	Notifications []Notification
	ShopProfile   ShopProfile
	BankAccounts  []BankAccount
	Wallets       []WalletAccount
	Users         []User
	Reviews       []Review
	Counters      Counters
}

// encodeCollection serializes the collection stored under key.
func (s *State) encodeCollection(key string) ([]byte, error) {
	switch key {
	case KeyProducts:
		return store.Encode(s.Products)
	case KeyCart:
		return store.Encode(s.Cart)
	case KeyOrders:
		return store.Encode(s.Orders)
	case KeyTransactions:
		return store.Encode(s.Transactions)
	case KeyPayees:
		return store.Encode(s.Payees)
	case KeyPayables:
		return store.Encode(s.Payables)
	case KeyReceivables:
		return store.Encode(s.Receivables)
	case KeyNotifications:
		return store.Encode(s.Notifications)
	case KeyShopProfile:
		return store.Encode(s.ShopProfile)
	case KeyBankAccounts:
		return store.Encode(s.BankAccounts)
	case KeyWallets:
		return store.Encode(s.Wallets)
	case KeyUsers:
		return store.Encode(s.Users)
	case KeyReviews:
		return store.Encode(s.Reviews)
	case KeyCounters:
		return store.Encode(s.Counters)
	default:
		return nil, fmt.Errorf("unknown collection key %q", key)
	}
}

// decodeCollection replaces the collection stored under key with the decoded
// snapshot data.
func (s *State) decodeCollection(key string, data []byte) error {
	switch key {
	case KeyProducts:
		return store.Decode(data, &s.Products)
	case KeyCart:
		return store.Decode(data, &s.Cart)
	case KeyOrders:
		return store.Decode(data, &s.Orders)
	case KeyTransactions:
		return store.Decode(data, &s.Transactions)
	case KeyPayees:
		return store.Decode(data, &s.Payees)
	case KeyReceivables:
		return store.Decode(data, &s.Receivables)
	case KeyPayables:
		return store.Decode(data, &s.Payables)
	case KeyNotifications:
		return store.Decode(data, &s.Notifications)
	case KeyShopProfile:
		return store.Decode(data, &s.ShopProfile)
	case KeyBankAccounts:
		return store.Decode(data, &s.BankAccounts)
	case KeyWallets:
		return store.Decode(data, &s.Wallets)
	case KeyUsers:
		return store.Decode(data, &s.Users)
	case KeyReviews:
		return store.Decode(data, &s.Reviews)
	case KeyCounters:
		return store.Decode(data, &s.Counters)
	default:
		return fmt.Errorf("unknown collection key %q", key)
	}
}
