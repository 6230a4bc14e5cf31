package app

import (
	"context"

	"shopfront/internal/ai"
	"shopfront/internal/core"
)

// ApplicationService is the single interface both HTTP surfaces (storefront
// and back office) call. It decouples presentation from business logic;
// implementations contain no HTTP types and no display logic.
type ApplicationService interface {
	// ── Storefront ────────────────────────────────────────────────────────

	// ListProducts returns the full catalog.
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// GetProduct returns one product with its reviews.
	GetProduct(ctx context.Context, id string) (*ProductDetailResult, error)

	// AddReview records a customer review on a product.
	AddReview(ctx context.Context, req ReviewRequest) (*ReviewResult, error)

	// GetCart returns the cart with its checkout preview totals.
	GetCart(ctx context.Context) (*CartResult, error)

	// AddToCart puts a product variant in the cart, merging matching lines.
	AddToCart(ctx context.Context, req CartLineRequest) (*CartResult, error)

	// UpdateCartLine sets a line's quantity; zero removes the line.
	UpdateCartLine(ctx context.Context, req CartLineRequest) (*CartResult, error)

	// RemoveCartLine drops a line from the cart.
	RemoveCartLine(ctx context.Context, req CartLineRequest) (*CartResult, error)

	// Checkout places an online order from the current cart.
	Checkout(ctx context.Context, req CheckoutRequest) (*OrderResult, error)

	// TrackOrder returns an order for the customer-facing tracking page.
	TrackOrder(ctx context.Context, id string) (*OrderResult, error)

	// CancelMyOrder cancels the customer's own Pending or Confirmed order.
	// Cancelled reports whether the order was actually cancelled.
	CancelMyOrder(ctx context.Context, id string) (*CancelResult, error)

	// PaymentDirectory returns the shop profile plus the bank and wallet
	// accounts shown to customers paying by transfer.
	PaymentDirectory(ctx context.Context) (*PaymentDirectoryResult, error)

	// AskAdvisor answers a shopper question with up to three product
	// recommendations. It degrades to a canned reply, never an error page.
	AskAdvisor(ctx context.Context, question string) (*AdviceResult, error)

	// ── Back office: catalog ──────────────────────────────────────────────

	CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*ProductResult, error)
	DeleteProduct(ctx context.Context, id string) error

	// RestockProduct adds qty units to one (color, size) variant's stock.
	RestockProduct(ctx context.Context, id, color, size string, qty int) (*ProductResult, error)

	// DraftDescription asks the AI to draft a product description from the
	// bare catalog facts, degrading to a placeholder when unconfigured.
	DraftDescription(ctx context.Context, req ProductRequest) (*DescriptionResult, error)

	// GenerateProductVideo renders a promotional clip from the product's
	// first image and stores the resulting URL on the product. Blocks until
	// the render finishes.
	GenerateProductVideo(ctx context.Context, id string) (*ProductResult, error)

	// ── Back office: orders ───────────────────────────────────────────────

	ListOrders(ctx context.Context) (*OrderListResult, error)
	GetOrder(ctx context.Context, id string) (*OrderResult, error)

	// UpdateOrderStatus moves an order along the lifecycle. Delivering an
	// order also records its payment in the ledger.
	UpdateOrderStatus(ctx context.Context, id string, status core.OrderStatus) (*OrderResult, error)

	// RecordShopSale rings up a walk-in sale: a Delivered shop order plus
	// an immediate cash-in ledger entry.
	RecordShopSale(ctx context.Context, req ShopSaleRequest) (*OrderResult, error)

	// ── Back office: finance ──────────────────────────────────────────────

	ListTransactions(ctx context.Context) (*LedgerResult, error)
	AddTransaction(ctx context.Context, req TransactionRequest) (*TransactionResult, error)

	ListPayees(ctx context.Context) (*PayeeListResult, error)
	AddPayee(ctx context.Context, req PayeeRequest) (*PayeeResult, error)

	ListPayables(ctx context.Context) (*PayableListResult, error)
	AddPayable(ctx context.Context, req ObligationRequest) (*PayableResult, error)
	SettlePayable(ctx context.Context, id string, req SettleRequest) (*PayableResult, error)

	ListReceivables(ctx context.Context) (*ReceivableListResult, error)
	AddReceivable(ctx context.Context, req ObligationRequest) (*ReceivableResult, error)
	SettleReceivable(ctx context.Context, id string, req SettleRequest) (*ReceivableResult, error)

	// ── Back office: notifications ────────────────────────────────────────

	ListNotifications(ctx context.Context) (*NotificationListResult, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error

	// ── Back office: settings and users ───────────────────────────────────

	GetShopProfile(ctx context.Context) (*core.ShopProfile, error)
	UpdateShopProfile(ctx context.Context, profile core.ShopProfile) error

	AddBankAccount(ctx context.Context, req BankAccountRequest) (*core.BankAccount, error)
	DeleteBankAccount(ctx context.Context, id string) error
	AddWallet(ctx context.Context, req WalletRequest) (*core.WalletAccount, error)
	DeleteWallet(ctx context.Context, id string) error

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error)
	ListUsers(ctx context.Context) (*UserListResult, error)
	CreateUser(ctx context.Context, req UserRequest) (*UserResult, error)
	DeleteUser(ctx context.Context, id string) error
}

// Advisor is the narrow slice of the AI layer the service needs, split out
// so tests can stub it.
type Advisor interface {
	Advise(ctx context.Context, question string, catalog []core.Product) *ai.Advice
	Describe(ctx context.Context, in core.ProductInput) string
}

// VideoRenderer renders a product clip and returns its hosted URL.
type VideoRenderer interface {
	Generate(ctx context.Context, productName, imageURL string) (string, error)
}
