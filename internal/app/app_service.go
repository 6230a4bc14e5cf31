package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/core"
	"shopfront/internal/validate"
)

type appService struct {
	catalog       core.CatalogService
	cart          core.CartService
	orders        core.OrderService
	finance       core.FinanceService
	notifications core.NotificationService
	settings      core.SettingsService
	users         core.UserService
	advisor       Advisor
	video         VideoRenderer
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	catalog core.CatalogService,
	cart core.CartService,
	orders core.OrderService,
	finance core.FinanceService,
	notifications core.NotificationService,
	settings core.SettingsService,
	users core.UserService,
	advisor Advisor,
	video VideoRenderer,
) ApplicationService {
	return &appService{
		catalog:       catalog,
		cart:          cart,
		orders:        orders,
		finance:       finance,
		notifications: notifications,
		settings:      settings,
		users:         users,
		advisor:       advisor,
		video:         video,
	}
}

// ── Storefront ────────────────────────────────────────────────────────────────

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	return &ProductListResult{Products: s.catalog.List(ctx)}, nil
}

func (s *appService) GetProduct(ctx context.Context, id string) (*ProductDetailResult, error) {
	product, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProductDetailResult{
		Product: product,
		Reviews: s.catalog.ListReviews(ctx, id),
	}, nil
}

func (s *appService) AddReview(ctx context.Context, req ReviewRequest) (*ReviewResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	review, err := s.catalog.AddReview(ctx, req.ProductID, req.Author, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	return &ReviewResult{Review: review}, nil
}

func (s *appService) GetCart(ctx context.Context) (*CartResult, error) {
	return s.cartResult(ctx), nil
}

func (s *appService) AddToCart(ctx context.Context, req CartLineRequest) (*CartResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.cart.Add(ctx, req.ProductID, req.Size, req.Color, req.Quantity); err != nil {
		return nil, err
	}
	return s.cartResult(ctx), nil
}

func (s *appService) UpdateCartLine(ctx context.Context, req CartLineRequest) (*CartResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.cart.SetQuantity(ctx, req.ProductID, req.Size, req.Color, req.Quantity); err != nil {
		return nil, err
	}
	return s.cartResult(ctx), nil
}

func (s *appService) RemoveCartLine(ctx context.Context, req CartLineRequest) (*CartResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.cart.Remove(ctx, req.ProductID, req.Size, req.Color); err != nil {
		return nil, err
	}
	return s.cartResult(ctx), nil
}

// cartResult builds the cart view with the same totals Checkout will freeze.
func (s *appService) cartResult(ctx context.Context) *CartResult {
	items := s.cart.Items(ctx)
	subtotal, tax, delivery, total := core.PreviewTotals(items)
	return &CartResult{
		Items:          items,
		Subtotal:       subtotal,
		Tax:            tax,
		DeliveryCharge: delivery,
		Total:          total,
		Currency:       core.Currency,
	}
}

func (s *appService) Checkout(ctx context.Context, req CheckoutRequest) (*OrderResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	order, err := s.orders.PlaceOrder(ctx, req.Customer, req.PaymentMethod, req.PaymentProof)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) TrackOrder(ctx context.Context, id string) (*OrderResult, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) CancelMyOrder(ctx context.Context, id string) (*CancelResult, error) {
	cancelled, err := s.orders.CancelByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CancelResult{Cancelled: cancelled}, nil
}

func (s *appService) PaymentDirectory(ctx context.Context) (*PaymentDirectoryResult, error) {
	return &PaymentDirectoryResult{
		Profile:      s.settings.Profile(ctx),
		BankAccounts: s.settings.BankAccounts(ctx),
		Wallets:      s.settings.Wallets(ctx),
	}, nil
}

func (s *appService) AskAdvisor(ctx context.Context, question string) (*AdviceResult, error) {
	if question == "" {
		return nil, errors.New("question is required")
	}
	catalog := s.catalog.List(ctx)
	advice := s.advisor.Advise(ctx, question, catalog)

	result := &AdviceResult{Reply: advice.Reply}
	for _, id := range advice.ProductIDs {
		for i := range catalog {
			if catalog[i].ID == id {
				result.Products = append(result.Products, catalog[i])
				break
			}
		}
	}
	return result, nil
}

// ── Back office: catalog ──────────────────────────────────────────────────────

func (s *appService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	product, err := s.catalog.Add(ctx, productInput(req))
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func (s *appService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*ProductResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	product, err := s.catalog.Update(ctx, id, productInput(req))
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func (s *appService) DeleteProduct(ctx context.Context, id string) error {
	return s.catalog.Delete(ctx, id)
}

func (s *appService) RestockProduct(ctx context.Context, id, color, size string, qty int) (*ProductResult, error) {
	if qty < 1 {
		return nil, errors.New("restock quantity must be positive")
	}
	// Unknown IDs no-op in AdjustStock; check first so the operator gets a
	// 404 instead of silence.
	product, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.HasVariant(color, size) {
		return nil, fmt.Errorf("variant %s/%s of %s: %w", color, size, id, core.ErrNotFound)
	}
	if err := s.catalog.AdjustStock(ctx, id, color, size, qty); err != nil {
		return nil, err
	}
	product, err = s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func (s *appService) DraftDescription(ctx context.Context, req ProductRequest) (*DescriptionResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return &DescriptionResult{Description: s.advisor.Describe(ctx, productInput(req))}, nil
}

func (s *appService) GenerateProductVideo(ctx context.Context, id string) (*ProductResult, error) {
	product, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	image := product.ImageFor("")
	if image == "" {
		return nil, errors.New("product has no image to render a video from")
	}

	videoURL, err := s.video.Generate(ctx, product.Name, image)
	if err != nil {
		return nil, err
	}

	in := core.ProductInput{
		Name:        product.Name,
		Brand:       product.Brand,
		Category:    product.Category,
		Subcategory: product.Subcategory,
		Price:       product.Price,
		SalePrice:   product.SalePrice,
		Sizes:       product.Sizes,
		Colors:      product.Colors,
		Stock:       product.Stock,
		Description: product.Description,
		Images:      product.Images,
		VideoURL:    videoURL,
	}
	updated, err := s.catalog.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: updated}, nil
}

// ── Back office: orders ───────────────────────────────────────────────────────

func (s *appService) ListOrders(ctx context.Context) (*OrderListResult, error) {
	return &OrderListResult{Orders: s.orders.List(ctx)}, nil
}

func (s *appService) GetOrder(ctx context.Context, id string) (*OrderResult, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: order}, nil
}

func (s *appService) UpdateOrderStatus(ctx context.Context, id string, status core.OrderStatus) (*OrderResult, error) {
	change, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	// Delivery is the moment the money changes hands for online orders.
	if change.To == core.StatusDelivered && change.Order.Type == core.TypeOnline {
		s.recordOrderPayment(ctx, change.Order)
	}
	return &OrderResult{Order: &change.Order}, nil
}

func (s *appService) RecordShopSale(ctx context.Context, req ShopSaleRequest) (*OrderResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	name := req.CustomerName
	if name == "" {
		name = "Walk-in customer"
	}
	order, err := s.orders.AddShopSale(ctx, name, req.Lines, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	s.recordOrderPayment(ctx, *order)
	return &OrderResult{Order: order}, nil
}

// recordOrderPayment appends the cash-in entry for a completed order. A
// repeated delivery of the same order (cancel, undo, deliver again) must not
// double-count, so orders that already have a ledger entry are skipped. The
// ledger append is best-effort: the order state change already happened.
func (s *appService) recordOrderPayment(ctx context.Context, order core.Order) {
	for _, txn := range s.finance.Transactions(ctx) {
		if txn.OrderID == order.ID {
			return
		}
	}

	method := core.MethodBank
	if order.PaymentMethod == core.PaymentCOD || order.PaymentMethod == core.PaymentCashShop {
		method = core.MethodCash
	}
	_, err := s.finance.AddTransaction(ctx, core.TransactionInput{
		Type:        core.TxnCashIn,
		Method:      method,
		Amount:      order.Total,
		Description: fmt.Sprintf("Payment received for order %s (%s)", order.ID, order.PaymentMethod),
		OrderID:     order.ID,
	})
	if err != nil {
		log.Printf("record payment for %s: %v", order.ID, err)
	}
}

// ── Back office: finance ──────────────────────────────────────────────────────

func (s *appService) ListTransactions(ctx context.Context) (*LedgerResult, error) {
	return &LedgerResult{
		Transactions: s.finance.Transactions(ctx),
		CashInHand:   s.finance.CashInHand(ctx),
		Currency:     core.Currency,
	}, nil
}

func (s *appService) AddTransaction(ctx context.Context, req TransactionRequest) (*TransactionResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	txn, err := s.finance.AddTransaction(ctx, core.TransactionInput{
		Type:        req.Type,
		Method:      req.Method,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	return &TransactionResult{Transaction: txn}, nil
}

func (s *appService) ListPayees(ctx context.Context) (*PayeeListResult, error) {
	return &PayeeListResult{Payees: s.finance.Payees(ctx)}, nil
}

func (s *appService) AddPayee(ctx context.Context, req PayeeRequest) (*PayeeResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	payee, err := s.finance.AddPayee(ctx, core.PayeeInput{
		Name:          req.Name,
		BusinessTitle: req.BusinessTitle,
		Purpose:       req.Purpose,
		Contact:       req.Contact,
	})
	if err != nil {
		return nil, err
	}
	return &PayeeResult{Payee: payee}, nil
}

func (s *appService) ListPayables(ctx context.Context) (*PayableListResult, error) {
	return &PayableListResult{Payables: s.finance.Payables(ctx)}, nil
}

func (s *appService) AddPayable(ctx context.Context, req ObligationRequest) (*PayableResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	payable, err := s.finance.AddPayable(ctx, req.PayeeID, req.Amount, req.Description, req.DueDate)
	if err != nil {
		return nil, err
	}
	return &PayableResult{Payable: payable}, nil
}

func (s *appService) SettlePayable(ctx context.Context, id string, req SettleRequest) (*PayableResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	payable, err := s.finance.SettlePayable(ctx, id, req.Method)
	if err != nil {
		return nil, err
	}
	return &PayableResult{Payable: payable}, nil
}

func (s *appService) ListReceivables(ctx context.Context) (*ReceivableListResult, error) {
	return &ReceivableListResult{Receivables: s.finance.Receivables(ctx)}, nil
}

func (s *appService) AddReceivable(ctx context.Context, req ObligationRequest) (*ReceivableResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	receivable, err := s.finance.AddReceivable(ctx, req.PayeeID, req.Amount, req.Description, req.DueDate)
	if err != nil {
		return nil, err
	}
	return &ReceivableResult{Receivable: receivable}, nil
}

func (s *appService) SettleReceivable(ctx context.Context, id string, req SettleRequest) (*ReceivableResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	receivable, err := s.finance.SettleReceivable(ctx, id, req.Method)
	if err != nil {
		return nil, err
	}
	return &ReceivableResult{Receivable: receivable}, nil
}

// ── Back office: notifications ────────────────────────────────────────────────

func (s *appService) ListNotifications(ctx context.Context) (*NotificationListResult, error) {
	return &NotificationListResult{
		Notifications: s.notifications.List(ctx),
		Unread:        s.notifications.UnreadCount(ctx),
	}, nil
}

func (s *appService) MarkNotificationRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}

func (s *appService) MarkAllNotificationsRead(ctx context.Context) error {
	return s.notifications.MarkAllRead(ctx)
}

// ── Back office: settings and users ───────────────────────────────────────────

func (s *appService) GetShopProfile(ctx context.Context) (*core.ShopProfile, error) {
	profile := s.settings.Profile(ctx)
	return &profile, nil
}

func (s *appService) UpdateShopProfile(ctx context.Context, profile core.ShopProfile) error {
	return s.settings.UpdateProfile(ctx, profile)
}

func (s *appService) AddBankAccount(ctx context.Context, req BankAccountRequest) (*core.BankAccount, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return s.settings.AddBankAccount(ctx, core.BankAccount{
		BankName:      req.BankName,
		AccountTitle:  req.AccountTitle,
		AccountNumber: req.AccountNumber,
	})
}

func (s *appService) DeleteBankAccount(ctx context.Context, id string) error {
	return s.settings.DeleteBankAccount(ctx, id)
}

func (s *appService) AddWallet(ctx context.Context, req WalletRequest) (*core.WalletAccount, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return s.settings.AddWallet(ctx, core.WalletAccount{
		WalletName:   req.WalletName,
		AccountTitle: req.AccountTitle,
		WalletNumber: req.WalletNumber,
	})
}

func (s *appService) DeleteWallet(ctx context.Context, id string) error {
	return s.settings.DeleteWallet(ctx, id)
}

func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}
	return &UserSession{UserID: user.ID, Name: user.Name, Role: user.Role}, nil
}

func (s *appService) ListUsers(ctx context.Context) (*UserListResult, error) {
	users := s.users.List(ctx)
	for i := range users {
		users[i].PasswordHash = ""
	}
	return &UserListResult{Users: users}, nil
}

func (s *appService) CreateUser(ctx context.Context, req UserRequest) (*UserResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Add(ctx, req.Name, req.Email, req.Role, string(hash))
	if err != nil {
		return nil, err
	}
	cp := *user
	cp.PasswordHash = ""
	return &UserResult{User: &cp}, nil
}

func (s *appService) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func productInput(req ProductRequest) core.ProductInput {
	return core.ProductInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Stock:       req.Stock,
		Description: req.Description,
		Images:      req.Images,
		VideoURL:    req.VideoURL,
	}
}
