package app_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"shopfront/internal/ai"
	"shopfront/internal/app"
	"shopfront/internal/core"
	"shopfront/internal/store"
)

// stubAdvisor recommends whatever it was told to and records questions.
type stubAdvisor struct {
	reply       string
	ids         []string
	description string
}

func (s *stubAdvisor) Advise(ctx context.Context, question string, catalog []core.Product) *ai.Advice {
	return &ai.Advice{Reply: s.reply, ProductIDs: s.ids}
}

func (s *stubAdvisor) Describe(ctx context.Context, in core.ProductInput) string {
	return s.description
}

// stubVideo renders instantly.
type stubVideo struct{ url string }

func (s *stubVideo) Generate(ctx context.Context, productName, imageURL string) (string, error) {
	return s.url, nil
}

type fixture struct {
	svc     app.ApplicationService
	finance core.FinanceService
	advisor *stubAdvisor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	engine := core.NewEngine(store.NewMemoryStore())
	finance := core.NewFinanceService(engine)
	advisor := &stubAdvisor{reply: "Try these.", description: "A fine shoe."}
	svc := app.NewAppService(
		core.NewCatalogService(engine),
		core.NewCartService(engine),
		core.NewOrderService(engine),
		finance,
		core.NewNotificationService(engine),
		core.NewSettingsService(engine),
		core.NewUserService(engine),
		advisor,
		&stubVideo{url: "https://cdn.example/clip.mp4"},
	)
	return &fixture{svc: svc, finance: finance, advisor: advisor}
}

func productRequest(name string, price int64, stock int) app.ProductRequest {
	return app.ProductRequest{
		Name:     name,
		Brand:    "Servis",
		Category: "Men",
		Price:    decimal.NewFromInt(price),
		Sizes:    []string{"41", "42"},
		Colors:   []string{"Black"},
		Stock: []core.StockEntry{
			{Color: "Black", Size: "41", Quantity: stock},
			{Color: "Black", Size: "42", Quantity: stock},
		},
		Images: map[string][]string{"Black": {"https://cdn.example/shoe.jpg"}},
	}
}

func checkoutRequest(method core.PaymentMethod) app.CheckoutRequest {
	req := app.CheckoutRequest{
		Customer: core.Customer{
			FullName: "Ayesha Khan",
			Address:  "House 12, Gulberg III, Lahore",
			Mobile:   "0300-1234567",
			Email:    "ayesha@example.com",
		},
		PaymentMethod: method,
	}
	// Prepaid buyers attach a transfer reference at checkout.
	if method != core.PaymentCOD {
		req.PaymentProof = "MEZN-20260829-113"
	}
	return req
}

func (f *fixture) placeOrder(t *testing.T, method core.PaymentMethod) *core.Order {
	t.Helper()
	ctx := context.Background()
	created, err := f.svc.CreateProduct(ctx, productRequest("Runner Pro", 1000, 10))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if _, err := f.svc.AddToCart(ctx, app.CartLineRequest{
		ProductID: created.Product.ID, Size: "42", Color: "Black", Quantity: 2,
	}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	placed, err := f.svc.Checkout(ctx, checkoutRequest(method))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	return placed.Order
}

func TestCartPreviewMatchesPlacedOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateProduct(ctx, productRequest("Runner Pro", 1000, 10))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	cart, err := f.svc.AddToCart(ctx, app.CartLineRequest{
		ProductID: created.Product.ID, Size: "42", Color: "Black", Quantity: 2,
	})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	placed, err := f.svc.Checkout(ctx, checkoutRequest(core.PaymentCOD))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !cart.Total.Equal(placed.Order.Total) {
		t.Errorf("preview total %s != frozen total %s", cart.Total, placed.Order.Total)
	}
	if cart.Total.String() != "2500" {
		t.Errorf("total = %s, want 2500", cart.Total)
	}

	// An emptied cart previews no delivery charge.
	empty, err := f.svc.GetCart(ctx)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if !empty.Total.IsZero() || !empty.DeliveryCharge.IsZero() {
		t.Errorf("empty cart preview = %+v, want all zeros", empty)
	}
}

func TestDeliveringCODOrderRecordsCashIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, core.PaymentCOD)

	if _, err := f.svc.UpdateOrderStatus(ctx, order.ID, core.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if txns := f.finance.Transactions(ctx); len(txns) != 0 {
		t.Fatalf("ledger before delivery = %+v, want empty", txns)
	}

	if _, err := f.svc.UpdateOrderStatus(ctx, order.ID, core.StatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	txns := f.finance.Transactions(ctx)
	if len(txns) != 1 {
		t.Fatalf("ledger after delivery = %d entries, want 1", len(txns))
	}
	entry := txns[0]
	if entry.Type != core.TxnCashIn || entry.Method != core.MethodCash {
		t.Errorf("entry = %+v, want cash-method cash-in", entry)
	}
	if !entry.Amount.Equal(order.Total) {
		t.Errorf("amount = %s, want %s", entry.Amount, order.Total)
	}
	if entry.OrderID != order.ID {
		t.Errorf("order ref = %s, want %s", entry.OrderID, order.ID)
	}

	// Undo and redeliver must not double-count the payment.
	if _, err := f.svc.UpdateOrderStatus(ctx, order.ID, core.StatusDispatched); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, err := f.svc.UpdateOrderStatus(ctx, order.ID, core.StatusDelivered); err != nil {
		t.Fatalf("redeliver: %v", err)
	}
	if txns := f.finance.Transactions(ctx); len(txns) != 1 {
		t.Errorf("ledger after redelivery = %d entries, want still 1", len(txns))
	}
}

func TestDeliveringBankOrderLeavesBalanceUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, core.PaymentBank)
	if order.PaymentProof != "MEZN-20260829-113" {
		t.Errorf("payment proof = %q, want the reference sent at checkout", order.PaymentProof)
	}

	if _, err := f.svc.UpdateOrderStatus(ctx, order.ID, core.StatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	txns := f.finance.Transactions(ctx)
	if len(txns) != 1 {
		t.Fatalf("ledger = %d entries, want 1", len(txns))
	}
	if txns[0].Method != core.MethodBank {
		t.Errorf("method = %s, want Bank", txns[0].Method)
	}
	if got := f.finance.CashInHand(ctx); !got.IsZero() {
		t.Errorf("cash in hand = %s, want 0 for a bank payment", got)
	}
}

func TestRecordShopSaleCashesInImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateProduct(ctx, productRequest("Runner Pro", 1000, 5))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	result, err := f.svc.RecordShopSale(ctx, app.ShopSaleRequest{
		Lines: []core.ShopSaleLine{
			{ProductID: created.Product.ID, Size: "42", Color: "Black", Quantity: 2},
		},
		PaymentMethod: core.PaymentCashShop,
	})
	if err != nil {
		t.Fatalf("shop sale: %v", err)
	}
	if result.Order.Status != core.StatusDelivered {
		t.Errorf("status = %s, want Delivered", result.Order.Status)
	}
	if result.Order.Customer.FullName != "Walk-in customer" {
		t.Errorf("customer = %q, want default walk-in name", result.Order.Customer.FullName)
	}

	txns := f.finance.Transactions(ctx)
	if len(txns) != 1 {
		t.Fatalf("ledger = %d entries, want 1", len(txns))
	}
	if !f.finance.CashInHand(ctx).Equal(result.Order.Total) {
		t.Errorf("cash in hand = %s, want %s", f.finance.CashInHand(ctx), result.Order.Total)
	}
}

func TestAskAdvisorResolvesRecommendations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateProduct(ctx, productRequest("Runner Pro", 1000, 5))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	f.advisor.ids = []string{created.Product.ID}

	result, err := f.svc.AskAdvisor(ctx, "something for daily runs?")
	if err != nil {
		t.Fatalf("ask advisor: %v", err)
	}
	if result.Reply != "Try these." {
		t.Errorf("reply = %q", result.Reply)
	}
	if len(result.Products) != 1 || result.Products[0].ID != created.Product.ID {
		t.Errorf("products = %+v, want the recommended one resolved", result.Products)
	}

	if _, err := f.svc.AskAdvisor(ctx, ""); err == nil {
		t.Error("empty question accepted, want error")
	}
}

func TestGenerateProductVideoStoresURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateProduct(ctx, productRequest("Runner Pro", 1000, 5))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	result, err := f.svc.GenerateProductVideo(ctx, created.Product.ID)
	if err != nil {
		t.Fatalf("generate video: %v", err)
	}
	if result.Product.VideoURL != "https://cdn.example/clip.mp4" {
		t.Errorf("video url = %q", result.Product.VideoURL)
	}

	// Products without images cannot be rendered.
	req := productRequest("Court Classic", 800, 5)
	req.Images = nil
	bare, err := f.svc.CreateProduct(ctx, req)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if _, err := f.svc.GenerateProductVideo(ctx, bare.Product.ID); err == nil {
		t.Error("rendered a video for an imageless product, want error")
	}
}

func TestUserLifecycleAndAuthentication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateUser(ctx, app.UserRequest{
		Name:     "Imran Malik",
		Email:    "imran@solea.example",
		Role:     "Admin",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.User.PasswordHash != "" {
		t.Error("create user leaked the password hash")
	}

	session, err := f.svc.AuthenticateUser(ctx, "IMRAN@solea.example", "correct horse battery")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if session.Role != "Admin" || session.Name != "Imran Malik" {
		t.Errorf("session = %+v", session)
	}

	if _, err := f.svc.AuthenticateUser(ctx, "imran@solea.example", "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := f.svc.AuthenticateUser(ctx, "nobody@solea.example", "x"); err == nil {
		t.Error("unknown email accepted")
	}

	list, err := f.svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(list.Users) != 1 || list.Users[0].PasswordHash != "" {
		t.Errorf("users = %+v, want one with hash stripped", list.Users)
	}
}

func TestValidationRejectsBadRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"product without name", func() error {
			req := productRequest("", 1000, 5)
			_, err := f.svc.CreateProduct(ctx, req)
			return err
		}},
		{"checkout without email", func() error {
			req := checkoutRequest(core.PaymentCOD)
			req.Customer.Email = ""
			_, err := f.svc.Checkout(ctx, req)
			return err
		}},
		{"unknown payment method", func() error {
			req := checkoutRequest(core.PaymentMethod("Barter"))
			_, err := f.svc.Checkout(ctx, req)
			return err
		}},
		{"review rating out of range", func() error {
			_, err := f.svc.AddReview(ctx, app.ReviewRequest{ProductID: "SOLEA-001", Author: "x", Rating: 6})
			return err
		}},
		{"short password", func() error {
			_, err := f.svc.CreateUser(ctx, app.UserRequest{Name: "x", Email: "x@y.z", Role: "Admin", Password: "short"})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.call() == nil {
				t.Error("accepted, want validation error")
			}
		})
	}
}
