package core_test

import (
	"context"
	"errors"
	"testing"

	"shopfront/internal/core"
)

func TestOrder_PlaceOrderCheckoutMath(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	orders := core.NewOrderService(engine)
	notifications := core.NewNotificationService(engine)
	ctx := context.Background()

	p := addProduct(t, catalog, "Runner Pro", 1000, 10)
	if err := cart.Add(ctx, p.ID, "42", "Black", 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	order, err := orders.PlaceOrder(ctx, testCustomer(), core.PaymentBank, "txn-ref-8841")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if order.ID != "ONL-001" {
		t.Errorf("ID = %s, want ONL-001", order.ID)
	}
	if order.Status != core.StatusPending {
		t.Errorf("status = %s, want Pending", order.Status)
	}
	if order.Subtotal.String() != "2000" {
		t.Errorf("subtotal = %s, want 2000", order.Subtotal)
	}
	if order.Tax.String() != "200" {
		t.Errorf("tax = %s, want 200", order.Tax)
	}
	if order.DeliveryCharge.String() != "300" {
		t.Errorf("delivery charge = %s, want 300", order.DeliveryCharge)
	}
	if order.Total.String() != "2500" {
		t.Errorf("total = %s, want 2500", order.Total)
	}
	if order.PaymentProof != "txn-ref-8841" {
		t.Errorf("payment proof = %q, want the reference given at checkout", order.PaymentProof)
	}

	if got := variantStock(t, catalog, p.ID, "42"); got != 8 {
		t.Errorf("stock after placement = %d, want 8", got)
	}
	if got := variantStock(t, catalog, p.ID, "41"); got != 10 {
		t.Errorf("sibling size stock = %d, want untouched 10", got)
	}
	if items := cart.Items(ctx); len(items) != 0 {
		t.Errorf("cart after placement = %+v, want empty", items)
	}
	if list := notifications.List(ctx); len(list) != 1 || list[0].OrderID != order.ID {
		t.Errorf("notifications = %+v, want one placement entry for %s", list, order.ID)
	}
}

func TestOrder_PlaceOrderRejections(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	orders := core.NewOrderService(engine)
	ctx := context.Background()

	if _, err := orders.PlaceOrder(ctx, testCustomer(), core.PaymentCOD, ""); err == nil {
		t.Error("placing with empty cart succeeded, want error")
	}

	// Stock can shrink between add-to-cart and checkout.
	p := addProduct(t, catalog, "Runner Pro", 1000, 5)
	if err := cart.Add(ctx, p.ID, "42", "Black", 5); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := catalog.AdjustStock(ctx, p.ID, "Black", "42", -3); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if _, err := orders.PlaceOrder(ctx, testCustomer(), core.PaymentCOD, ""); !errors.Is(err, core.ErrInsufficientStock) {
		t.Errorf("err = %v, want ErrInsufficientStock", err)
	}
	if err := catalog.AdjustStock(ctx, p.ID, "Black", "42", -2); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if _, err := orders.PlaceOrder(ctx, testCustomer(), core.PaymentCOD, ""); !errors.Is(err, core.ErrOutOfStock) {
		t.Errorf("err = %v, want ErrOutOfStock", err)
	}
}

func TestOrder_ShopSale(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	orders := core.NewOrderService(engine)
	ctx := context.Background()

	p := addProduct(t, catalog, "Runner Pro", 1000, 4)

	sale, err := orders.AddShopSale(ctx, "Walk-in", []core.ShopSaleLine{
		{ProductID: p.ID, Size: "42", Color: "Black", Quantity: 3},
	}, core.PaymentCashShop)
	if err != nil {
		t.Fatalf("shop sale: %v", err)
	}

	if sale.ID != "SHP-001" {
		t.Errorf("ID = %s, want SHP-001", sale.ID)
	}
	if sale.Status != core.StatusDelivered {
		t.Errorf("status = %s, want Delivered", sale.Status)
	}
	if sale.DeliveredAt == nil {
		t.Error("DeliveredAt not set")
	}
	if !sale.DeliveryCharge.IsZero() {
		t.Errorf("delivery charge = %s, want 0", sale.DeliveryCharge)
	}
	if sale.Total.String() != "3300" {
		t.Errorf("total = %s, want 3300 (3000 + 10%% tax)", sale.Total)
	}

	if got := variantStock(t, catalog, p.ID, "42"); got != 1 {
		t.Errorf("stock = %d, want 1", got)
	}

	if _, err := orders.AddShopSale(ctx, "Walk-in", []core.ShopSaleLine{
		{ProductID: p.ID, Size: "42", Color: "Black", Quantity: 2},
	}, core.PaymentCashShop); !errors.Is(err, core.ErrInsufficientStock) {
		t.Errorf("oversell: err = %v, want ErrInsufficientStock", err)
	}
}

func TestOrder_StatusTransitions(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	orders := core.NewOrderService(engine)
	notifications := core.NewNotificationService(engine)
	ctx := context.Background()

	p := addProduct(t, catalog, "Runner Pro", 1000, 10)
	if err := cart.Add(ctx, p.ID, "42", "Black", 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	order, err := orders.PlaceOrder(ctx, testCustomer(), core.PaymentCOD, "")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	change, err := orders.UpdateStatus(ctx, order.ID, core.StatusConfirmed)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if change.From != core.StatusPending || change.To != core.StatusConfirmed {
		t.Errorf("change = %s→%s, want Pending→Confirmed", change.From, change.To)
	}
	// Placement entry plus the confirmation entry, newest first.
	if list := notifications.List(ctx); len(list) != 2 || list[0].Message != "Order ONL-001 is now Confirmed." {
		t.Errorf("notifications = %+v", list)
	}

	// Cancelling restocks and purges the order's notifications.
	if _, err := orders.UpdateStatus(ctx, order.ID, core.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := variantStock(t, catalog, p.ID, "42"); got != 10 {
		t.Errorf("stock after cancel = %d, want 10", got)
	}
	if list := notifications.List(ctx); len(list) != 0 {
		t.Errorf("notifications after cancel = %+v, want empty", list)
	}

	// Moving back out of Cancelled deducts the stock again.
	if _, err := orders.UpdateStatus(ctx, order.ID, core.StatusConfirmed); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := variantStock(t, catalog, p.ID, "42"); got != 8 {
		t.Errorf("stock after reopen = %d, want 8", got)
	}
}

func TestOrder_InvalidTransitions(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	orders := core.NewOrderService(engine)
	ctx := context.Background()

	p := addProduct(t, catalog, "Runner Pro", 1000, 10)
	if err := cart.Add(ctx, p.ID, "42", "Black", 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	order, err := orders.PlaceOrder(ctx, testCustomer(), core.PaymentCOD, "")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if _, err := orders.UpdateStatus(ctx, order.ID, core.StatusPending); err == nil {
		t.Error("same-status transition succeeded, want error")
	}

	if _, err := orders.UpdateStatus(ctx, order.ID, core.StatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if _, err := orders.UpdateStatus(ctx, order.ID, core.StatusCancelled); err == nil {
		t.Error("cancelling a Delivered order succeeded, want error")
	}

	if _, err := orders.UpdateStatus(ctx, "ONL-999", core.StatusConfirmed); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("missing order: err = %v, want ErrNotFound", err)
	}
}

func TestOrder_CancelByCustomer(t *testing.T) {
	engine := newEngine(t)
	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	orders := core.NewOrderService(engine)
	notifications := core.NewNotificationService(engine)
	ctx := context.Background()

	p := addProduct(t, catalog, "Runner Pro", 1000, 10)

	place := func() *core.Order {
		t.Helper()
		if err := cart.Add(ctx, p.ID, "42", "Black", 2); err != nil {
			t.Fatalf("add to cart: %v", err)
		}
		order, err := orders.PlaceOrder(ctx, testCustomer(), core.PaymentCOD, "")
		if err != nil {
			t.Fatalf("place order: %v", err)
		}
		return order
	}

	// Pending orders can be cancelled by the customer.
	first := place()
	ok, err := orders.CancelByCustomer(ctx, first.ID)
	if err != nil || !ok {
		t.Fatalf("cancel pending: ok=%v err=%v, want true nil", ok, err)
	}
	if got := variantStock(t, catalog, p.ID, "42"); got != 10 {
		t.Errorf("stock after customer cancel = %d, want 10", got)
	}
	list := notifications.List(ctx)
	if len(list) != 1 || list[0].Message != "Order "+first.ID+" was cancelled by the customer." {
		t.Errorf("notifications = %+v, want single cancellation entry", list)
	}

	// Dispatched orders cannot.
	second := place()
	if _, err := orders.UpdateStatus(ctx, second.ID, core.StatusDispatched); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	ok, err = orders.CancelByCustomer(ctx, second.ID)
	if err != nil {
		t.Fatalf("cancel dispatched: %v", err)
	}
	if ok {
		t.Error("cancelled a Dispatched order, want refusal")
	}

	if _, err := orders.CancelByCustomer(ctx, "ONL-999"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("missing order: err = %v, want ErrNotFound", err)
	}
}
