package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"shopfront/internal/core"
)

func TestFinance_RunningBalance(t *testing.T) {
	engine := newEngine(t)
	finance := core.NewFinanceService(engine)
	ctx := context.Background()

	steps := []struct {
		txnType     core.TransactionType
		method      core.SettlementMethod
		amount      int64
		wantBalance string
	}{
		{core.TxnCashIn, core.MethodCash, 5000, "5000"},
		{core.TxnCashOut, core.MethodCash, 1200, "3800"},
		// Bank movements are recorded but leave cash in hand unchanged.
		{core.TxnCashIn, core.MethodBank, 9000, "3800"},
		{core.TxnCashOut, core.MethodBank, 500, "3800"},
		{core.TxnCashIn, core.MethodCash, 200, "4000"},
	}
	for i, step := range steps {
		txn, err := finance.AddTransaction(ctx, core.TransactionInput{
			Type:        step.txnType,
			Method:      step.method,
			Amount:      decimal.NewFromInt(step.amount),
			Description: "ledger entry",
		})
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if txn.Balance.String() != step.wantBalance {
			t.Errorf("step %d: balance = %s, want %s", i, txn.Balance, step.wantBalance)
		}
	}

	if got := finance.CashInHand(ctx); got.String() != "4000" {
		t.Errorf("cash in hand = %s, want 4000", got)
	}
	if list := finance.Transactions(ctx); len(list) != 5 || list[0].ID != "TXN-005" {
		t.Errorf("transactions not newest first: %+v", list)
	}
}

func TestFinance_AddTransactionRejectsNonPositive(t *testing.T) {
	engine := newEngine(t)
	finance := core.NewFinanceService(engine)
	ctx := context.Background()

	for _, amount := range []int64{0, -50} {
		if _, err := finance.AddTransaction(ctx, core.TransactionInput{
			Type:        core.TxnCashIn,
			Method:      core.MethodCash,
			Amount:      decimal.NewFromInt(amount),
			Description: "bad",
		}); err == nil {
			t.Errorf("amount %d accepted, want error", amount)
		}
	}
}

func TestFinance_SettlePayableIsIdempotent(t *testing.T) {
	engine := newEngine(t)
	finance := core.NewFinanceService(engine)
	ctx := context.Background()

	payee, err := finance.AddPayee(ctx, core.PayeeInput{
		Name:          "Karachi Leather Co",
		BusinessTitle: "Leather wholesaler",
		Purpose:       "Material purchases",
		Contact:       "0301-7654321",
	})
	if err != nil {
		t.Fatalf("add payee: %v", err)
	}
	if payee.ID != "PYE-001" {
		t.Errorf("payee ID = %s, want PYE-001", payee.ID)
	}

	due := time.Now().UTC().AddDate(0, 1, 0)
	payable, err := finance.AddPayable(ctx, payee.ID, decimal.NewFromInt(1500), "Sole stock batch 7", due)
	if err != nil {
		t.Fatalf("add payable: %v", err)
	}
	if payable.Status != core.ObligationPending {
		t.Errorf("new payable status = %s, want Pending", payable.Status)
	}

	settled, err := finance.SettlePayable(ctx, payable.ID, core.MethodCash)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if settled.Status != core.ObligationPaid || settled.SettledAt == nil {
		t.Errorf("payable not marked paid: %+v", settled)
	}

	// Settling again emits no second transaction.
	if _, err := finance.SettlePayable(ctx, payable.ID, core.MethodCash); err != nil {
		t.Fatalf("settle twice: %v", err)
	}
	txns := finance.Transactions(ctx)
	if len(txns) != 1 {
		t.Fatalf("transactions = %d, want exactly 1", len(txns))
	}
	if txns[0].Type != core.TxnCashOut || txns[0].Balance.String() != "-1500" {
		t.Errorf("settlement entry = %+v", txns[0])
	}
	if txns[0].PayeeID != payee.ID {
		t.Errorf("settlement payee = %s, want %s", txns[0].PayeeID, payee.ID)
	}
}

func TestFinance_SettleReceivableIsIdempotent(t *testing.T) {
	engine := newEngine(t)
	finance := core.NewFinanceService(engine)
	ctx := context.Background()

	payee, err := finance.AddPayee(ctx, core.PayeeInput{Name: "Mall Kiosk Partner", Purpose: "Consignment"})
	if err != nil {
		t.Fatalf("add payee: %v", err)
	}
	due := time.Now().UTC().AddDate(0, 0, 14)
	receivable, err := finance.AddReceivable(ctx, payee.ID, decimal.NewFromInt(2400), "July consignment", due)
	if err != nil {
		t.Fatalf("add receivable: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := finance.SettleReceivable(ctx, receivable.ID, core.MethodCash); err != nil {
			t.Fatalf("settle #%d: %v", i+1, err)
		}
	}
	txns := finance.Transactions(ctx)
	if len(txns) != 1 {
		t.Fatalf("transactions = %d, want exactly 1", len(txns))
	}
	if txns[0].Type != core.TxnCashIn || txns[0].Balance.String() != "2400" {
		t.Errorf("collection entry = %+v", txns[0])
	}
}

func TestFinance_ObligationsRequireKnownPayee(t *testing.T) {
	engine := newEngine(t)
	finance := core.NewFinanceService(engine)
	ctx := context.Background()

	due := time.Now().UTC()
	if _, err := finance.AddPayable(ctx, "PYE-999", decimal.NewFromInt(100), "x", due); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("payable: err = %v, want ErrNotFound", err)
	}
	if _, err := finance.AddReceivable(ctx, "PYE-999", decimal.NewFromInt(100), "x", due); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("receivable: err = %v, want ErrNotFound", err)
	}
	if _, err := finance.SettlePayable(ctx, "PBL-999", core.MethodCash); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("settle payable: err = %v, want ErrNotFound", err)
	}
	if _, err := finance.SettleReceivable(ctx, "RCV-999", core.MethodCash); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("settle receivable: err = %v, want ErrNotFound", err)
	}
}

func TestFinance_BankSettlementLeavesCashUntouched(t *testing.T) {
	engine := newEngine(t)
	finance := core.NewFinanceService(engine)
	ctx := context.Background()

	payee, err := finance.AddPayee(ctx, core.PayeeInput{Name: "Karachi Leather Co"})
	if err != nil {
		t.Fatalf("add payee: %v", err)
	}
	payable, err := finance.AddPayable(ctx, payee.ID, decimal.NewFromInt(1500), "Batch 8", time.Now().UTC())
	if err != nil {
		t.Fatalf("add payable: %v", err)
	}
	if _, err := finance.SettlePayable(ctx, payable.ID, core.MethodBank); err != nil {
		t.Fatalf("settle: %v", err)
	}

	txns := finance.Transactions(ctx)
	if len(txns) != 1 || txns[0].Method != core.MethodBank {
		t.Fatalf("transactions = %+v, want one bank entry", txns)
	}
	if got := finance.CashInHand(ctx); !got.IsZero() {
		t.Errorf("cash in hand = %s, want 0 after a bank settlement", got)
	}
}
