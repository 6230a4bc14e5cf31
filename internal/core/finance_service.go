package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FinanceService manages the transaction ledger, the payee directory, and
// outstanding payables and receivables. The ledger is append-only; every
// entry carries the cash-in-hand balance after it was applied.
type FinanceService interface {
	// Transactions returns ledger entries newest first.
	Transactions(ctx context.Context) []Transaction
	// AddTransaction appends a ledger entry, stamping the date server-side.
	// Cash entries move the running balance; bank entries are recorded with
	// the balance unchanged.
	AddTransaction(ctx context.Context, in TransactionInput) (*Transaction, error)
	// CashInHand is the balance after the most recent ledger entry.
	CashInHand(ctx context.Context) decimal.Decimal

	Payees(ctx context.Context) []Payee
	// AddPayee returns the created record so callers can reference its ID
	// immediately, for instance to pre-fill a transaction form.
	AddPayee(ctx context.Context, in PayeeInput) (*Payee, error)

	Payables(ctx context.Context) []Payable
	AddPayable(ctx context.Context, payeeID string, amount decimal.Decimal, description string, due time.Time) (*Payable, error)
	// SettlePayable marks a payable Paid and emits exactly one Cash Out
	// entry through the given method. Settling an already-Paid payable is a
	// no-op.
	SettlePayable(ctx context.Context, id string, method SettlementMethod) (*Payable, error)

	Receivables(ctx context.Context) []Receivable
	AddReceivable(ctx context.Context, payeeID string, amount decimal.Decimal, description string, due time.Time) (*Receivable, error)
	// SettleReceivable mirrors SettlePayable with a Cash In entry.
	SettleReceivable(ctx context.Context, id string, method SettlementMethod) (*Receivable, error)
}

type financeService struct {
	engine *Engine
}

func NewFinanceService(engine *Engine) FinanceService {
	return &financeService{engine: engine}
}

func (s *financeService) Transactions(ctx context.Context) []Transaction {
	var out []Transaction
	s.engine.View(func(st *State) {
		out = append(out, st.Transactions...)
	})
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (s *financeService) AddTransaction(ctx context.Context, in TransactionInput) (*Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, errors.New("amount must be positive")
	}
	var created Transaction
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		created = st.appendTransaction(in)
		return []string{KeyTransactions, KeyCounters}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *financeService) CashInHand(ctx context.Context) decimal.Decimal {
	balance := decimal.Zero
	s.engine.View(func(st *State) {
		if n := len(st.Transactions); n > 0 {
			balance = st.Transactions[n-1].Balance
		}
	})
	return balance
}

func (s *financeService) Payees(ctx context.Context) []Payee {
	var out []Payee
	s.engine.View(func(st *State) {
		out = append(out, st.Payees...)
	})
	return out
}

func (s *financeService) AddPayee(ctx context.Context, in PayeeInput) (*Payee, error) {
	var created Payee
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		st.Counters.Payee++
		created = Payee{
			ID:            fmt.Sprintf("PYE-%03d", st.Counters.Payee),
			Name:          in.Name,
			BusinessTitle: in.BusinessTitle,
			Purpose:       in.Purpose,
			Contact:       in.Contact,
			CreatedAt:     time.Now().UTC(),
		}
		st.Payees = append(st.Payees, created)
		return []string{KeyPayees, KeyCounters}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *financeService) Payables(ctx context.Context) []Payable {
	var out []Payable
	s.engine.View(func(st *State) {
		out = append(out, st.Payables...)
	})
	return out
}

func (s *financeService) AddPayable(ctx context.Context, payeeID string, amount decimal.Decimal, description string, due time.Time) (*Payable, error) {
	if !amount.IsPositive() {
		return nil, errors.New("amount must be positive")
	}
	var created Payable
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		payee := st.findPayee(payeeID)
		if payee == nil {
			return nil, fmt.Errorf("payee %s: %w", payeeID, ErrNotFound)
		}
		st.Counters.Payable++
		created = Payable{
			ID:          fmt.Sprintf("PBL-%03d", st.Counters.Payable),
			PayeeID:     payee.ID,
			PayeeName:   payee.Name,
			Amount:      amount,
			Description: description,
			DueDate:     due,
			Status:      ObligationPending,
			CreatedAt:   time.Now().UTC(),
		}
		st.Payables = append(st.Payables, created)
		return []string{KeyPayables, KeyCounters}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *financeService) SettlePayable(ctx context.Context, id string, method SettlementMethod) (*Payable, error) {
	var settled Payable
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Payables {
			p := &st.Payables[i]
			if p.ID != id {
				continue
			}
			if p.Status == ObligationPaid {
				settled = *p
				return nil, nil
			}
			now := time.Now().UTC()
			p.Status = ObligationPaid
			p.SettledAt = &now
			st.appendTransaction(TransactionInput{
				Type:        TxnCashOut,
				Method:      settlementMethodOrCash(method),
				Amount:      p.Amount,
				Description: fmt.Sprintf("Payable %s settled to %s: %s", p.ID, p.PayeeName, p.Description),
				PayeeID:     p.PayeeID,
			})
			settled = *p
			return []string{KeyPayables, KeyTransactions, KeyCounters}, nil
		}
		return nil, fmt.Errorf("payable %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &settled, nil
}

func (s *financeService) Receivables(ctx context.Context) []Receivable {
	var out []Receivable
	s.engine.View(func(st *State) {
		out = append(out, st.Receivables...)
	})
	return out
}

func (s *financeService) AddReceivable(ctx context.Context, payeeID string, amount decimal.Decimal, description string, due time.Time) (*Receivable, error) {
	if !amount.IsPositive() {
		return nil, errors.New("amount must be positive")
	}
	var created Receivable
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		payee := st.findPayee(payeeID)
		if payee == nil {
			return nil, fmt.Errorf("payee %s: %w", payeeID, ErrNotFound)
		}
		st.Counters.Receivable++
		created = Receivable{
			ID:          fmt.Sprintf("RCV-%03d", st.Counters.Receivable),
			PayeeID:     payee.ID,
			PayeeName:   payee.Name,
			Amount:      amount,
			Description: description,
			DueDate:     due,
			Status:      ObligationPending,
			CreatedAt:   time.Now().UTC(),
		}
		st.Receivables = append(st.Receivables, created)
		return []string{KeyReceivables, KeyCounters}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *financeService) SettleReceivable(ctx context.Context, id string, method SettlementMethod) (*Receivable, error) {
	var settled Receivable
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Receivables {
			r := &st.Receivables[i]
			if r.ID != id {
				continue
			}
			if r.Status == ObligationPaid {
				settled = *r
				return nil, nil
			}
			now := time.Now().UTC()
			r.Status = ObligationPaid
			r.SettledAt = &now
			st.appendTransaction(TransactionInput{
				Type:        TxnCashIn,
				Method:      settlementMethodOrCash(method),
				Amount:      r.Amount,
				Description: fmt.Sprintf("Receivable %s collected from %s: %s", r.ID, r.PayeeName, r.Description),
				PayeeID:     r.PayeeID,
			})
			settled = *r
			return []string{KeyReceivables, KeyTransactions, KeyCounters}, nil
		}
		return nil, fmt.Errorf("receivable %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &settled, nil
}

// settlementMethodOrCash defaults unspecified settlement methods to cash,
// the counter's normal mode.
func settlementMethodOrCash(method SettlementMethod) SettlementMethod {
	if method == MethodBank {
		return MethodBank
	}
	return MethodCash
}

func (st *State) findPayee(id string) *Payee {
	for i := range st.Payees {
		if st.Payees[i].ID == id {
			return &st.Payees[i]
		}
	}
	return nil
}

// appendTransaction appends a ledger entry and computes its running balance.
// Only cash movements change the balance; bank movements carry it forward
// unchanged.
func (st *State) appendTransaction(in TransactionInput) Transaction {
	balance := decimal.Zero
	if n := len(st.Transactions); n > 0 {
		balance = st.Transactions[n-1].Balance
	}
	if in.Method == MethodCash {
		if in.Type == TxnCashIn {
			balance = balance.Add(in.Amount)
		} else {
			balance = balance.Sub(in.Amount)
		}
	}

	st.Counters.Transaction++
	txn := Transaction{
		ID:          fmt.Sprintf("TXN-%03d", st.Counters.Transaction),
		Type:        in.Type,
		Method:      in.Method,
		Amount:      in.Amount,
		Balance:     balance,
		Description: in.Description,
		OrderID:     in.OrderID,
		PayeeID:     in.PayeeID,
		Date:        time.Now().UTC(),
	}
	st.Transactions = append(st.Transactions, txn)
	return txn
}
