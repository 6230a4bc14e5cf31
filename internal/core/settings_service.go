package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SettingsService manages the shop profile and the payment directory shown
// to customers at checkout.
type SettingsService interface {
	Profile(ctx context.Context) ShopProfile
	UpdateProfile(ctx context.Context, profile ShopProfile) error

	BankAccounts(ctx context.Context) []BankAccount
	AddBankAccount(ctx context.Context, in BankAccount) (*BankAccount, error)
	DeleteBankAccount(ctx context.Context, id string) error

	Wallets(ctx context.Context) []WalletAccount
	AddWallet(ctx context.Context, in WalletAccount) (*WalletAccount, error)
	DeleteWallet(ctx context.Context, id string) error
}

type settingsService struct {
	engine *Engine
}

func NewSettingsService(engine *Engine) SettingsService {
	return &settingsService{engine: engine}
}

func (s *settingsService) Profile(ctx context.Context) ShopProfile {
	var out ShopProfile
	s.engine.View(func(st *State) {
		out = st.ShopProfile
	})
	return out
}

func (s *settingsService) UpdateProfile(ctx context.Context, profile ShopProfile) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		st.ShopProfile = profile
		return []string{KeyShopProfile}, nil
	})
}

func (s *settingsService) BankAccounts(ctx context.Context) []BankAccount {
	var out []BankAccount
	s.engine.View(func(st *State) {
		out = append(out, st.BankAccounts...)
	})
	return out
}

func (s *settingsService) AddBankAccount(ctx context.Context, in BankAccount) (*BankAccount, error) {
	in.ID = uuid.NewString()
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		st.BankAccounts = append(st.BankAccounts, in)
		return []string{KeyBankAccounts}, nil
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *settingsService) DeleteBankAccount(ctx context.Context, id string) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.BankAccounts {
			if st.BankAccounts[i].ID == id {
				st.BankAccounts = append(st.BankAccounts[:i], st.BankAccounts[i+1:]...)
				return []string{KeyBankAccounts}, nil
			}
		}
		return nil, fmt.Errorf("bank account %s: %w", id, ErrNotFound)
	})
}

func (s *settingsService) Wallets(ctx context.Context) []WalletAccount {
	var out []WalletAccount
	s.engine.View(func(st *State) {
		out = append(out, st.Wallets...)
	})
	return out
}

func (s *settingsService) AddWallet(ctx context.Context, in WalletAccount) (*WalletAccount, error) {
	in.ID = uuid.NewString()
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		st.Wallets = append(st.Wallets, in)
		return []string{KeyWallets}, nil
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *settingsService) DeleteWallet(ctx context.Context, id string) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Wallets {
			if st.Wallets[i].ID == id {
				st.Wallets = append(st.Wallets[:i], st.Wallets[i+1:]...)
				return []string{KeyWallets}, nil
			}
		}
		return nil, fmt.Errorf("wallet %s: %w", id, ErrNotFound)
	})
}
