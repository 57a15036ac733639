package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository over the sandbox.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	copied := *account
	r.store.write(func(s *state) {
		s.accounts[account.ID] = &copied
	})
	return nil
}

// CreateTx creates a new account within a transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	copied := *account
	stateFor(r.store, tx).accounts[account.ID] = &copied
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var (
		account *domain.Account
		err     error
	)
	r.store.read(func(s *state) {
		account, err = getAccount(s, id)
	})
	return account, err
}

// GetByIDTx retrieves an account by ID inside a transaction.
func (r *AccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return getAccount(stateFor(r.store, tx), id)
}

// List lists all accounts.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	var accounts []*domain.Account
	r.store.read(func(s *state) {
		for _, a := range s.accounts {
			copied := *a
			accounts = append(accounts, &copied)
		}
	})

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID < accounts[j].ID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})

	return accounts, nil
}

// Count returns the number of accounts.
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var count int
	r.store.read(func(s *state) {
		count = len(s.accounts)
	})
	return count, nil
}

// ApplyBalanceDelta adds delta to the stored balance inside a transaction.
func (r *AccountRepository) ApplyBalanceDelta(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	s := stateFor(r.store, tx)

	account, ok := s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	account.Balance = account.Balance.Add(delta)
	account.UpdatedAt = updatedAt
	return nil
}

func getAccount(s *state, id string) (*domain.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	copied := *account
	return &copied, nil
}
