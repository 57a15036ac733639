package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over the
// sandbox.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create appends a ledger transaction within a transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	s := stateFor(r.store, tx)

	copied := *t
	s.transactions[t.ID] = &copied
	s.txnOrder = append(s.txnOrder, t.ID)
	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var (
		found *domain.Transaction
		err   error
	)
	r.store.read(func(s *state) {
		t, ok := s.transactions[id]
		if !ok {
			err = domain.ErrTransactionNotFound
			return
		}
		copied := *t
		found = &copied
	})
	return found, err
}

// Query lists transactions matching a filter, newest first.
func (r *TransactionRepository) Query(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)

	var out []*domain.Transaction
	r.store.read(func(s *state) {
		skipped := 0
		for i := len(s.txnOrder) - 1; i >= 0 && len(out) < limit; i-- {
			t := s.transactions[s.txnOrder[i]]
			if !matchesFilter(t, filter) {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			copied := *t
			out = append(out, &copied)
		}
	})
	return out, nil
}

// SumAmount totals the amounts of all transactions matching a filter.
func (r *TransactionRepository) SumAmount(ctx context.Context, filter usecase.TransactionFilter) (decimal.Decimal, error) {
	sum := decimal.Zero
	r.store.read(func(s *state) {
		for _, id := range s.txnOrder {
			t := s.transactions[id]
			if matchesFilter(t, filter) {
				sum = sum.Add(t.Amount)
			}
		}
	})
	return sum, nil
}

// MarkSettled flips Settled for all ids inside a transaction. A missing id
// fails the batch before any flip is visible.
func (r *TransactionRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, ids []string) error {
	s := stateFor(r.store, tx)

	for _, id := range ids {
		if _, ok := s.transactions[id]; !ok {
			return domain.ErrTransactionNotFound
		}
	}
	for _, id := range ids {
		s.transactions[id].Settled = true
	}
	return nil
}

func matchesFilter(t *domain.Transaction, filter usecase.TransactionFilter) bool {
	if filter.AccountID != "" && t.FromAccountID != filter.AccountID && t.ToAccountID != filter.AccountID {
		return false
	}
	if filter.FromAccountID != "" && t.FromAccountID != filter.FromAccountID {
		return false
	}
	if filter.ToAccountID != "" && t.ToAccountID != filter.ToAccountID {
		return false
	}
	if len(filter.Categories) > 0 {
		found := false
		for _, c := range filter.Categories {
			if t.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.ShiftID != "" && t.ShiftID != filter.ShiftID {
		return false
	}
	if filter.CustomerID != "" && t.CustomerID != filter.CustomerID {
		return false
	}
	if filter.StaffID != "" && t.StaffID != filter.StaffID {
		return false
	}
	if filter.ContactID != "" && t.ContactID != filter.ContactID {
		return false
	}
	if filter.Settled != nil && t.Settled != *filter.Settled {
		return false
	}
	if filter.Posted != nil && t.Posted != *filter.Posted {
		return false
	}
	if filter.DateFrom != nil && t.Date.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && t.Date.After(*filter.DateTo) {
		return false
	}
	return true
}
