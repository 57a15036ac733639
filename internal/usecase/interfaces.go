package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Count(ctx context.Context) (int, error)
	// ApplyBalanceDelta atomically adds delta to the stored balance. It must
	// be a genuine delta-apply at the store, never read-modify-write from
	// client state.
	ApplyBalanceDelta(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

// TransactionFilter narrows ledger transaction queries.
type TransactionFilter struct {
	// AccountID matches transactions touching the account on either side.
	AccountID string

	FromAccountID string
	ToAccountID   string
	Categories    []string
	ShiftID       string
	CustomerID    string
	StaffID       string
	ContactID     string
	Settled       *bool
	Posted        *bool
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Offset        int
}

// TransactionRepository defines data access for ledger transactions.
// Records are append-only; MarkSettled is the single permitted mutation.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Query(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
	SumAmount(ctx context.Context, filter TransactionFilter) (decimal.Decimal, error)
	// MarkSettled flips Settled to true for all ids in one atomic batch.
	MarkSettled(ctx context.Context, tx Transaction, ids []string) error
}

// ShiftRepository defines data access for shifts.
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) error
	GetByID(ctx context.Context, id string) (*domain.Shift, error)
	Latest(ctx context.Context) (*domain.Shift, error)
	Open(ctx context.Context) (*domain.Shift, error)
	Update(ctx context.Context, tx Transaction, shift *domain.Shift) error
	List(ctx context.Context, limit, offset int) ([]*domain.Shift, error)
}

// PartnerSaleRepository defines data access for the external partner ledger.
type PartnerSaleRepository interface {
	Create(ctx context.Context, tx Transaction, sale *domain.PartnerSale) error
	GetByID(ctx context.Context, id string) (*domain.PartnerSale, error)
	ListPending(ctx context.Context) ([]*domain.PartnerSale, error)
	MarkReconciled(ctx context.Context, tx Transaction, id, reconciledBy string, at time.Time, alloc domain.PartnerAllocation) error
}

// StaffRepository defines data access for staff members.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	List(ctx context.Context) ([]*domain.StaffMember, error)
	UpdateLoanBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal) error
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

// ExpenseTemplateRepository defines data access for expense templates.
type ExpenseTemplateRepository interface {
	Create(ctx context.Context, template *domain.ExpenseTemplate) error
	List(ctx context.Context) ([]*domain.ExpenseTemplate, error)
	Delete(ctx context.Context, id string) error
}

// RecurringExpenseRepository defines data access for recurring expenses.
type RecurringExpenseRepository interface {
	Create(ctx context.Context, expense *domain.RecurringExpense) error
	ListActive(ctx context.Context) ([]*domain.RecurringExpense, error)
	UpdateLastGenerated(ctx context.Context, id string, at time.Time) error
	Deactivate(ctx context.Context, id string) error
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a store transaction. All writes grouped under one
// Transaction are applied atomically on Commit.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
