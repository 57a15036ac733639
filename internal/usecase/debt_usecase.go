package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

// DebtUseCase tracks and collects customer credit bills left open at shift
// close.
type DebtUseCase struct {
	txManager    TransactionManager
	txRepo       TransactionRepository
	customerRepo CustomerRepository
	outboxRepo   OutboxRepository
	transferUC   *TransferUseCase
	idGen        IDGenerator
}

// NewDebtUseCase creates a new DebtUseCase.
func NewDebtUseCase(
	txManager TransactionManager,
	txRepo TransactionRepository,
	customerRepo CustomerRepository,
	outboxRepo OutboxRepository,
	transferUC *TransferUseCase,
	idGen IDGenerator,
) *DebtUseCase {
	return &DebtUseCase{
		txManager:    txManager,
		txRepo:       txRepo,
		customerRepo: customerRepo,
		outboxRepo:   outboxRepo,
		transferUC:   transferUC,
		idGen:        idGen,
	}
}

// CustomerDebt is one customer's open credit position.
type CustomerDebt struct {
	Customer     *domain.Customer
	Total        decimal.Decimal
	Transactions []*domain.Transaction
}

// Outstanding groups all open credit bills by customer.
func (uc *DebtUseCase) Outstanding(ctx context.Context) ([]*CustomerDebt, error) {
	settled := false
	open, err := uc.txRepo.Query(ctx, TransactionFilter{
		ToAccountID: domain.AccountCustomerRec,
		Categories:  []string{domain.CategoryCustomerCredit},
		Settled:     &settled,
		Limit:       1000,
	})
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[string]*CustomerDebt)
	order := make([]string, 0)

	for _, t := range open {
		debt, ok := byCustomer[t.CustomerID]
		if !ok {
			customer, err := uc.customerRepo.GetByID(ctx, t.CustomerID)
			if err != nil {
				return nil, err
			}

			debt = &CustomerDebt{Customer: customer}
			byCustomer[t.CustomerID] = debt
			order = append(order, t.CustomerID)
		}

		debt.Total = debt.Total.Add(t.Amount)
		debt.Transactions = append(debt.Transactions, t)
	}

	debts := make([]*CustomerDebt, 0, len(order))
	for _, id := range order {
		debts = append(debts, byCustomer[id])
	}

	return debts, nil
}

// CollectInput selects the open bills being paid and where the money lands.
type CollectInput struct {
	CustomerID     string
	TransactionIDs []string
	// ToTill pays into the cash drawer instead of the bank.
	ToTill bool
}

// Collect settles the selected bills: one transfer from the receivables
// account to the destination, then the bills flip to settled, atomically.
func (uc *DebtUseCase) Collect(ctx context.Context, input CollectInput) (*domain.Transaction, error) {
	if len(input.TransactionIDs) == 0 {
		return nil, domain.ErrNothingSelected
	}

	customer, err := uc.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, id := range input.TransactionIDs {
		t, err := uc.txRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t.Settled {
			return nil, domain.ErrTransactionSettled
		}
		if t.ToAccountID != domain.AccountCustomerRec || t.CustomerID != customer.ID {
			return nil, domain.ErrSelectionMismatch
		}
		total = total.Add(t.Amount)
	}

	destination := domain.AccountBusinessBank
	if input.ToTill {
		destination = domain.AccountTillFloat
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	record, err := uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountCustomerRec,
		ToAccountID:   destination,
		Amount:        total,
		Description:   "Debt Collection: " + customer.Name,
		Category:      domain.CategoryClientSettle,
		Meta:          Metadata{CustomerID: customer.ID},
	})
	if err != nil {
		return nil, err
	}

	if err := uc.txRepo.MarkSettled(ctx, tx, input.TransactionIDs); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   record.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeDebtCollected,
		Payload: map[string]any{
			"customer_id": customer.ID,
			"amount":      total.String(),
			"bills":       len(input.TransactionIDs),
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

// CreateCustomer registers a new customer.
func (uc *DebtUseCase) CreateCustomer(ctx context.Context, name, phone, email string) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:        uc.idGen.Generate(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// ListCustomers lists all customers.
func (uc *DebtUseCase) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return uc.customerRepo.List(ctx)
}
