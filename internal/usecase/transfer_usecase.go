package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

// TransferUseCase is the single writer of account balances. Every balance
// change in the system funnels through it as one atomic store transaction:
// two balance deltas plus one appended transaction record.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txRepo      TransactionRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
	}
}

// WithRetrier wraps standalone transfers in retry-on-conflict handling.
func (uc *TransferUseCase) WithRetrier(retrier Retrier) *TransferUseCase {
	uc.retrier = retrier
	return uc
}

// Metadata carries the optional tags a transfer can stamp on its record.
type Metadata struct {
	// Settled overrides the default of true. False marks the movement as
	// an open IOU leg awaiting its real-money counterpart.
	Settled    *bool
	ShiftID    string
	CustomerID string
	ContactID  string
	StaffID    string
	Notes      string
	DueDate    *time.Time
}

// TransferInput represents one requested movement.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
	Category      string
	Meta          Metadata
}

// Transfer moves amount between two accounts in its own store transaction.
// A non-positive amount is a deliberate no-op returning (nil, nil): callers
// rely on this to skip zero-value legs of composite workflows.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	var record *domain.Transaction

	attempt := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		record, err = uc.TransferTx(ctx, tx, input)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if uc.retrier == nil {
		if err := attempt(); err != nil {
			return nil, err
		}
		return record, nil
	}

	if err := uc.retrier.Retry(ctx, attempt); err != nil {
		return nil, err
	}

	return record, nil
}

// TransferTx executes one transfer leg inside a caller-owned transaction so
// settlement workflows can compose several legs into a single atomic unit.
func (uc *TransferUseCase) TransferTx(ctx context.Context, tx Transaction, input TransferInput) (*domain.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	fromAccount, err := uc.accountRepo.GetByIDTx(ctx, tx, input.FromAccountID)
	if err != nil {
		return nil, err
	}

	toAccount, err := uc.accountRepo.GetByIDTx(ctx, tx, input.ToAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	fromDelta, toDelta := domain.TransferDeltas(fromAccount.Type, toAccount.Type, input.Amount)

	if err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, fromAccount.ID, fromDelta, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, toAccount.ID, toDelta, now); err != nil {
		return nil, err
	}

	settled := true
	if input.Meta.Settled != nil {
		settled = *input.Meta.Settled
	}

	record := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		Date:          now,
		Amount:        input.Amount,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Description:   input.Description,
		Category:      input.Category,
		CreatedBy:     domain.ActorFromContext(ctx).ID,
		Settled:       settled,
		Posted:        true,
		ShiftID:       input.Meta.ShiftID,
		DueDate:       input.Meta.DueDate,
		ContactID:     input.Meta.ContactID,
		CustomerID:    input.Meta.CustomerID,
		StaffID:       input.Meta.StaffID,
		Notes:         input.Meta.Notes,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := uc.txRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   record.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransferCreated,
		Payload: map[string]any{
			"transaction_id":  record.ID,
			"from_account_id": record.FromAccountID,
			"to_account_id":   record.ToAccountID,
			"amount":          record.Amount.String(),
			"category":        record.Category,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	return record, nil
}

// GetTransaction retrieves a ledger transaction by ID.
func (uc *TransferUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txRepo.GetByID(ctx, id)
}

// QueryTransactions lists ledger transactions matching a filter.
func (uc *TransferUseCase) QueryTransactions(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.txRepo.Query(ctx, filter)
}
