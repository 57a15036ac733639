package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

// CardReconUseCase matches accumulated card-clearing transactions against
// the net amount the bank actually deposited, booking the gap as fees.
type CardReconUseCase struct {
	txManager  TransactionManager
	txRepo     TransactionRepository
	outboxRepo OutboxRepository
	transferUC *TransferUseCase
	idGen      IDGenerator
}

// NewCardReconUseCase creates a new CardReconUseCase.
func NewCardReconUseCase(
	txManager TransactionManager,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	transferUC *TransferUseCase,
	idGen IDGenerator,
) *CardReconUseCase {
	return &CardReconUseCase{
		txManager:  txManager,
		txRepo:     txRepo,
		outboxRepo: outboxRepo,
		transferUC: transferUC,
		idGen:      idGen,
	}
}

// PendingBatch lists the unsettled card transactions waiting in the
// clearing account.
func (uc *CardReconUseCase) PendingBatch(ctx context.Context) ([]*domain.Transaction, error) {
	settled := false
	return uc.txRepo.Query(ctx, TransactionFilter{
		ToAccountID: domain.AccountCardClearing,
		Settled:     &settled,
		Limit:       1000,
	})
}

// SettleBatchInput selects the batch and states what the bank deposited.
type SettleBatchInput struct {
	TransactionIDs []string
	NetReceived    decimal.Decimal
	BankAccountID  string
}

// BatchSettlement summarizes the outcome of a settled card batch.
type BatchSettlement struct {
	Gross      decimal.Decimal
	Net        decimal.Decimal
	Fees       decimal.Decimal
	FeePercent decimal.Decimal
}

// Settle moves a selected card batch out of clearing: the net to the bank,
// the fee gap to operating expenses, and flips every selected transaction
// to settled, all in one store transaction.
func (uc *CardReconUseCase) Settle(ctx context.Context, input SettleBatchInput) (*BatchSettlement, error) {
	if len(input.TransactionIDs) == 0 {
		return nil, domain.ErrNothingSelected
	}

	if input.NetReceived.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	bankID := input.BankAccountID
	if bankID == "" {
		bankID = domain.AccountBusinessBank
	}

	gross := decimal.Zero
	for _, id := range input.TransactionIDs {
		t, err := uc.txRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t.Settled {
			return nil, domain.ErrTransactionSettled
		}
		if t.ToAccountID != domain.AccountCardClearing {
			return nil, domain.ErrSelectionMismatch
		}
		gross = gross.Add(t.Amount)
	}

	fees := gross.Sub(input.NetReceived)
	if fees.IsNegative() {
		fees = decimal.Zero
	}

	feePercent := decimal.Zero
	if gross.IsPositive() {
		feePercent = fees.Div(gross).Mul(decimal.NewFromInt(100))
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountCardClearing,
		ToAccountID:   bankID,
		Amount:        input.NetReceived,
		Description:   "Bank Settlement (Net of Fees)",
		Category:      domain.CategorySettlement,
	})
	if err != nil {
		return nil, err
	}

	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountCardClearing,
		ToAccountID:   domain.AccountOperatingExp,
		Amount:        fees,
		Description:   "Card Processing Fees",
		Category:      domain.CategoryBankCharges,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.txRepo.MarkSettled(ctx, tx, input.TransactionIDs); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   input.TransactionIDs[0],
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeCardBatchSettled,
		Payload: map[string]any{
			"batch_size": len(input.TransactionIDs),
			"gross":      gross.String(),
			"net":        input.NetReceived.String(),
			"fees":       fees.String(),
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &BatchSettlement{
		Gross:      gross,
		Net:        input.NetReceived,
		Fees:       fees,
		FeePercent: feePercent,
	}, nil
}
