package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

// PartnerUseCase manages the external partner ledger: sales recorded on the
// partner's behalf and the periodic settlement that decomposes each gross
// sale into cash, card, service charge and contra parts.
type PartnerUseCase struct {
	txManager   TransactionManager
	partnerRepo PartnerSaleRepository
	outboxRepo  OutboxRepository
	transferUC  *TransferUseCase
	idGen       IDGenerator
}

// NewPartnerUseCase creates a new PartnerUseCase.
func NewPartnerUseCase(
	txManager TransactionManager,
	partnerRepo PartnerSaleRepository,
	outboxRepo OutboxRepository,
	transferUC *TransferUseCase,
	idGen IDGenerator,
) *PartnerUseCase {
	return &PartnerUseCase{
		txManager:   txManager,
		partnerRepo: partnerRepo,
		outboxRepo:  outboxRepo,
		transferUC:  transferUC,
		idGen:       idGen,
	}
}

// RecordSale books a standalone partner sale: a PENDING ledger entry plus
// the receivable transfer, in one store transaction.
func (uc *PartnerUseCase) RecordSale(ctx context.Context, amount decimal.Decimal, description string) (*domain.PartnerSale, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	sale := &domain.PartnerSale{
		ID:          uc.idGen.Generate(),
		Date:        time.Now().UTC(),
		Amount:      amount,
		Description: description,
		Status:      domain.PartnerSalePending,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.partnerRepo.Create(ctx, tx, sale); err != nil {
		return nil, err
	}

	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountRevenue,
		ToAccountID:   domain.AccountPartnerRec,
		Amount:        amount,
		Description:   "Partner Receivable Generation",
		Category:      domain.CategoryPartnerRevenue,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return sale, nil
}

// ListPending lists partner sales awaiting settlement.
func (uc *PartnerUseCase) ListPending(ctx context.Context) ([]*domain.PartnerSale, error) {
	return uc.partnerRepo.ListPending(ctx)
}

// Settle reconciles one pending partner sale against an allocation of how
// the partner actually paid. The allocation must cover the sale amount
// within tolerance before any leg runs; the legs and the RECONCILED flip
// commit together.
func (uc *PartnerUseCase) Settle(ctx context.Context, saleID string, alloc domain.PartnerAllocation) (*domain.PartnerSale, error) {
	sale, err := uc.partnerRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if sale.Status != domain.PartnerSalePending {
		return nil, domain.ErrPartnerSaleSettled
	}

	if !alloc.SumMatches(sale.Amount) {
		return nil, domain.ErrAllocationMismatch
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Cash collected on the partner's behalf goes straight into the till.
	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountPartnerRec,
		ToAccountID:   domain.AccountTillFloat,
		Amount:        alloc.Cash,
		Description:   "Partner Settlement (Cash): " + sale.Description,
		Category:      domain.CategoryPartnerSettle,
	})
	if err != nil {
		return nil, err
	}

	// Card portion waits in the partner clearing account for its own bank
	// settlement, so it stays unsettled.
	unsettled := false
	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountPartnerRec,
		ToAccountID:   domain.AccountPartnerCard,
		Amount:        alloc.Card,
		Description:   "Partner Settlement (Card): " + sale.Description,
		Category:      domain.CategoryPartnerSettle,
		Meta:          Metadata{Settled: &unsettled},
	})
	if err != nil {
		return nil, err
	}

	// The service charge is our cut, booked as earned revenue.
	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountPartnerRec,
		ToAccountID:   domain.AccountRevenue,
		Amount:        alloc.ServiceCharge,
		Description:   "Partner Service Charge: " + sale.Description,
		Category:      domain.CategoryPartnerFee,
	})
	if err != nil {
		return nil, err
	}

	// Contra offsets goods the partner supplied to us.
	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountPartnerRec,
		ToAccountID:   domain.AccountOperatingExp,
		Amount:        alloc.Contra,
		Description:   "Partner Contra: " + sale.Description,
		Category:      domain.CategoryContraSettle,
	})
	if err != nil {
		return nil, err
	}

	reconciledBy := domain.ActorFromContext(ctx).DisplayName
	if err := uc.partnerRepo.MarkReconciled(ctx, tx, sale.ID, reconciledBy, now, alloc); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   sale.ID,
		AggregateType: domain.AggregateTypePartnerSale,
		EventType:     domain.EventTypePartnerSettled,
		Payload: map[string]any{
			"sale_id": sale.ID,
			"amount":  sale.Amount.String(),
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	sale.Status = domain.PartnerSaleReconciled
	sale.ReconciledAt = &now
	sale.ReconciledBy = reconciledBy
	sale.Settlement = &alloc

	return sale, nil
}
