package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

// ShiftUseCase runs the till session lifecycle: open with a float snapshot,
// move cash during the day, close with a full reconciliation of gross sales
// into ledger movements plus a variance leg.
type ShiftUseCase struct {
	txManager    TransactionManager
	shiftRepo    ShiftRepository
	accountRepo  AccountRepository
	txRepo       TransactionRepository
	partnerRepo  PartnerSaleRepository
	customerRepo CustomerRepository
	outboxRepo   OutboxRepository
	transferUC   *TransferUseCase
	idGen        IDGenerator
}

// NewShiftUseCase creates a new ShiftUseCase.
func NewShiftUseCase(
	txManager TransactionManager,
	shiftRepo ShiftRepository,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	partnerRepo PartnerSaleRepository,
	customerRepo CustomerRepository,
	outboxRepo OutboxRepository,
	transferUC *TransferUseCase,
	idGen IDGenerator,
) *ShiftUseCase {
	return &ShiftUseCase{
		txManager:    txManager,
		shiftRepo:    shiftRepo,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		partnerRepo:  partnerRepo,
		customerRepo: customerRepo,
		outboxRepo:   outboxRepo,
		transferUC:   transferUC,
		idGen:        idGen,
	}
}

// Open starts a new shift, snapshotting the till balance as the opening
// float. At most one shift may be OPEN; the till balance stays the source
// of truth, the shift only checkpoints it.
func (uc *ShiftUseCase) Open(ctx context.Context) (*domain.Shift, error) {
	if _, err := uc.shiftRepo.Open(ctx); err == nil {
		return nil, domain.ErrShiftAlreadyOpen
	} else if err != domain.ErrShiftNotOpen {
		return nil, err
	}

	till, err := uc.accountRepo.GetByID(ctx, domain.AccountTillFloat)
	if err != nil {
		return nil, err
	}

	shift := &domain.Shift{
		ID:           uc.idGen.Generate(),
		Status:       domain.ShiftOpen,
		OpenedAt:     time.Now().UTC(),
		OpenedBy:     domain.ActorFromContext(ctx).DisplayName,
		OpeningFloat: till.Balance,
	}

	if err := uc.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}

	return shift, nil
}

// Current returns the latest shift, open or closed.
func (uc *ShiftUseCase) Current(ctx context.Context) (*domain.Shift, error) {
	return uc.shiftRepo.Latest(ctx)
}

// TopUpFloat injects cash into the till from another account ("Capital").
func (uc *ShiftUseCase) TopUpFloat(ctx context.Context, sourceID string, amount decimal.Decimal) (*domain.Transaction, error) {
	return uc.tillTransfer(ctx, TransferInput{
		FromAccountID: sourceID,
		ToAccountID:   domain.AccountTillFloat,
		Amount:        amount,
		Description:   "Register Cash Injection (Float Top-up)",
		Category:      domain.CategoryCapital,
	})
}

// BankDrop moves counted cash out of the till into a bank account
// ("Transfer"). It counts as money leaving the drawer for expected-cash.
func (uc *ShiftUseCase) BankDrop(ctx context.Context, targetID string, amount decimal.Decimal) (*domain.Transaction, error) {
	return uc.tillTransfer(ctx, TransferInput{
		FromAccountID: domain.AccountTillFloat,
		ToAccountID:   targetID,
		Amount:        amount,
		Description:   "Register Cash Deposit (Bank Drop)",
		Category:      domain.CategoryTransfer,
	})
}

// QuickExpense pays a small expense straight out of the drawer.
func (uc *ShiftUseCase) QuickExpense(ctx context.Context, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	return uc.tillTransfer(ctx, TransferInput{
		FromAccountID: domain.AccountTillFloat,
		ToAccountID:   domain.AccountOperatingExp,
		Amount:        amount,
		Description:   "Shift Expense: " + description,
		Category:      domain.CategoryOperations,
	})
}

// tillTransfer stamps the open shift's ID (when one exists) so the close
// can sum drawer movements by explicit relation instead of a time window.
func (uc *ShiftUseCase) tillTransfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	if shift, err := uc.shiftRepo.Open(ctx); err == nil {
		input.Meta.ShiftID = shift.ID
	} else if err != domain.ErrShiftNotOpen {
		return nil, err
	}

	return uc.transferUC.Transfer(ctx, input)
}

// CloseShiftInput is the raw count entered when closing a shift.
type CloseShiftInput struct {
	TotalSales            decimal.Decimal
	CardPayments          decimal.Decimal
	CreditBills           decimal.Decimal
	CreditBillCustomerID  string
	HikingBarSales        decimal.Decimal
	ForeignCurrencyAmount decimal.Decimal
	ForeignCurrencyNotes  string
	ActualCash            decimal.Decimal
	Notes                 string
}

// ExpectedCash computes the cash that should be in the drawer for the open
// shift given the close inputs entered so far.
func (uc *ShiftUseCase) ExpectedCash(ctx context.Context, input CloseShiftInput) (decimal.Decimal, error) {
	shift, err := uc.shiftRepo.Open(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	debits, err := uc.tillDebits(ctx, shift.ID)
	if err != nil {
		return decimal.Zero, err
	}

	localCash := input.TotalSales.
		Sub(input.CardPayments).
		Sub(input.CreditBills).
		Sub(input.HikingBarSales).
		Sub(input.ForeignCurrencyAmount)

	return shift.OpeningFloat.Add(localCash).Sub(debits), nil
}

func (uc *ShiftUseCase) tillDebits(ctx context.Context, shiftID string) (decimal.Decimal, error) {
	return uc.txRepo.SumAmount(ctx, TransactionFilter{
		FromAccountID: domain.AccountTillFloat,
		Categories:    domain.TillDebitCategories,
		ShiftID:       shiftID,
	})
}

// Close reconciles and terminates the open shift. Validation runs before
// any transfer; all legs plus the CLOSED snapshot are committed as one
// store transaction, so a failed leg leaves the shift untouched and open.
func (uc *ShiftUseCase) Close(ctx context.Context, input CloseShiftInput) (*domain.Shift, error) {
	shift, err := uc.shiftRepo.Open(ctx)
	if err != nil {
		return nil, err
	}

	if input.CreditBills.IsPositive() && input.CreditBillCustomerID == "" {
		return nil, domain.ErrCustomerRequired
	}

	var customer *domain.Customer
	if input.CreditBills.IsPositive() {
		customer, err = uc.customerRepo.GetByID(ctx, input.CreditBillCustomerID)
		if err != nil {
			return nil, err
		}
	}

	debits, err := uc.tillDebits(ctx, shift.ID)
	if err != nil {
		return nil, err
	}

	localCash := input.TotalSales.
		Sub(input.CardPayments).
		Sub(input.CreditBills).
		Sub(input.HikingBarSales).
		Sub(input.ForeignCurrencyAmount)

	expectedCash := shift.OpeningFloat.Add(localCash).Sub(debits)
	variance := input.ActualCash.Sub(expectedCash)

	now := time.Now().UTC()
	unsettled := false

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1. Local cash portion lands in the till.
	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountRevenue,
		ToAccountID:   domain.AccountTillFloat,
		Amount:        localCash,
		Description:   "Shift Cash Sales (Local)",
		Category:      domain.CategoryRevenue,
		Meta:          Metadata{ShiftID: shift.ID},
	})
	if err != nil {
		return nil, err
	}

	// 2. Card payments wait in the clearing account for bank settlement.
	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountRevenue,
		ToAccountID:   domain.AccountCardClearing,
		Amount:        input.CardPayments,
		Description:   "Shift Card Settlement",
		Category:      domain.CategoryRevenue,
		Meta:          Metadata{Settled: &unsettled, ShiftID: shift.ID},
	})
	if err != nil {
		return nil, err
	}

	// 3. Partner sales raise a PENDING partner-ledger record alongside the
	// receivable transfer.
	if input.HikingBarSales.IsPositive() {
		sale := &domain.PartnerSale{
			ID:          uc.idGen.Generate(),
			Date:        now,
			Amount:      input.HikingBarSales,
			Description: "Partner Sales: " + now.Format("2006-01-02"),
			Status:      domain.PartnerSalePending,
		}

		if err := uc.partnerRepo.Create(ctx, tx, sale); err != nil {
			return nil, err
		}

		_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
			FromAccountID: domain.AccountRevenue,
			ToAccountID:   domain.AccountPartnerRec,
			Amount:        input.HikingBarSales,
			Description:   "Partner Receivable Generation",
			Category:      domain.CategoryPartnerRevenue,
			Meta:          Metadata{ShiftID: shift.ID},
		})
		if err != nil {
			return nil, err
		}
	}

	// 4. Credit bills become an open customer receivable.
	if input.CreditBills.IsPositive() {
		_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
			FromAccountID: domain.AccountRevenue,
			ToAccountID:   domain.AccountCustomerRec,
			Amount:        input.CreditBills,
			Description:   "Client Credit: " + customer.Name,
			Category:      domain.CategoryCustomerCredit,
			Meta:          Metadata{Settled: &unsettled, CustomerID: customer.ID, ShiftID: shift.ID},
		})
		if err != nil {
			return nil, err
		}
	}

	// 5. Foreign currency goes to the reserve.
	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountRevenue,
		ToAccountID:   domain.AccountFXReserve,
		Amount:        input.ForeignCurrencyAmount,
		Description:   "FX Extraction: " + input.ForeignCurrencyNotes,
		Category:      domain.CategoryForeignExchange,
		Meta:          Metadata{Notes: input.ForeignCurrencyNotes, ShiftID: shift.ID},
	})
	if err != nil {
		return nil, err
	}

	// 6. Variance leg: shortages are expensed, surpluses booked as revenue.
	if variance.IsNegative() {
		_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
			FromAccountID: domain.AccountTillFloat,
			ToAccountID:   domain.AccountOperatingExp,
			Amount:        variance.Abs(),
			Description:   "Cash Shortage",
			Category:      domain.CategoryVariance,
			Meta:          Metadata{ShiftID: shift.ID},
		})
	} else {
		_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
			FromAccountID: domain.AccountRevenue,
			ToAccountID:   domain.AccountTillFloat,
			Amount:        variance,
			Description:   "Cash Surplus",
			Category:      domain.CategoryVariance,
			Meta:          Metadata{ShiftID: shift.ID},
		})
	}
	if err != nil {
		return nil, err
	}

	// 7. Snapshot everything into the CLOSED shift.
	shift.Status = domain.ShiftClosed
	shift.ClosedAt = &now
	shift.ClosedBy = domain.ActorFromContext(ctx).DisplayName
	shift.TotalSales = input.TotalSales
	shift.CardPayments = input.CardPayments
	shift.CreditBills = input.CreditBills
	shift.CreditBillCustomerID = input.CreditBillCustomerID
	shift.HikingBarSales = input.HikingBarSales
	shift.ForeignCurrencyAmount = input.ForeignCurrencyAmount
	shift.ForeignCurrencyNotes = input.ForeignCurrencyNotes
	shift.ExpectedCash = expectedCash
	shift.ActualCash = input.ActualCash
	shift.Variance = variance
	shift.Notes = input.Notes

	if err := uc.shiftRepo.Update(ctx, tx, shift); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   shift.ID,
		AggregateType: domain.AggregateTypeShift,
		EventType:     domain.EventTypeShiftClosed,
		Payload: map[string]any{
			"shift_id":      shift.ID,
			"expected_cash": expectedCash.String(),
			"actual_cash":   input.ActualCash.String(),
			"variance":      variance.String(),
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return shift, nil
}
