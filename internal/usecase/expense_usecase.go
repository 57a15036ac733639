package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

// ExpenseUseCase logs operating expenses, manages saved templates and
// recurring schedules, and settles pending bills.
type ExpenseUseCase struct {
	txManager     TransactionManager
	templateRepo  ExpenseTemplateRepository
	recurringRepo RecurringExpenseRepository
	txRepo        TransactionRepository
	transferUC    *TransferUseCase
	idGen         IDGenerator
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	templateRepo ExpenseTemplateRepository,
	recurringRepo RecurringExpenseRepository,
	txRepo TransactionRepository,
	transferUC *TransferUseCase,
	idGen IDGenerator,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:     txManager,
		templateRepo:  templateRepo,
		recurringRepo: recurringRepo,
		txRepo:        txRepo,
		transferUC:    transferUC,
		idGen:         idGen,
	}
}

// LogExpenseInput describes one manual expense entry.
type LogExpenseInput struct {
	FromAccountID string
	Amount        decimal.Decimal
	Description   string
	Category      string
	ContactID     string
	Notes         string

	// SaveAsTemplate keeps the entry as a one-click template.
	SaveAsTemplate bool
	TemplateName   string

	// Recurring schedules the entry to auto-fire at the given frequency.
	Recurring bool
	Frequency domain.RecurringFrequency

	// Unpaid books the expense against the pending-bills liability
	// instead of paying it now. SettleBill pays it off later.
	Unpaid  bool
	DueDate *time.Time
}

// Log books an expense from the source account into operating expenses,
// optionally persisting it as a template or recurring schedule.
func (uc *ExpenseUseCase) Log(ctx context.Context, input LogExpenseInput) (*domain.Transaction, error) {
	category := input.Category
	if category == "" {
		category = domain.CategoryOperations
	}

	from := input.FromAccountID
	meta := Metadata{ContactID: input.ContactID, Notes: input.Notes}
	if input.Unpaid {
		from = domain.AccountPendingBills
		unsettled := false
		meta.Settled = &unsettled
		meta.DueDate = input.DueDate
	}

	record, err := uc.transferUC.Transfer(ctx, TransferInput{
		FromAccountID: from,
		ToAccountID:   domain.AccountOperatingExp,
		Amount:        input.Amount,
		Description:   input.Description,
		Category:      category,
		Meta:          meta,
	})
	if err != nil {
		return nil, err
	}

	if input.SaveAsTemplate {
		name := input.TemplateName
		if name == "" {
			name = input.Description
		}

		template := &domain.ExpenseTemplate{
			ID:            uc.idGen.Generate(),
			Name:          name,
			Amount:        input.Amount,
			Category:      category,
			FromAccountID: input.FromAccountID,
			Description:   input.Description,
		}

		if err := uc.templateRepo.Create(ctx, template); err != nil {
			return nil, err
		}
	}

	if input.Recurring {
		recurring := &domain.RecurringExpense{
			ID:            uc.idGen.Generate(),
			Name:          input.Description,
			Amount:        input.Amount,
			Frequency:     input.Frequency,
			FromAccountID: input.FromAccountID,
			Category:      category,
			Description:   input.Description,
			LastGenerated: time.Now().UTC(),
			Active:        true,
		}

		if err := uc.recurringRepo.Create(ctx, recurring); err != nil {
			return nil, err
		}
	}

	return record, nil
}

// Templates lists saved expense templates.
func (uc *ExpenseUseCase) Templates(ctx context.Context) ([]*domain.ExpenseTemplate, error) {
	return uc.templateRepo.List(ctx)
}

// DeleteTemplate removes a saved template.
func (uc *ExpenseUseCase) DeleteTemplate(ctx context.Context, id string) error {
	return uc.templateRepo.Delete(ctx, id)
}

// GenerateDue fires every recurring expense whose interval has elapsed.
// It returns the transactions created; one failing schedule does not stop
// the others.
func (uc *ExpenseUseCase) GenerateDue(ctx context.Context, now time.Time) ([]*domain.Transaction, error) {
	active, err := uc.recurringRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var created []*domain.Transaction
	var firstErr error

	for _, r := range active {
		if !r.Due(now) {
			continue
		}

		record, err := uc.transferUC.Transfer(ctx, TransferInput{
			FromAccountID: r.FromAccountID,
			ToAccountID:   domain.AccountOperatingExp,
			Amount:        r.Amount,
			Description:   "Recurring: " + r.Description,
			Category:      r.Category,
		})
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if err := uc.recurringRepo.UpdateLastGenerated(ctx, r.ID, now); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		created = append(created, record)
	}

	return created, firstErr
}

// Bills lists unpaid expenses booked against the pending-bills liability.
func (uc *ExpenseUseCase) Bills(ctx context.Context) ([]*domain.Transaction, error) {
	unsettled := false
	return uc.txRepo.Query(ctx, TransactionFilter{
		FromAccountID: domain.AccountPendingBills,
		Settled:       &unsettled,
		Limit:         1000,
	})
}

// SettleBill pays off a pending bill: money moves from the source account
// into the pending-bills liability, and the original bill flips to settled.
func (uc *ExpenseUseCase) SettleBill(ctx context.Context, billID, sourceID string) (*domain.Transaction, error) {
	bill, err := uc.txRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	if bill.Settled {
		return nil, domain.ErrBillAlreadySettled
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	record, err := uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: sourceID,
		ToAccountID:   domain.AccountPendingBills,
		Amount:        bill.Amount,
		Description:   "Bill Settlement: " + bill.Description,
		Category:      domain.CategoryDebtSettlement,
		Meta:          Metadata{ContactID: bill.ContactID},
	})
	if err != nil {
		return nil, err
	}

	if err := uc.txRepo.MarkSettled(ctx, tx, []string{bill.ID}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
