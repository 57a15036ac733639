package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

// PayrollUseCase handles staff advances during the month and the monthly
// disbursement that nets them off against the base payout.
type PayrollUseCase struct {
	txManager  TransactionManager
	staffRepo  StaffRepository
	txRepo     TransactionRepository
	outboxRepo OutboxRepository
	transferUC *TransferUseCase
	idGen      IDGenerator
}

// NewPayrollUseCase creates a new PayrollUseCase.
func NewPayrollUseCase(
	txManager TransactionManager,
	staffRepo StaffRepository,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	transferUC *TransferUseCase,
	idGen IDGenerator,
) *PayrollUseCase {
	return &PayrollUseCase{
		txManager:  txManager,
		staffRepo:  staffRepo,
		txRepo:     txRepo,
		outboxRepo: outboxRepo,
		transferUC: transferUC,
		idGen:      idGen,
	}
}

// CreateStaff registers a staff member.
func (uc *PayrollUseCase) CreateStaff(ctx context.Context, staff *domain.StaffMember) error {
	if staff.ID == "" {
		staff.ID = uc.idGen.Generate()
	}
	staff.Active = true
	if staff.JoinedAt.IsZero() {
		staff.JoinedAt = time.Now().UTC()
	}

	return uc.staffRepo.Create(ctx, staff)
}

// ListStaff lists all staff members.
func (uc *PayrollUseCase) ListStaff(ctx context.Context) ([]*domain.StaffMember, error) {
	return uc.staffRepo.List(ctx)
}

// IssueAdvance pays a staff member cash ahead of payroll, raising a
// receivable against them.
func (uc *PayrollUseCase) IssueAdvance(ctx context.Context, staffID, sourceID string, amount decimal.Decimal) (*domain.Transaction, error) {
	staff, err := uc.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}

	if sourceID == "" {
		sourceID = domain.AccountTillFloat
	}

	return uc.transferUC.Transfer(ctx, TransferInput{
		FromAccountID: sourceID,
		ToAccountID:   domain.AccountStaffAdvances,
		Amount:        amount,
		Description:   "Staff Advance: " + staff.Name,
		Category:      domain.CategoryStaffAdvance,
		Meta:          Metadata{StaffID: staff.ID},
	})
}

// OutstandingAdvances is the running advance balance for one staff member:
// posted advances minus posted payroll recoveries.
func (uc *PayrollUseCase) OutstandingAdvances(ctx context.Context, staffID string) (decimal.Decimal, error) {
	posted := true

	issued, err := uc.txRepo.SumAmount(ctx, TransactionFilter{
		StaffID:    staffID,
		Categories: []string{domain.CategoryStaffAdvance},
		Posted:     &posted,
	})
	if err != nil {
		return decimal.Zero, err
	}

	recovered, err := uc.txRepo.SumAmount(ctx, TransactionFilter{
		StaffID:    staffID,
		Categories: []string{domain.CategoryPayrollInternal},
		Posted:     &posted,
	})
	if err != nil {
		return decimal.Zero, err
	}

	return issued.Sub(recovered), nil
}

// PayoutPreview shows the arithmetic of a disbursement before it runs.
type PayoutPreview struct {
	Staff         *domain.StaffMember
	BaseAmount    decimal.Decimal
	Advances      decimal.Decimal
	LoanRepayment decimal.Decimal
	NetPay        decimal.Decimal
}

// DisburseInput describes one payroll disbursement.
type DisburseInput struct {
	StaffID       string
	Type          domain.PayoutType
	BaseAmount    decimal.Decimal
	LoanRepayment *decimal.Decimal
	SourceID      string
}

// Preview computes the net payout without moving money.
func (uc *PayrollUseCase) Preview(ctx context.Context, input DisburseInput) (*PayoutPreview, error) {
	staff, err := uc.staffRepo.GetByID(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}

	// Salary payouts always use the configured salary; the input base only
	// applies to free-entry payouts such as service charge.
	base := input.BaseAmount
	if input.Type == domain.PayoutSalary {
		base = staff.Salary
	}

	advances, err := uc.OutstandingAdvances(ctx, staff.ID)
	if err != nil {
		return nil, err
	}
	if advances.IsNegative() {
		advances = decimal.Zero
	}

	repayment := staff.SuggestedLoanRepayment()
	if input.LoanRepayment != nil {
		repayment = *input.LoanRepayment
		if repayment.GreaterThan(staff.LoanBalance) {
			repayment = staff.LoanBalance
		}
	}

	return &PayoutPreview{
		Staff:         staff,
		BaseAmount:    base,
		Advances:      advances,
		LoanRepayment: repayment,
		NetPay:        base.Sub(advances).Sub(repayment),
	}, nil
}

// Disburse runs one payroll payout. A negative net pay rejects the whole
// run before anything moves; the cash leg, the advance recovery, the loan
// recovery and the loan balance update commit as one unit.
func (uc *PayrollUseCase) Disburse(ctx context.Context, input DisburseInput) (*PayoutPreview, error) {
	preview, err := uc.Preview(ctx, input)
	if err != nil {
		return nil, err
	}

	if preview.NetPay.IsNegative() {
		return nil, domain.ErrNegativeNetPayout
	}

	staff := preview.Staff

	sourceID := input.SourceID
	if sourceID == "" {
		sourceID = domain.AccountBusinessBank
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1. Net cash out to the staff member.
	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: sourceID,
		ToAccountID:   domain.AccountPayrollExp,
		Amount:        preview.NetPay,
		Description:   "Payroll: " + staff.Name,
		Category:      domain.CategoryStaffPayroll,
		Meta:          Metadata{StaffID: staff.ID},
	})
	if err != nil {
		return nil, err
	}

	// 2. Recover outstanding advances against the receivable.
	_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
		FromAccountID: domain.AccountStaffAdvances,
		ToAccountID:   domain.AccountPayrollExp,
		Amount:        preview.Advances,
		Description:   "Advance Recovery: " + staff.Name,
		Category:      domain.CategoryPayrollInternal,
		Meta:          Metadata{StaffID: staff.ID},
	})
	if err != nil {
		return nil, err
	}

	// 3. Recover the loan installment and reduce the tracked balance.
	if preview.LoanRepayment.IsPositive() {
		_, err = uc.transferUC.TransferTx(ctx, tx, TransferInput{
			FromAccountID: domain.AccountStaffAdvances,
			ToAccountID:   domain.AccountPayrollExp,
			Amount:        preview.LoanRepayment,
			Description:   "Loan Repayment: " + staff.Name,
			Category:      domain.CategoryLoanRepayment,
			Meta:          Metadata{StaffID: staff.ID},
		})
		if err != nil {
			return nil, err
		}

		remaining := staff.LoanBalance.Sub(preview.LoanRepayment)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		if err := uc.staffRepo.UpdateLoanBalance(ctx, tx, staff.ID, remaining); err != nil {
			return nil, err
		}
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   staff.ID,
		AggregateType: domain.AggregateTypeStaff,
		EventType:     domain.EventTypePayrollPaid,
		Payload: map[string]any{
			"staff_id": staff.ID,
			"net_pay":  preview.NetPay.String(),
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return preview, nil
}
