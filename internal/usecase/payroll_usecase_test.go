package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

func seedStaff(t *testing.T, e *env, salary, loanBalance, installment int64) *domain.StaffMember {
	t.Helper()

	staff := &domain.StaffMember{
		Name:            "Marco",
		Role:            "waiter",
		Salary:          decimal.NewFromInt(salary),
		LoanBalance:     decimal.NewFromInt(loanBalance),
		LoanInstallment: decimal.NewFromInt(installment),
	}
	if err := e.payroll.CreateStaff(context.Background(), staff); err != nil {
		t.Fatalf("staff: %v", err)
	}
	return staff
}

func TestPayrollUseCase_IssueAdvance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	staff := seedStaff(t, e, 1000, 0, 0)

	record, err := e.payroll.IssueAdvance(ctx, staff.ID, domain.AccountBusinessBank, decimal.NewFromInt(200))
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	if record.Category != domain.CategoryStaffAdvance {
		t.Errorf("category = %q, want %q", record.Category, domain.CategoryStaffAdvance)
	}
	if record.StaffID != staff.ID {
		t.Errorf("staff id = %q, want %q", record.StaffID, staff.ID)
	}

	e.assertBalance(t, domain.AccountBusinessBank, 4800)
	e.assertBalance(t, domain.AccountStaffAdvances, 200)

	outstanding, err := e.payroll.OutstandingAdvances(ctx, staff.ID)
	if err != nil {
		t.Fatalf("outstanding: %v", err)
	}
	if !outstanding.Equal(decimal.NewFromInt(200)) {
		t.Errorf("outstanding = %s, want 200", outstanding)
	}
}

func TestPayrollUseCase_NegativeNetRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	staff := seedStaff(t, e, 500, 200, 100)

	if _, err := e.payroll.IssueAdvance(ctx, staff.ID, domain.AccountBusinessBank, decimal.NewFromInt(400)); err != nil {
		t.Fatalf("advance: %v", err)
	}

	// 500 base - 400 advances - 200 loan = -100.
	repayment := decimal.NewFromInt(200)
	_, err := e.payroll.Disburse(ctx, usecase.DisburseInput{
		StaffID:       staff.ID,
		Type:          domain.PayoutSalary,
		LoanRepayment: &repayment,
	})
	if err != domain.ErrNegativeNetPayout {
		t.Fatalf("expected ErrNegativeNetPayout, got %v", err)
	}

	// Nothing moved beyond the advance itself.
	e.assertBalance(t, domain.AccountBusinessBank, 4600)
	e.assertBalance(t, domain.AccountPayrollExp, 0)
	e.assertBalance(t, domain.AccountStaffAdvances, 400)
}

func TestPayrollUseCase_Disburse(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	staff := seedStaff(t, e, 1000, 300, 100)

	if _, err := e.payroll.IssueAdvance(ctx, staff.ID, domain.AccountBusinessBank, decimal.NewFromInt(200)); err != nil {
		t.Fatalf("advance: %v", err)
	}

	preview, err := e.payroll.Disburse(ctx, usecase.DisburseInput{
		StaffID: staff.ID,
		Type:    domain.PayoutSalary,
	})
	if err != nil {
		t.Fatalf("disburse: %v", err)
	}

	// 1000 salary - 200 advances - 100 installment.
	if !preview.NetPay.Equal(decimal.NewFromInt(700)) {
		t.Errorf("net pay = %s, want 700", preview.NetPay)
	}

	// Bank paid the advance earlier and the net now: 5000 - 200 - 700.
	e.assertBalance(t, domain.AccountBusinessBank, 4100)
	// Net 700 + advance recovery 200 + loan recovery 100.
	e.assertBalance(t, domain.AccountPayrollExp, 1000)
	// Receivable fully recovered, then loan leg pulls it to -100.
	e.assertBalance(t, domain.AccountStaffAdvances, -100)

	updated, err := e.staff.GetByID(ctx, staff.ID)
	if err != nil {
		t.Fatalf("staff: %v", err)
	}
	if !updated.LoanBalance.Equal(decimal.NewFromInt(200)) {
		t.Errorf("loan balance = %s, want 200", updated.LoanBalance)
	}

	outstanding, err := e.payroll.OutstandingAdvances(ctx, staff.ID)
	if err != nil {
		t.Fatalf("outstanding: %v", err)
	}
	if !outstanding.IsZero() {
		t.Errorf("outstanding = %s, want 0", outstanding)
	}
}

func TestPayrollUseCase_LoanRepaymentCappedAtBalance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	staff := seedStaff(t, e, 1000, 60, 100)

	preview, err := e.payroll.Disburse(ctx, usecase.DisburseInput{
		StaffID: staff.ID,
		Type:    domain.PayoutSalary,
	})
	if err != nil {
		t.Fatalf("disburse: %v", err)
	}

	// Installment 100 but only 60 owed.
	if !preview.LoanRepayment.Equal(decimal.NewFromInt(60)) {
		t.Errorf("repayment = %s, want 60", preview.LoanRepayment)
	}

	updated, err := e.staff.GetByID(ctx, staff.ID)
	if err != nil {
		t.Fatalf("staff: %v", err)
	}
	if !updated.LoanBalance.IsZero() {
		t.Errorf("loan balance = %s, want 0", updated.LoanBalance)
	}
}

func TestPayrollUseCase_SalaryIgnoresEnteredBase(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	staff := seedStaff(t, e, 500, 0, 0)

	// The configured salary wins over whatever base the caller keyed in.
	preview, err := e.payroll.Disburse(ctx, usecase.DisburseInput{
		StaffID:    staff.ID,
		Type:       domain.PayoutSalary,
		BaseAmount: decimal.NewFromInt(9000),
	})
	if err != nil {
		t.Fatalf("disburse: %v", err)
	}

	if !preview.BaseAmount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("base = %s, want 500", preview.BaseAmount)
	}
	if !preview.NetPay.Equal(decimal.NewFromInt(500)) {
		t.Errorf("net pay = %s, want 500", preview.NetPay)
	}
	e.assertBalance(t, domain.AccountPayrollExp, 500)
	e.assertBalance(t, domain.AccountBusinessBank, 4500)
}

func TestPayrollUseCase_ServiceChargePayout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	staff := seedStaff(t, e, 1000, 0, 0)

	preview, err := e.payroll.Disburse(ctx, usecase.DisburseInput{
		StaffID:    staff.ID,
		Type:       domain.PayoutServiceCharge,
		BaseAmount: decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("disburse: %v", err)
	}

	// Service-charge runs use the entered amount, not the salary.
	if !preview.NetPay.Equal(decimal.NewFromInt(250)) {
		t.Errorf("net pay = %s, want 250", preview.NetPay)
	}
	e.assertBalance(t, domain.AccountPayrollExp, 250)
}
