package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

func TestExpenseUseCase_Log(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	record, err := e.expense.Log(ctx, usecase.LogExpenseInput{
		FromAccountID: domain.AccountBusinessBank,
		Amount:        decimal.NewFromInt(50),
		Description:   "vegetable delivery",
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}

	if record.Category != domain.CategoryOperations {
		t.Errorf("category = %q, want default %q", record.Category, domain.CategoryOperations)
	}

	e.assertBalance(t, domain.AccountBusinessBank, 4950)
	e.assertBalance(t, domain.AccountOperatingExp, 50)
}

func TestExpenseUseCase_LogSavesTemplate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.expense.Log(ctx, usecase.LogExpenseInput{
		FromAccountID:  domain.AccountBusinessBank,
		Amount:         decimal.NewFromInt(80),
		Description:    "laundry service",
		SaveAsTemplate: true,
		TemplateName:   "Laundry",
	}); err != nil {
		t.Fatalf("log: %v", err)
	}

	templates, err := e.expense.Templates(ctx)
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}
	if templates[0].Name != "Laundry" || !templates[0].Amount.Equal(decimal.NewFromInt(80)) {
		t.Errorf("template = %+v, want Laundry/80", templates[0])
	}

	if err := e.expense.DeleteTemplate(ctx, templates[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	templates, err = e.expense.Templates(ctx)
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	if len(templates) != 0 {
		t.Errorf("expected no templates after delete, got %d", len(templates))
	}
}

func TestExpenseUseCase_RecurringGeneration(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.expense.Log(ctx, usecase.LogExpenseInput{
		FromAccountID: domain.AccountBusinessBank,
		Amount:        decimal.NewFromInt(120),
		Description:   "internet bill",
		Recurring:     true,
		Frequency:     domain.FrequencyWeekly,
	}); err != nil {
		t.Fatalf("log: %v", err)
	}
	e.assertBalance(t, domain.AccountBusinessBank, 4880)

	// Not due yet: nothing fires.
	created, err := e.expense.GenerateDue(ctx, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("expected nothing due, got %d", len(created))
	}

	// A week later it fires once.
	created, err = e.expense.GenerateDue(ctx, time.Now().UTC().Add(8*24*time.Hour))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected one generated expense, got %d", len(created))
	}

	e.assertBalance(t, domain.AccountBusinessBank, 4760)
	e.assertBalance(t, domain.AccountOperatingExp, 240)
}

func TestExpenseUseCase_SettleBill(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// An unpaid supplier bill: the liability grows alongside the expense.
	due := time.Now().UTC().Add(14 * 24 * time.Hour)
	bill, err := e.expense.Log(ctx, usecase.LogExpenseInput{
		Amount:      decimal.NewFromInt(80),
		Description: "wine supplier invoice",
		Unpaid:      true,
		DueDate:     &due,
	})
	if err != nil {
		t.Fatalf("bill: %v", err)
	}
	e.assertBalance(t, domain.AccountPendingBills, 80)

	bills, err := e.expense.Bills(ctx)
	if err != nil {
		t.Fatalf("bills: %v", err)
	}
	if len(bills) != 1 || bills[0].ID != bill.ID {
		t.Fatalf("expected the unpaid bill listed, got %d", len(bills))
	}

	record, err := e.expense.SettleBill(ctx, bill.ID, domain.AccountBusinessBank)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}

	if record.Category != domain.CategoryDebtSettlement {
		t.Errorf("category = %q, want %q", record.Category, domain.CategoryDebtSettlement)
	}

	e.assertBalance(t, domain.AccountPendingBills, 0)
	e.assertBalance(t, domain.AccountBusinessBank, 4920)

	settled, err := e.transfer.GetTransaction(ctx, bill.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !settled.Settled {
		t.Error("expected original bill settled")
	}

	if _, err := e.expense.SettleBill(ctx, bill.ID, domain.AccountBusinessBank); err != domain.ErrBillAlreadySettled {
		t.Errorf("expected ErrBillAlreadySettled, got %v", err)
	}
}
