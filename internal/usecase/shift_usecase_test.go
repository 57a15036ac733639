package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

func TestShiftUseCase_OpenSnapshotsTillBalance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	shift, err := e.shift.Open(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if shift.Status != domain.ShiftOpen {
		t.Errorf("status = %q, want OPEN", shift.Status)
	}
	if !shift.OpeningFloat.Equal(decimal.NewFromInt(150)) {
		t.Errorf("opening float = %s, want 150", shift.OpeningFloat)
	}
}

func TestShiftUseCase_SecondOpenRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.shift.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := e.shift.Open(ctx); err != domain.ErrShiftAlreadyOpen {
		t.Errorf("expected ErrShiftAlreadyOpen, got %v", err)
	}
}

func TestShiftUseCase_CloseWithoutOpenRejected(t *testing.T) {
	e := newEnv(t)

	_, err := e.shift.Close(context.Background(), usecase.CloseShiftInput{
		TotalSales: decimal.NewFromInt(100),
		ActualCash: decimal.NewFromInt(100),
	})
	if err != domain.ErrShiftNotOpen {
		t.Errorf("expected ErrShiftNotOpen, got %v", err)
	}
}

func TestShiftUseCase_CreditBillsRequireCustomer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.shift.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}

	_, err := e.shift.Close(ctx, usecase.CloseShiftInput{
		TotalSales:  decimal.NewFromInt(100),
		CreditBills: decimal.NewFromInt(40),
		ActualCash:  decimal.NewFromInt(60),
	})
	if err != domain.ErrCustomerRequired {
		t.Errorf("expected ErrCustomerRequired, got %v", err)
	}
}

// Full close walkthrough: opening float 150, one 30 drawer expense during
// the day, gross sales 1000 split into 200 card, 100 credit, 50 partner.
// Local cash 650, expected 150+650-30=770, counted 760, shortage 10.
func TestShiftUseCase_CloseReconciliation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	customer, err := e.debt.CreateCustomer(ctx, "Alpine Tours", "", "")
	if err != nil {
		t.Fatalf("customer: %v", err)
	}

	opened, err := e.shift.Open(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := e.shift.QuickExpense(ctx, decimal.NewFromInt(30), "gas refill"); err != nil {
		t.Fatalf("quick expense: %v", err)
	}
	e.assertBalance(t, domain.AccountTillFloat, 120)

	closed, err := e.shift.Close(ctx, usecase.CloseShiftInput{
		TotalSales:           decimal.NewFromInt(1000),
		CardPayments:         decimal.NewFromInt(200),
		CreditBills:          decimal.NewFromInt(100),
		CreditBillCustomerID: customer.ID,
		HikingBarSales:       decimal.NewFromInt(50),
		ActualCash:           decimal.NewFromInt(760),
	})
	if err != nil {
		t.Fatalf("close: %v", err)
	}

	if closed.Status != domain.ShiftClosed {
		t.Errorf("status = %q, want CLOSED", closed.Status)
	}
	if !closed.ExpectedCash.Equal(decimal.NewFromInt(770)) {
		t.Errorf("expected cash = %s, want 770", closed.ExpectedCash)
	}
	if !closed.Variance.Equal(decimal.NewFromInt(-10)) {
		t.Errorf("variance = %s, want -10", closed.Variance)
	}

	// Till ends at the counted amount: 120 + 650 cash - 10 shortage.
	e.assertBalance(t, domain.AccountTillFloat, 760)
	e.assertBalance(t, domain.AccountCardClearing, 200)
	e.assertBalance(t, domain.AccountCustomerRec, 100)
	e.assertBalance(t, domain.AccountPartnerRec, 50)
	// 30 drawer expense plus the 10 shortage.
	e.assertBalance(t, domain.AccountOperatingExp, 40)
	// Revenue drains as sales flow out: 650+200+100+50.
	e.assertBalance(t, domain.AccountRevenue, -1000)

	// Card leg stays open for bank settlement.
	settled := false
	cardLegs, err := e.transfer.QueryTransactions(ctx, usecase.TransactionFilter{
		ToAccountID: domain.AccountCardClearing,
		Settled:     &settled,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(cardLegs) != 1 || !cardLegs[0].Amount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected one open 200 card leg, got %+v", cardLegs)
	}
	if cardLegs[0].ShiftID != opened.ID {
		t.Errorf("card leg shift id = %q, want %q", cardLegs[0].ShiftID, opened.ID)
	}

	// Credit leg carries the customer.
	creditLegs, err := e.transfer.QueryTransactions(ctx, usecase.TransactionFilter{
		CustomerID: customer.ID,
		Settled:    &settled,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(creditLegs) != 1 || !creditLegs[0].Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected one open 100 credit leg, got %+v", creditLegs)
	}

	// Partner sales raised a pending ledger entry.
	pending, err := e.partner.ListPending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || !pending[0].Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected one pending 50 partner sale, got %+v", pending)
	}
}

func TestShiftUseCase_CloseSurplus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.shift.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}

	// Local cash 100, expected 250, counted 255: surplus 5 booked as revenue.
	closed, err := e.shift.Close(ctx, usecase.CloseShiftInput{
		TotalSales: decimal.NewFromInt(100),
		ActualCash: decimal.NewFromInt(255),
	})
	if err != nil {
		t.Fatalf("close: %v", err)
	}

	if !closed.Variance.Equal(decimal.NewFromInt(5)) {
		t.Errorf("variance = %s, want 5", closed.Variance)
	}

	e.assertBalance(t, domain.AccountTillFloat, 255)
	e.assertBalance(t, domain.AccountOperatingExp, 0)
}

func TestShiftUseCase_ExpectedCashTracksDrawerMoves(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.shift.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := e.shift.BankDrop(ctx, domain.AccountBusinessBank, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("bank drop: %v", err)
	}
	if _, err := e.shift.TopUpFloat(ctx, domain.AccountBusinessBank, decimal.NewFromInt(20)); err != nil {
		t.Fatalf("top up: %v", err)
	}

	expected, err := e.shift.ExpectedCash(ctx, usecase.CloseShiftInput{
		TotalSales: decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("expected cash: %v", err)
	}

	// 150 float + 300 cash - 50 drop. The top-up is money INTO the drawer,
	// not a debit, so it does not reduce expected cash.
	if !expected.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected cash = %s, want 400", expected)
	}
}
