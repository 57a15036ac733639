package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/usecase"
	"github.com/osteria/tillbook/internal/usecase/mocks"
)

// env wires every use case against shared in-memory mocks with the default
// chart of accounts seeded.
type env struct {
	accounts  *mocks.MockAccountRepository
	txs       *mocks.MockTransactionRepository
	shifts    *mocks.MockShiftRepository
	partners  *mocks.MockPartnerSaleRepository
	staff     *mocks.MockStaffRepository
	customers *mocks.MockCustomerRepository
	templates *mocks.MockExpenseTemplateRepository
	recurring *mocks.MockRecurringExpenseRepository
	outbox    *mocks.MockOutboxRepository
	txMgr     *mocks.MockTransactionManager
	idGen     *mocks.MockIDGenerator

	transfer *usecase.TransferUseCase
	registry *usecase.RegistryUseCase
	shift    *usecase.ShiftUseCase
	cards    *usecase.CardReconUseCase
	debt     *usecase.DebtUseCase
	partner  *usecase.PartnerUseCase
	payroll  *usecase.PayrollUseCase
	expense  *usecase.ExpenseUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		accounts:  mocks.NewMockAccountRepository(),
		txs:       mocks.NewMockTransactionRepository(),
		shifts:    mocks.NewMockShiftRepository(),
		partners:  mocks.NewMockPartnerSaleRepository(),
		staff:     mocks.NewMockStaffRepository(),
		customers: mocks.NewMockCustomerRepository(),
		templates: mocks.NewMockExpenseTemplateRepository(),
		recurring: mocks.NewMockRecurringExpenseRepository(),
		outbox:    mocks.NewMockOutboxRepository(),
		txMgr:     mocks.NewMockTransactionManager(),
		idGen:     mocks.NewMockIDGenerator(),
	}

	e.transfer = usecase.NewTransferUseCase(e.txMgr, e.accounts, e.txs, e.outbox, e.idGen)
	e.registry = usecase.NewRegistryUseCase(e.accounts, e.transfer)
	e.shift = usecase.NewShiftUseCase(e.txMgr, e.shifts, e.accounts, e.txs, e.partners, e.customers, e.outbox, e.transfer, e.idGen)
	e.cards = usecase.NewCardReconUseCase(e.txMgr, e.txs, e.outbox, e.transfer, e.idGen)
	e.debt = usecase.NewDebtUseCase(e.txMgr, e.txs, e.customers, e.outbox, e.transfer, e.idGen)
	e.partner = usecase.NewPartnerUseCase(e.txMgr, e.partners, e.outbox, e.transfer, e.idGen)
	e.payroll = usecase.NewPayrollUseCase(e.txMgr, e.staff, e.txs, e.outbox, e.transfer, e.idGen)
	e.expense = usecase.NewExpenseUseCase(e.txMgr, e.templates, e.recurring, e.txs, e.transfer, e.idGen)

	if err := e.registry.SeedIfEmpty(context.Background()); err != nil {
		t.Fatalf("seeding chart: %v", err)
	}

	return e
}

func (e *env) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()

	account, err := e.accounts.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get account %s: %v", id, err)
	}

	return account.Balance
}

func (e *env) assertBalance(t *testing.T, id string, want int64) {
	t.Helper()

	got := e.balance(t, id)
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("account %s balance = %s, want %d", id, got, want)
	}
}
