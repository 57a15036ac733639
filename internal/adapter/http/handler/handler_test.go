package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	memoryRepo "github.com/osteria/tillbook/internal/adapter/repository/memory"
	postgresRepo "github.com/osteria/tillbook/internal/adapter/repository/postgres"
	"github.com/osteria/tillbook/internal/usecase"
)

// env wires every use case over the in-memory store, the same stack the
// server runs in sandbox mode.
type env struct {
	t *testing.T

	registry *usecase.RegistryUseCase
	transfer *usecase.TransferUseCase
	shift    *usecase.ShiftUseCase
	cards    *usecase.CardReconUseCase
	debt     *usecase.DebtUseCase
	partner  *usecase.PartnerUseCase
	payroll  *usecase.PayrollUseCase
	expense  *usecase.ExpenseUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := memoryRepo.NewStore()
	accounts := memoryRepo.NewAccountRepository(store)
	txs := memoryRepo.NewTransactionRepository(store)
	shifts := memoryRepo.NewShiftRepository(store)
	partners := memoryRepo.NewPartnerSaleRepository(store)
	staff := memoryRepo.NewStaffRepository(store)
	customers := memoryRepo.NewCustomerRepository(store)
	templates := memoryRepo.NewExpenseTemplateRepository(store)
	recurring := memoryRepo.NewRecurringExpenseRepository(store)
	outbox := memoryRepo.NewOutboxRepository(store)
	idGen := postgresRepo.NewULIDGenerator()

	e := &env{t: t}
	e.transfer = usecase.NewTransferUseCase(store, accounts, txs, outbox, idGen)
	e.registry = usecase.NewRegistryUseCase(accounts, e.transfer)
	e.shift = usecase.NewShiftUseCase(store, shifts, accounts, txs, partners, customers, outbox, e.transfer, idGen)
	e.cards = usecase.NewCardReconUseCase(store, txs, outbox, e.transfer, idGen)
	e.debt = usecase.NewDebtUseCase(store, txs, customers, outbox, e.transfer, idGen)
	e.partner = usecase.NewPartnerUseCase(store, partners, outbox, e.transfer, idGen)
	e.payroll = usecase.NewPayrollUseCase(store, staff, txs, outbox, e.transfer, idGen)
	e.expense = usecase.NewExpenseUseCase(store, templates, recurring, txs, e.transfer, idGen)

	require.NoError(t, e.registry.SeedIfEmpty(context.Background()))

	return e
}

func (e *env) balance(accountID string) decimal.Decimal {
	e.t.Helper()
	account, err := e.registry.GetAccount(context.Background(), accountID)
	require.NoError(e.t, err)
	return account.Balance
}

func (e *env) requireBalance(accountID string, want int64) {
	e.t.Helper()
	got := e.balance(accountID)
	require.True(e.t, got.Equal(decimal.NewFromInt(want)),
		"account %s: want balance %d, got %s", accountID, want, got)
}

// do runs a handler func against a recorded request, optionally binding
// chi URL params.
func do(t *testing.T, h http.HandlerFunc, method, target string, body any, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.NewFromInt(want)), "want %d, got %s", want, got)
}
