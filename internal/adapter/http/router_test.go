package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/adapter/http/handler"
	"github.com/osteria/tillbook/internal/adapter/http/middleware"
	memoryRepo "github.com/osteria/tillbook/internal/adapter/repository/memory"
	postgresRepo "github.com/osteria/tillbook/internal/adapter/repository/postgres"
	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// newTestRouter assembles the full router over the in-memory store, the
// same wiring the server uses in sandbox mode.
func newTestRouter(t *testing.T) http.Handler {
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

	transferUC := usecase.NewTransferUseCase(store, accounts, txs, outbox, idGen)
	registryUC := usecase.NewRegistryUseCase(accounts, transferUC)
	shiftUC := usecase.NewShiftUseCase(store, shifts, accounts, txs, partners, customers, outbox, transferUC, idGen)
	cardReconUC := usecase.NewCardReconUseCase(store, txs, outbox, transferUC, idGen)
	debtUC := usecase.NewDebtUseCase(store, txs, customers, outbox, transferUC, idGen)
	partnerUC := usecase.NewPartnerUseCase(store, partners, outbox, transferUC, idGen)
	payrollUC := usecase.NewPayrollUseCase(store, staff, txs, outbox, transferUC, idGen)
	expenseUC := usecase.NewExpenseUseCase(store, templates, recurring, txs, transferUC, idGen)

	require.NoError(t, registryUC.SeedIfEmpty(context.Background()))

	return NewRouter(RouterConfig{
		AccountHandler:   handler.NewAccountHandler(registryUC, transferUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		ShiftHandler:     handler.NewShiftHandler(shiftUC),
		CardReconHandler: handler.NewCardReconHandler(cardReconUC),
		DebtHandler:      handler.NewDebtHandler(debtUC),
		PartnerHandler:   handler.NewPartnerHandler(partnerUC),
		PayrollHandler:   handler.NewPayrollHandler(payrollUC),
		ExpenseHandler:   handler.NewExpenseHandler(expenseUC),
		HealthHandler:    handler.NewHealthHandler(),
		IdempotencyStore: memoryRepo.NewIdempotencyStore(),
		Logger:           zerolog.Nop(),
	})
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}
}

func TestRouter_ListAccounts(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var accounts []*dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	require.Len(t, accounts, len(domain.DefaultChart()))
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nonsense", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// Opening a shift twice with the same idempotency key must replay the
// first response instead of hitting the single-open-shift conflict.
func TestRouter_IdempotentShiftOpen(t *testing.T) {
	router := newTestRouter(t)

	open := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/open", nil)
		req.Header.Set(middleware.IdempotencyKeyHeader, "open-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := open()
	require.Equal(t, http.StatusCreated, first.Code)

	second := open()
	require.Equal(t, "true", second.Header().Get("X-Idempotency-Replay"))
	require.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestRouter_ActorStampsCreatedBy(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/open", nil)
	req.Header.Set(middleware.StaffIDHeader, "stf-1")
	req.Header.Set(middleware.StaffNameHeader, "Anna")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var shift dto.ShiftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &shift))
	require.Equal(t, "Anna", shift.OpenedBy)
}
