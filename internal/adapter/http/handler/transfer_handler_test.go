package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/domain"
)

func TestTransferHandler_Create(t *testing.T) {
	e := newEnv(t)
	h := NewTransferHandler(e.transfer)

	rec := do(t, h.Create, http.MethodPost, "/transfers", dto.TransferRequest{
		FromAccountID: domain.AccountBusinessBank,
		ToAccountID:   domain.AccountOperatingExp,
		Amount:        decimal.NewFromInt(40),
		Description:   "Gas refill",
		Category:      domain.CategoryOperations,
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.TransactionResponse
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, domain.AccountBusinessBank, resp.FromAccountID)
	require.Equal(t, domain.AccountOperatingExp, resp.ToAccountID)
	requireDecimal(t, 40, resp.Amount)

	e.requireBalance(domain.AccountBusinessBank, 4960)
	e.requireBalance(domain.AccountOperatingExp, 40)
}

func TestTransferHandler_Create_ZeroAmountDropped(t *testing.T) {
	e := newEnv(t)
	h := NewTransferHandler(e.transfer)

	rec := do(t, h.Create, http.MethodPost, "/transfers", dto.TransferRequest{
		FromAccountID: domain.AccountBusinessBank,
		ToAccountID:   domain.AccountOperatingExp,
		Amount:        decimal.Zero,
	}, nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	e.requireBalance(domain.AccountBusinessBank, 5000)
}

func TestTransferHandler_Create_SameAccount(t *testing.T) {
	e := newEnv(t)
	h := NewTransferHandler(e.transfer)

	rec := do(t, h.Create, http.MethodPost, "/transfers", dto.TransferRequest{
		FromAccountID: domain.AccountTillFloat,
		ToAccountID:   domain.AccountTillFloat,
		Amount:        decimal.NewFromInt(10),
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransferHandler_Create_InvalidBody(t *testing.T) {
	e := newEnv(t)
	h := NewTransferHandler(e.transfer)

	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransferHandler_Get(t *testing.T) {
	e := newEnv(t)
	h := NewTransferHandler(e.transfer)

	created := do(t, h.Create, http.MethodPost, "/transfers", dto.TransferRequest{
		FromAccountID: domain.AccountBusinessBank,
		ToAccountID:   domain.AccountTillFloat,
		Amount:        decimal.NewFromInt(25),
		Description:   "Change money",
	}, nil)
	require.Equal(t, http.StatusCreated, created.Code)

	var tx dto.TransactionResponse
	decode(t, created, &tx)

	rec := do(t, h.Get, http.MethodGet, "/transfers/"+tx.ID, nil, map[string]string{"id": tx.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TransactionResponse
	decode(t, rec, &got)
	require.Equal(t, tx.ID, got.ID)
	require.Equal(t, "Change money", got.Description)
}

func TestTransferHandler_Get_NotFound(t *testing.T) {
	e := newEnv(t)
	h := NewTransferHandler(e.transfer)

	rec := do(t, h.Get, http.MethodGet, "/transfers/missing", nil, map[string]string{"id": "missing"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransferHandler_List_FilterByAccount(t *testing.T) {
	e := newEnv(t)
	h := NewTransferHandler(e.transfer)

	for _, amt := range []int64{10, 20} {
		rec := do(t, h.Create, http.MethodPost, "/transfers", dto.TransferRequest{
			FromAccountID: domain.AccountBusinessBank,
			ToAccountID:   domain.AccountOperatingExp,
			Amount:        decimal.NewFromInt(amt),
		}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, h.List, http.MethodGet, "/transfers?account_id="+domain.AccountOperatingExp, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []*dto.TransactionResponse
	decode(t, rec, &got)
	require.Len(t, got, 2)

	rec = do(t, h.List, http.MethodGet, "/transfers?from_account_id="+domain.AccountOperatingExp, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got = nil
	decode(t, rec, &got)
	require.Empty(t, got)
}
