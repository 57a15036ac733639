package handler

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/domain"
)

func TestAccountHandler_List(t *testing.T) {
	e := newEnv(t)
	h := NewAccountHandler(e.registry, e.transfer)

	rec := do(t, h.List, http.MethodGet, "/accounts", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []*dto.AccountResponse
	decode(t, rec, &got)
	require.Len(t, got, len(domain.DefaultChart()))

	byID := make(map[string]*dto.AccountResponse, len(got))
	for _, a := range got {
		byID[a.ID] = a
	}
	require.Contains(t, byID, domain.AccountTillFloat)
	requireDecimal(t, 150, byID[domain.AccountTillFloat].Balance)
	require.Contains(t, byID, domain.AccountBusinessBank)
	requireDecimal(t, 5000, byID[domain.AccountBusinessBank].Balance)
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	e := newEnv(t)
	h := NewAccountHandler(e.registry, e.transfer)

	rec := do(t, h.Get, http.MethodGet, "/accounts/nope", nil, map[string]string{"id": "nope"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountHandler_Adjust(t *testing.T) {
	e := newEnv(t)
	h := NewAccountHandler(e.registry, e.transfer)

	rec := do(t, h.Adjust, http.MethodPost, "/accounts/"+domain.AccountTillFloat+"/adjust",
		dto.AdjustBalanceRequest{
			NewBalance: decimal.NewFromInt(180),
			Reason:     "Recount after close",
		}, map[string]string{"id": domain.AccountTillFloat})

	require.Equal(t, http.StatusCreated, rec.Code)

	var tx dto.TransactionResponse
	decode(t, rec, &tx)
	requireDecimal(t, 30, tx.Amount)

	e.requireBalance(domain.AccountTillFloat, 180)
}

func TestAccountHandler_Adjust_NoChange(t *testing.T) {
	e := newEnv(t)
	h := NewAccountHandler(e.registry, e.transfer)

	rec := do(t, h.Adjust, http.MethodPost, "/accounts/"+domain.AccountTillFloat+"/adjust",
		dto.AdjustBalanceRequest{
			NewBalance: decimal.NewFromInt(150),
			Reason:     "Recount, all good",
		}, map[string]string{"id": domain.AccountTillFloat})

	require.Equal(t, http.StatusNoContent, rec.Code)
	e.requireBalance(domain.AccountTillFloat, 150)
}

func TestAccountHandler_ListTransactions(t *testing.T) {
	e := newEnv(t)
	h := NewAccountHandler(e.registry, e.transfer)
	th := NewTransferHandler(e.transfer)

	created := do(t, th.Create, http.MethodPost, "/transfers", dto.TransferRequest{
		FromAccountID: domain.AccountBusinessBank,
		ToAccountID:   domain.AccountTillFloat,
		Amount:        decimal.NewFromInt(50),
	}, nil)
	require.Equal(t, http.StatusCreated, created.Code)

	rec := do(t, h.ListTransactions, http.MethodGet, "/accounts/"+domain.AccountTillFloat+"/transactions",
		nil, map[string]string{"id": domain.AccountTillFloat})
	require.Equal(t, http.StatusOK, rec.Code)

	var got []*dto.TransactionResponse
	decode(t, rec, &got)
	require.Len(t, got, 1)
	require.Equal(t, domain.AccountTillFloat, got[0].ToAccountID)
}
