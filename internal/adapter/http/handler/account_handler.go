package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/usecase"
)

// AccountHandler handles account registry HTTP requests.
type AccountHandler struct {
	registryUC *usecase.RegistryUseCase
	transferUC *usecase.TransferUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(registryUC *usecase.RegistryUseCase, transferUC *usecase.TransferUseCase) *AccountHandler {
	return &AccountHandler{registryUC: registryUC, transferUC: transferUC}
}

// List returns every account in the chart.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.registryUC.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.registryUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Adjust sets an account to a declared balance, booking the difference
// against the equity adjustments account.
func (h *AccountHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.registryUC.AdjustBalance(r.Context(), id, req.NewBalance, req.Reason)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to adjust balance", err.Error())
		return
	}

	if record == nil {
		// Declared balance matched the books; nothing was moved.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// ListTransactions returns the ledger entries touching an account.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	transactions, err := h.transferUC.QueryTransactions(r.Context(), usecase.TransactionFilter{
		AccountID: id,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}
