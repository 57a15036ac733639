package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/usecase"
)

// ExpenseHandler handles expense HTTP requests.
type ExpenseHandler struct {
	expenseUC *usecase.ExpenseUseCase
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Log books an expense, optionally saving it as a template or schedule.
func (h *ExpenseHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req dto.LogExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.expenseUC.Log(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to log expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// Templates lists saved expense templates.
func (h *ExpenseHandler) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.expenseUC.Templates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list templates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseTemplatesFromDomain(templates))
}

// DeleteTemplate removes a saved template.
func (h *ExpenseHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing template ID", "")
		return
	}

	if err := h.expenseUC.DeleteTemplate(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete template", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Bills lists unpaid supplier bills.
func (h *ExpenseHandler) Bills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.expenseUC.Bills(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bills", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(bills))
}

// SettleBill pays off a pending bill from the named source account.
func (h *ExpenseHandler) SettleBill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bill ID", "")
		return
	}

	var req dto.SettleBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.expenseUC.SettleBill(r.Context(), id, req.SourceAccountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle bill", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(record))
}
