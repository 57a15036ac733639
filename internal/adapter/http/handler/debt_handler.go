package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/usecase"
)

// DebtHandler handles client debt HTTP requests.
type DebtHandler struct {
	debtUC *usecase.DebtUseCase
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtUC *usecase.DebtUseCase) *DebtHandler {
	return &DebtHandler{debtUC: debtUC}
}

// Outstanding lists open credit bills grouped by client.
func (h *DebtHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	debts, err := h.debtUC.Outstanding(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list outstanding debts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerDebtsFromUseCase(debts))
}

// Collect settles selected credit bills against a cash destination.
func (h *DebtHandler) Collect(w http.ResponseWriter, r *http.Request) {
	var req dto.CollectDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.debtUC.Collect(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to collect debt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(record))
}

// CreateCustomer registers a new client.
func (h *DebtHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.debtUC.CreateCustomer(r.Context(), req.Name, req.Phone, req.Email)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create customer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CustomerFromDomain(customer))
}

// ListCustomers lists all clients.
func (h *DebtHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.debtUC.ListCustomers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomersFromDomain(customers))
}
