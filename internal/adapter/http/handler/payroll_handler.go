package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/usecase"
)

// PayrollHandler handles staff and payroll HTTP requests.
type PayrollHandler struct {
	payrollUC *usecase.PayrollUseCase
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(payrollUC *usecase.PayrollUseCase) *PayrollHandler {
	return &PayrollHandler{payrollUC: payrollUC}
}

// CreateStaff registers a new staff member.
func (h *PayrollHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	staff := req.ToDomain()
	if err := h.payrollUC.CreateStaff(r.Context(), staff); err != nil {
		writeError(w, mapDomainError(err), "failed to create staff member", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.StaffFromDomain(staff))
}

// ListStaff lists all staff members.
func (h *PayrollHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.payrollUC.ListStaff(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list staff", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StaffListFromDomain(staff))
}

// IssueAdvance pays out a mid-month advance tracked as a receivable.
func (h *PayrollHandler) IssueAdvance(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.payrollUC.IssueAdvance(r.Context(), req.StaffID, req.SourceAccountID, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to issue advance", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// Advances returns the unrecovered advance total for a staff member.
func (h *PayrollHandler) Advances(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing staff ID", "")
		return
	}

	outstanding, err := h.payrollUC.OutstandingAdvances(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute advances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"staff_id": id, "outstanding": outstanding})
}

// Preview computes a payout breakdown without moving money.
func (h *PayrollHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.DisbursePayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	preview, err := h.payrollUC.Preview(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to preview payout", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PayoutPreviewFromUseCase(preview))
}

// Disburse executes a payroll payout.
func (h *PayrollHandler) Disburse(w http.ResponseWriter, r *http.Request) {
	var req dto.DisbursePayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.payrollUC.Disburse(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to disburse payout", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PayoutPreviewFromUseCase(result))
}
