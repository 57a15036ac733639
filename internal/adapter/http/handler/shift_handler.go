package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/usecase"
)

// ShiftHandler handles register shift HTTP requests.
type ShiftHandler struct {
	shiftUC *usecase.ShiftUseCase
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(shiftUC *usecase.ShiftUseCase) *ShiftHandler {
	return &ShiftHandler{shiftUC: shiftUC}
}

// Open starts a new shift, snapshotting the till float.
func (h *ShiftHandler) Open(w http.ResponseWriter, r *http.Request) {
	shift, err := h.shiftUC.Open(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open shift", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ShiftFromDomain(shift))
}

// Current returns the latest shift, open or closed.
func (h *ShiftHandler) Current(w http.ResponseWriter, r *http.Request) {
	shift, err := h.shiftUC.Current(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get shift", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ShiftFromDomain(shift))
}

// TopUp injects change money into the till from another cash account.
func (h *ShiftHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	var req dto.TillMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.shiftUC.TopUpFloat(r.Context(), req.AccountID, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to top up float", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// BankDrop moves excess drawer cash to a bank account.
func (h *ShiftHandler) BankDrop(w http.ResponseWriter, r *http.Request) {
	var req dto.TillMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.shiftUC.BankDrop(r.Context(), req.AccountID, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record bank drop", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// QuickExpense books a cash expense paid straight from the drawer.
func (h *ShiftHandler) QuickExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.QuickExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.shiftUC.QuickExpense(r.Context(), req.Amount, req.Description)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// Preview computes the expected drawer count for a close breakdown without
// posting anything.
func (h *ShiftHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expected, err := h.shiftUC.ExpectedCash(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute expected cash", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpectedCashResponse{ExpectedCash: expected})
}

// Close reconciles and closes the open shift.
func (h *ShiftHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	shift, err := h.shiftUC.Close(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close shift", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ShiftFromDomain(shift))
}
