package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/usecase"
)

// PartnerHandler handles partner ledger HTTP requests.
type PartnerHandler struct {
	partnerUC *usecase.PartnerUseCase
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(partnerUC *usecase.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{partnerUC: partnerUC}
}

// Record books a standalone partner sale and its receivable.
func (h *PartnerHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPartnerSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sale, err := h.partnerUC.RecordSale(r.Context(), req.Amount, req.Description)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record partner sale", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PartnerSaleFromDomain(sale))
}

// Pending lists partner sales awaiting settlement.
func (h *PartnerHandler) Pending(w http.ResponseWriter, r *http.Request) {
	sales, err := h.partnerUC.ListPending(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list pending sales", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PartnerSalesFromDomain(sales))
}

// Settle decomposes a pending partner sale into its settlement parts.
func (h *PartnerHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	var req dto.SettlePartnerSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sale, err := h.partnerUC.Settle(r.Context(), id, req.ToAllocation())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle partner sale", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PartnerSaleFromDomain(sale))
}
