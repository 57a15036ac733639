package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osteria/tillbook/internal/adapter/http/dto"
	"github.com/osteria/tillbook/internal/usecase"
)

// CardReconHandler handles card batch reconciliation HTTP requests.
type CardReconHandler struct {
	cardReconUC *usecase.CardReconUseCase
}

// NewCardReconHandler creates a new CardReconHandler.
func NewCardReconHandler(cardReconUC *usecase.CardReconUseCase) *CardReconHandler {
	return &CardReconHandler{cardReconUC: cardReconUC}
}

// Pending lists card transactions awaiting bank settlement.
func (h *CardReconHandler) Pending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.cardReconUC.PendingBatch(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list pending card transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(pending))
}

// Settle reconciles a selected batch against the net bank deposit.
func (h *CardReconHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req dto.SettleCardBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settlement, err := h.cardReconUC.Settle(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle card batch", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchSettlementFromUseCase(settlement))
}
