package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osteria/tillbook/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrShiftNotFound, http.StatusNotFound},
		{domain.ErrStaffNotFound, http.StatusNotFound},
		{domain.ErrCustomerNotFound, http.StatusNotFound},
		{domain.ErrShiftAlreadyOpen, http.StatusConflict},
		{domain.ErrBillAlreadySettled, http.StatusConflict},
		{domain.ErrPartnerSaleSettled, http.StatusConflict},
		{domain.ErrTransactionSettled, http.StatusConflict},
		{domain.ErrSameAccount, http.StatusBadRequest},
		{domain.ErrSelectionMismatch, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrShiftNotOpen, http.StatusBadRequest},
		{domain.ErrAllocationMismatch, http.StatusBadRequest},
		{domain.ErrNegativeNetPayout, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", domain.ErrAccountNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapDomainError(tt.err), "error %v", tt.err)
	}
}

func TestParseIntQuery(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 50},
		{"limit=10", 10},
		{"limit=abc", 50},
		{"limit=0", 0},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		assert.Equal(t, tt.want, parseIntQuery(req, "limit", 50), "query %q", tt.query)
	}
}
