package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountID(t *testing.T) {
	tests := []struct {
		id          string
		expectError bool
	}{
		{"till_float", false},
		{"business_bank", false},
		{"acc123", false},
		{"", true},
		{"Till Float", true},
		{"till-float", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateAccountID(tt.id)
			if tt.expectError && err == nil {
				t.Errorf("expected error for %q, got nil", tt.id)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error for %q: %v", tt.id, err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(decimal.NewFromInt(500)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	huge, _ := decimal.NewFromString("2000000000")
	if err := ValidateAmount(huge); err == nil {
		t.Error("expected error for amount above maximum")
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Errorf("got limit=%d offset=%d, want defaults 50/0", limit, offset)
	}

	limit, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Errorf("got limit=%d, want cap 1000", limit)
	}
}
