package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPartnerAllocation_SumMatches(t *testing.T) {
	tests := []struct {
		name    string
		alloc   PartnerAllocation
		amount  float64
		matches bool
	}{
		{
			name: "exact split",
			alloc: PartnerAllocation{
				Cash:          decimal.NewFromInt(100),
				Card:          decimal.NewFromInt(150),
				ServiceCharge: decimal.NewFromInt(40),
				Contra:        decimal.NewFromInt(10),
			},
			amount:  300,
			matches: true,
		},
		{
			name: "five short is rejected",
			alloc: PartnerAllocation{
				Cash:          decimal.NewFromInt(100),
				Card:          decimal.NewFromInt(150),
				ServiceCharge: decimal.NewFromInt(40),
				Contra:        decimal.NewFromInt(5),
			},
			amount:  300,
			matches: false,
		},
		{
			name: "one cent rounding gap is tolerated",
			alloc: PartnerAllocation{
				Cash: decimal.NewFromFloat(299.99),
			},
			amount:  300,
			matches: true,
		},
		{
			name:    "empty allocation against zero",
			alloc:   PartnerAllocation{},
			amount:  0,
			matches: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.alloc.SumMatches(decimal.NewFromFloat(tt.amount))
			if got != tt.matches {
				t.Errorf("SumMatches = %v, want %v (total %s vs %v)", got, tt.matches, tt.alloc.Total(), tt.amount)
			}
		})
	}
}

func TestShift_LocalCashSales(t *testing.T) {
	s := &Shift{
		TotalSales:            decimal.NewFromInt(1000),
		CardPayments:          decimal.NewFromInt(200),
		CreditBills:           decimal.NewFromInt(100),
		HikingBarSales:        decimal.NewFromInt(50),
		ForeignCurrencyAmount: decimal.Zero,
	}

	if got := s.LocalCashSales(); !got.Equal(decimal.NewFromInt(650)) {
		t.Errorf("LocalCashSales = %s, want 650", got)
	}
}
