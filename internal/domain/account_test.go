package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountType_CreditNormal(t *testing.T) {
	tests := []struct {
		accountType  AccountType
		creditNormal bool
	}{
		{AccountTypeAsset, false},
		{AccountTypeReceivable, false},
		{AccountTypeExpense, false},
		{AccountTypeRevenue, false}, // pass-through source, not accumulated credit
		{AccountTypeLiability, true},
		{AccountTypeEquity, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			if got := tt.accountType.CreditNormal(); got != tt.creditNormal {
				t.Errorf("CreditNormal(%s) = %v, want %v", tt.accountType, got, tt.creditNormal)
			}
		})
	}
}

func TestTransferDeltas(t *testing.T) {
	amt := decimal.NewFromInt(100)

	tests := []struct {
		name      string
		from      AccountType
		to        AccountType
		fromDelta int64
		toDelta   int64
	}{
		{"asset to asset", AccountTypeAsset, AccountTypeAsset, -100, 100},
		{"revenue to asset", AccountTypeRevenue, AccountTypeAsset, -100, 100},
		{"revenue to receivable", AccountTypeRevenue, AccountTypeReceivable, -100, 100},
		{"asset to expense", AccountTypeAsset, AccountTypeExpense, -100, 100},
		{"liability pays out", AccountTypeLiability, AccountTypeAsset, 100, 100},
		{"asset settles liability", AccountTypeAsset, AccountTypeLiability, -100, -100},
		{"equity injection", AccountTypeEquity, AccountTypeAsset, 100, 100},
		{"write-off to equity", AccountTypeAsset, AccountTypeEquity, -100, -100},
		{"receivable collected", AccountTypeReceivable, AccountTypeAsset, -100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromDelta, toDelta := TransferDeltas(tt.from, tt.to, amt)

			if !fromDelta.Equal(decimal.NewFromInt(tt.fromDelta)) {
				t.Errorf("fromDelta = %s, want %d", fromDelta, tt.fromDelta)
			}

			if !toDelta.Equal(decimal.NewFromInt(tt.toDelta)) {
				t.Errorf("toDelta = %s, want %d", toDelta, tt.toDelta)
			}
		})
	}
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart()

	if len(chart) != 14 {
		t.Fatalf("expected 14 accounts, got %d", len(chart))
	}

	seen := make(map[string]bool)
	for _, a := range chart {
		if seen[a.ID] {
			t.Errorf("duplicate account id %s", a.ID)
		}
		seen[a.ID] = true

		if !a.Type.Valid() {
			t.Errorf("account %s has invalid type %s", a.ID, a.Type)
		}
	}

	if !seen[AccountTillFloat] || !seen[AccountRevenue] || !seen[AccountEquityAdjust] {
		t.Error("chart missing load-bearing accounts")
	}
}
