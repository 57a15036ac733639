package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

func TestRegistryUseCase_SeedIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	accounts, err := e.registry.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 14 {
		t.Fatalf("expected 14 seeded accounts, got %d", len(accounts))
	}

	// Drain some money around, then seed again: nothing may change.
	if _, err := e.registry.AdjustBalance(ctx, domain.AccountTillFloat, decimal.NewFromInt(500), "test"); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	if err := e.registry.SeedIfEmpty(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	accounts, err = e.registry.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 14 {
		t.Errorf("expected 14 accounts after reseed, got %d", len(accounts))
	}

	e.assertBalance(t, domain.AccountTillFloat, 500)
}

func TestRegistryUseCase_AdjustBalance(t *testing.T) {
	tests := []struct {
		name        string
		newBalance  int64
		wantTill    int64
		wantEquity  int64
		wantNoOp    bool
		description string
	}{
		{name: "increase", newBalance: 200, wantTill: 200, wantEquity: 50},
		{name: "decrease", newBalance: 100, wantTill: 100, wantEquity: -50},
		{name: "unchanged", newBalance: 150, wantTill: 150, wantEquity: 0, wantNoOp: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			ctx := context.Background()

			record, err := e.registry.AdjustBalance(ctx, domain.AccountTillFloat, decimal.NewFromInt(tt.newBalance), "recount")
			if err != nil {
				t.Fatalf("adjust: %v", err)
			}

			if tt.wantNoOp {
				if record != nil {
					t.Errorf("expected no-op, got record %+v", record)
				}
			} else {
				if record == nil {
					t.Fatal("expected an adjustment record")
				}
				if record.Category != domain.CategoryAdjustment {
					t.Errorf("category = %q, want %q", record.Category, domain.CategoryAdjustment)
				}
			}

			e.assertBalance(t, domain.AccountTillFloat, tt.wantTill)
			e.assertBalance(t, domain.AccountEquityAdjust, tt.wantEquity)
		})
	}
}
