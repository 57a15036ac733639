package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

func TestStore_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sandbox.json")

	store := NewStore()
	seedAccount(t, store, "till", 150)

	txs := NewTransactionRepository(store)
	err := txs.Create(ctx, nil, &domain.Transaction{
		ID:            "txn-1",
		Date:          time.Now().UTC(),
		Amount:        decimal.NewFromInt(40),
		FromAccountID: "till",
		ToAccountID:   "bank",
		Settled:       true,
		Posted:        true,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := store.SaveFile(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored := NewStore()
	if err := restored.LoadFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	account, err := NewAccountRepository(restored).GetByID(ctx, "till")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("balance = %s, want 150", account.Balance)
	}

	record, err := NewTransactionRepository(restored).GetByID(ctx, "txn-1")
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if !record.Amount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("amount = %s, want 40", record.Amount)
	}
	if !record.Settled || !record.Posted {
		t.Errorf("flags lost in round trip: settled=%v posted=%v", record.Settled, record.Posted)
	}
}

func TestStore_LoadFile_MissingFileStartsEmpty(t *testing.T) {
	store := NewStore()
	if err := store.LoadFile(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("load: %v", err)
	}

	count, err := NewAccountRepository(store).Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestStore_LoadFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := NewStore().LoadFile(path); err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
}
