package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

func seedAccount(t *testing.T, store *Store, id string, balance int64) {
	t.Helper()

	repo := NewAccountRepository(store)
	err := repo.Create(context.Background(), &domain.Account{
		ID:      id,
		Name:    id,
		Type:    domain.AccountTypeAsset,
		Balance: decimal.NewFromInt(balance),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestStore_CommitMakesWritesVisible(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedAccount(t, store, "till", 100)

	accounts := NewAccountRepository(store)

	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := accounts.ApplyBalanceDelta(ctx, tx, "till", decimal.NewFromInt(40), time.Now()); err != nil {
		t.Fatalf("delta: %v", err)
	}

	// Not visible until commit.
	account, err := accounts.GetByID(ctx, "till")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance before commit = %s, want 100", account.Balance)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	account, err = accounts.GetByID(ctx, "till")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(140)) {
		t.Errorf("balance after commit = %s, want 140", account.Balance)
	}
}

func TestStore_RollbackDiscardsEverything(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedAccount(t, store, "till", 100)

	accounts := NewAccountRepository(store)
	transactions := NewTransactionRepository(store)

	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := accounts.ApplyBalanceDelta(ctx, tx, "till", decimal.NewFromInt(-30), time.Now()); err != nil {
		t.Fatalf("delta: %v", err)
	}
	if err := transactions.Create(ctx, tx, &domain.Transaction{
		ID:            "t1",
		Amount:        decimal.NewFromInt(30),
		FromAccountID: "till",
		ToAccountID:   "bank",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	account, err := accounts.GetByID(ctx, "till")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance after rollback = %s, want 100", account.Balance)
	}

	if _, err := transactions.GetByID(ctx, "t1"); err != domain.ErrTransactionNotFound {
		t.Errorf("expected rolled-back transaction gone, got %v", err)
	}
}

func TestStore_RollbackAfterCommitIsNoOp(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedAccount(t, store, "till", 100)

	accounts := NewAccountRepository(store)

	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := accounts.ApplyBalanceDelta(ctx, tx, "till", decimal.NewFromInt(10), time.Now()); err != nil {
		t.Fatalf("delta: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	// The deferred rollback in callers must not undo the commit.
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	account, err := accounts.GetByID(ctx, "till")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(110)) {
		t.Errorf("balance = %s, want 110", account.Balance)
	}
}

func TestStore_TransactionsSerialize(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	seedAccount(t, store, "till", 0)

	accounts := NewAccountRepository(store)

	done := make(chan struct{})

	tx1, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	go func() {
		defer close(done)
		tx2, err := store.Begin(ctx)
		if err != nil {
			t.Errorf("second begin: %v", err)
			return
		}
		_ = accounts.ApplyBalanceDelta(ctx, tx2, "till", decimal.NewFromInt(1), time.Now())
		_ = tx2.Commit(ctx)
	}()

	if err := accounts.ApplyBalanceDelta(ctx, tx1, "till", decimal.NewFromInt(1), time.Now()); err != nil {
		t.Fatalf("delta: %v", err)
	}
	if err := tx1.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	<-done

	account, err := accounts.GetByID(ctx, "till")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// Both increments survive: the second transaction begins only after
	// the first commits, so it clones the committed +1.
	if !account.Balance.Equal(decimal.NewFromInt(2)) {
		t.Errorf("balance = %s, want 2", account.Balance)
	}
}
