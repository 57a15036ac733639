package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
)

// RegistryUseCase seeds and exposes the chart of accounts. It offers no
// direct balance mutation: corrections go through AdjustBalance, which is
// itself just a transfer against the equity account.
type RegistryUseCase struct {
	accountRepo AccountRepository
	transferUC  *TransferUseCase
}

// NewRegistryUseCase creates a new RegistryUseCase.
func NewRegistryUseCase(accountRepo AccountRepository, transferUC *TransferUseCase) *RegistryUseCase {
	return &RegistryUseCase{
		accountRepo: accountRepo,
		transferUC:  transferUC,
	}
}

// SeedIfEmpty creates the fixed initial chart of accounts on first run.
// Idempotent: an already-populated store is left untouched.
func (uc *RegistryUseCase) SeedIfEmpty(ctx context.Context) error {
	count, err := uc.accountRepo.Count(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, account := range domain.DefaultChart() {
		account.CreatedAt = now
		account.UpdatedAt = now

		if err := uc.accountRepo.Create(ctx, &account); err != nil {
			return fmt.Errorf("seeding account %s: %w", account.ID, err)
		}
	}

	return nil
}

// GetAccount retrieves an account by ID.
func (uc *RegistryUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists all accounts.
func (uc *RegistryUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx)
}

// AdjustBalance corrects an account to newBalance by transferring the
// difference against the equity account. An increase is an equity
// injection, a decrease a write-off; the balance field itself is never set.
func (uc *RegistryUseCase) AdjustBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, reason string) (*domain.Transaction, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	diff := newBalance.Sub(account.Balance)
	if diff.IsZero() {
		return nil, nil
	}

	description := fmt.Sprintf("Manual Adjustment: %s", reason)

	if diff.IsPositive() {
		return uc.transferUC.Transfer(ctx, TransferInput{
			FromAccountID: domain.AccountEquityAdjust,
			ToAccountID:   accountID,
			Amount:        diff,
			Description:   description,
			Category:      domain.CategoryAdjustment,
		})
	}

	return uc.transferUC.Transfer(ctx, TransferInput{
		FromAccountID: accountID,
		ToAccountID:   domain.AccountEquityAdjust,
		Amount:        diff.Abs(),
		Description:   description,
		Category:      domain.CategoryAdjustment,
	})
}
