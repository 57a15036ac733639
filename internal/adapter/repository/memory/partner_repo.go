package memory

import (
	"context"
	"time"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// PartnerSaleRepository implements usecase.PartnerSaleRepository over the
// sandbox.
type PartnerSaleRepository struct {
	store *Store
}

// NewPartnerSaleRepository creates a new PartnerSaleRepository.
func NewPartnerSaleRepository(store *Store) *PartnerSaleRepository {
	return &PartnerSaleRepository{store: store}
}

// Create creates a partner sale within a transaction.
func (r *PartnerSaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.PartnerSale) error {
	s := stateFor(r.store, tx)

	copied := *sale
	s.partnerSales[sale.ID] = &copied
	s.saleOrder = append(s.saleOrder, sale.ID)
	return nil
}

// GetByID retrieves a partner sale by ID.
func (r *PartnerSaleRepository) GetByID(ctx context.Context, id string) (*domain.PartnerSale, error) {
	var (
		found *domain.PartnerSale
		err   error
	)
	r.store.read(func(s *state) {
		sale, ok := s.partnerSales[id]
		if !ok {
			err = domain.ErrPartnerSaleNotFound
			return
		}
		copied := *sale
		found = &copied
	})
	return found, err
}

// ListPending lists unreconciled sales oldest first.
func (r *PartnerSaleRepository) ListPending(ctx context.Context) ([]*domain.PartnerSale, error) {
	var pending []*domain.PartnerSale
	r.store.read(func(s *state) {
		for _, id := range s.saleOrder {
			if sale := s.partnerSales[id]; sale.Status == domain.PartnerSalePending {
				copied := *sale
				pending = append(pending, &copied)
			}
		}
	})
	return pending, nil
}

// MarkReconciled flips a pending sale to RECONCILED within a transaction.
func (r *PartnerSaleRepository) MarkReconciled(ctx context.Context, tx usecase.Transaction, id, reconciledBy string, at time.Time, alloc domain.PartnerAllocation) error {
	s := stateFor(r.store, tx)

	sale, ok := s.partnerSales[id]
	if !ok {
		return domain.ErrPartnerSaleNotFound
	}
	if sale.Status != domain.PartnerSalePending {
		return domain.ErrPartnerSaleSettled
	}

	sale.Status = domain.PartnerSaleReconciled
	sale.ReconciledAt = &at
	sale.ReconciledBy = reconciledBy
	sale.Settlement = &alloc
	return nil
}
