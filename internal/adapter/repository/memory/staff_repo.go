package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// StaffRepository implements usecase.StaffRepository over the sandbox.
type StaffRepository struct {
	store *Store
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(store *Store) *StaffRepository {
	return &StaffRepository{store: store}
}

// Create creates a staff member.
func (r *StaffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	copied := *staff
	r.store.write(func(s *state) {
		s.staff[staff.ID] = &copied
	})
	return nil
}

// GetByID retrieves a staff member by ID.
func (r *StaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	var (
		found *domain.StaffMember
		err   error
	)
	r.store.read(func(s *state) {
		member, ok := s.staff[id]
		if !ok {
			err = domain.ErrStaffNotFound
			return
		}
		copied := *member
		found = &copied
	})
	return found, err
}

// List lists staff members by name.
func (r *StaffRepository) List(ctx context.Context) ([]*domain.StaffMember, error) {
	var staff []*domain.StaffMember
	r.store.read(func(s *state) {
		for _, member := range s.staff {
			copied := *member
			staff = append(staff, &copied)
		}
	})

	sort.Slice(staff, func(i, j int) bool {
		if staff[i].Name == staff[j].Name {
			return staff[i].ID < staff[j].ID
		}
		return staff[i].Name < staff[j].Name
	})

	return staff, nil
}

// UpdateLoanBalance sets a staff member's remaining loan balance within a
// transaction.
func (r *StaffRepository) UpdateLoanBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error {
	s := stateFor(r.store, tx)

	member, ok := s.staff[id]
	if !ok {
		return domain.ErrStaffNotFound
	}

	member.LoanBalance = balance
	return nil
}
