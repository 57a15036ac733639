package memory

import (
	"context"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// ShiftRepository implements usecase.ShiftRepository over the sandbox.
type ShiftRepository struct {
	store *Store
}

// NewShiftRepository creates a new ShiftRepository.
func NewShiftRepository(store *Store) *ShiftRepository {
	return &ShiftRepository{store: store}
}

// Create creates a new shift.
func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	copied := *shift
	r.store.write(func(s *state) {
		s.shifts[shift.ID] = &copied
		s.shiftOrder = append(s.shiftOrder, shift.ID)
	})
	return nil
}

// GetByID retrieves a shift by ID.
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	var (
		found *domain.Shift
		err   error
	)
	r.store.read(func(s *state) {
		shift, ok := s.shifts[id]
		if !ok {
			err = domain.ErrShiftNotFound
			return
		}
		copied := *shift
		found = &copied
	})
	return found, err
}

// Latest retrieves the most recently opened shift.
func (r *ShiftRepository) Latest(ctx context.Context) (*domain.Shift, error) {
	var (
		found *domain.Shift
		err   error
	)
	r.store.read(func(s *state) {
		if len(s.shiftOrder) == 0 {
			err = domain.ErrShiftNotFound
			return
		}
		copied := *s.shifts[s.shiftOrder[len(s.shiftOrder)-1]]
		found = &copied
	})
	return found, err
}

// Open retrieves the currently open shift, if any.
func (r *ShiftRepository) Open(ctx context.Context) (*domain.Shift, error) {
	var found *domain.Shift
	r.store.read(func(s *state) {
		for i := len(s.shiftOrder) - 1; i >= 0; i-- {
			shift := s.shifts[s.shiftOrder[i]]
			if shift.Status == domain.ShiftOpen {
				copied := *shift
				found = &copied
				return
			}
		}
	})

	if found == nil {
		return nil, domain.ErrShiftNotOpen
	}
	return found, nil
}

// Update rewrites a shift within a transaction.
func (r *ShiftRepository) Update(ctx context.Context, tx usecase.Transaction, shift *domain.Shift) error {
	s := stateFor(r.store, tx)

	if _, ok := s.shifts[shift.ID]; !ok {
		return domain.ErrShiftNotFound
	}

	copied := *shift
	s.shifts[shift.ID] = &copied
	return nil
}

// List lists shifts newest first.
func (r *ShiftRepository) List(ctx context.Context, limit, offset int) ([]*domain.Shift, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	var shifts []*domain.Shift
	r.store.read(func(s *state) {
		skipped := 0
		for i := len(s.shiftOrder) - 1; i >= 0 && len(shifts) < limit; i-- {
			if skipped < offset {
				skipped++
				continue
			}
			copied := *s.shifts[s.shiftOrder[i]]
			shifts = append(shifts, &copied)
		}
	})
	return shifts, nil
}
