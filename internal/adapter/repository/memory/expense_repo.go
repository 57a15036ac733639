package memory

import (
	"context"
	"time"

	"github.com/osteria/tillbook/internal/domain"
)

// ExpenseTemplateRepository implements usecase.ExpenseTemplateRepository
// over the sandbox.
type ExpenseTemplateRepository struct {
	store *Store
}

// NewExpenseTemplateRepository creates a new ExpenseTemplateRepository.
func NewExpenseTemplateRepository(store *Store) *ExpenseTemplateRepository {
	return &ExpenseTemplateRepository{store: store}
}

// Create creates an expense template.
func (r *ExpenseTemplateRepository) Create(ctx context.Context, template *domain.ExpenseTemplate) error {
	copied := *template
	r.store.write(func(s *state) {
		s.templates[template.ID] = &copied
		s.tmplOrder = append(s.tmplOrder, template.ID)
	})
	return nil
}

// List lists templates in creation order.
func (r *ExpenseTemplateRepository) List(ctx context.Context) ([]*domain.ExpenseTemplate, error) {
	var templates []*domain.ExpenseTemplate
	r.store.read(func(s *state) {
		for _, id := range s.tmplOrder {
			if template, ok := s.templates[id]; ok {
				copied := *template
				templates = append(templates, &copied)
			}
		}
	})
	return templates, nil
}

// Delete removes a template.
func (r *ExpenseTemplateRepository) Delete(ctx context.Context, id string) error {
	err := domain.ErrTemplateNotFound
	r.store.write(func(s *state) {
		if _, ok := s.templates[id]; ok {
			delete(s.templates, id)
			err = nil
		}
	})
	return err
}

// RecurringExpenseRepository implements usecase.RecurringExpenseRepository
// over the sandbox.
type RecurringExpenseRepository struct {
	store *Store
}

// NewRecurringExpenseRepository creates a new RecurringExpenseRepository.
func NewRecurringExpenseRepository(store *Store) *RecurringExpenseRepository {
	return &RecurringExpenseRepository{store: store}
}

// Create creates a recurring expense.
func (r *RecurringExpenseRepository) Create(ctx context.Context, expense *domain.RecurringExpense) error {
	copied := *expense
	r.store.write(func(s *state) {
		s.recurring[expense.ID] = &copied
		s.recurOrder = append(s.recurOrder, expense.ID)
	})
	return nil
}

// ListActive lists active recurring expenses.
func (r *RecurringExpenseRepository) ListActive(ctx context.Context) ([]*domain.RecurringExpense, error) {
	var active []*domain.RecurringExpense
	r.store.read(func(s *state) {
		for _, id := range s.recurOrder {
			if expense := s.recurring[id]; expense.Active {
				copied := *expense
				active = append(active, &copied)
			}
		}
	})
	return active, nil
}

// UpdateLastGenerated records when a schedule last fired.
func (r *RecurringExpenseRepository) UpdateLastGenerated(ctx context.Context, id string, at time.Time) error {
	r.store.write(func(s *state) {
		if expense, ok := s.recurring[id]; ok {
			expense.LastGenerated = at
		}
	})
	return nil
}

// Deactivate stops a schedule from firing.
func (r *RecurringExpenseRepository) Deactivate(ctx context.Context, id string) error {
	r.store.write(func(s *state) {
		if expense, ok := s.recurring[id]; ok {
			expense.Active = false
		}
	})
	return nil
}
