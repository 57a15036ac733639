package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osteria/tillbook/internal/domain"
)

// ExpenseTemplateRepository implements usecase.ExpenseTemplateRepository.
type ExpenseTemplateRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseTemplateRepository creates a new ExpenseTemplateRepository.
func NewExpenseTemplateRepository(pool *pgxpool.Pool) *ExpenseTemplateRepository {
	return &ExpenseTemplateRepository{pool: pool}
}

// Create creates an expense template.
func (r *ExpenseTemplateRepository) Create(ctx context.Context, template *domain.ExpenseTemplate) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO expense_templates (id, name, amount, category, from_account_id, description)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		template.ID, template.Name, decimalToNumeric(template.Amount),
		template.Category, template.FromAccountID, template.Description,
	)

	return err
}

// List lists templates by name.
func (r *ExpenseTemplateRepository) List(ctx context.Context) ([]*domain.ExpenseTemplate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, amount, category, from_account_id, description
		 FROM expense_templates ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*domain.ExpenseTemplate
	for rows.Next() {
		var (
			template domain.ExpenseTemplate
			amount   pgtype.Numeric
		)
		if err := rows.Scan(&template.ID, &template.Name, &amount, &template.Category,
			&template.FromAccountID, &template.Description); err != nil {
			return nil, err
		}
		template.Amount = numericToDecimal(amount)
		templates = append(templates, &template)
	}

	return templates, rows.Err()
}

// Delete removes a template.
func (r *ExpenseTemplateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expense_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTemplateNotFound
	}

	return nil
}

// RecurringExpenseRepository implements usecase.RecurringExpenseRepository.
type RecurringExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringExpenseRepository creates a new RecurringExpenseRepository.
func NewRecurringExpenseRepository(pool *pgxpool.Pool) *RecurringExpenseRepository {
	return &RecurringExpenseRepository{pool: pool}
}

// Create creates a recurring expense.
func (r *RecurringExpenseRepository) Create(ctx context.Context, expense *domain.RecurringExpense) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO recurring_expenses (id, name, amount, frequency, from_account_id,
			category, description, last_generated, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		expense.ID, expense.Name, decimalToNumeric(expense.Amount), string(expense.Frequency),
		expense.FromAccountID, expense.Category, expense.Description,
		timeToPgTimestamptz(expense.LastGenerated), expense.Active,
	)

	return err
}

// ListActive lists active recurring expenses.
func (r *RecurringExpenseRepository) ListActive(ctx context.Context) ([]*domain.RecurringExpense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, amount, frequency, from_account_id, category, description,
			last_generated, active
		 FROM recurring_expenses WHERE active ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.RecurringExpense
	for rows.Next() {
		var (
			expense       domain.RecurringExpense
			amount        pgtype.Numeric
			frequency     string
			lastGenerated pgtype.Timestamptz
		)
		if err := rows.Scan(&expense.ID, &expense.Name, &amount, &frequency,
			&expense.FromAccountID, &expense.Category, &expense.Description,
			&lastGenerated, &expense.Active); err != nil {
			return nil, err
		}
		expense.Amount = numericToDecimal(amount)
		expense.Frequency = domain.RecurringFrequency(frequency)
		expense.LastGenerated = lastGenerated.Time
		expenses = append(expenses, &expense)
	}

	return expenses, rows.Err()
}

// UpdateLastGenerated records when a schedule last fired.
func (r *RecurringExpenseRepository) UpdateLastGenerated(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE recurring_expenses SET last_generated = $2 WHERE id = $1`,
		id, timeToPgTimestamptz(at))

	return err
}

// Deactivate stops a schedule from firing.
func (r *RecurringExpenseRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE recurring_expenses SET active = FALSE WHERE id = $1`, id)

	return err
}
