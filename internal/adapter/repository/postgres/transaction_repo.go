package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

const transactionColumns = `id, date, amount, from_account_id, to_account_id, description,
	category, created_by, settled, posted, shift_id, due_date, contact_id, customer_id, staff_id, notes`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a ledger transaction within a transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO transactions (`+transactionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		t.ID, timeToPgTimestamptz(t.Date), decimalToNumeric(t.Amount),
		t.FromAccountID, t.ToAccountID, t.Description, t.Category, t.CreatedBy,
		t.Settled, t.Posted, t.ShiftID, timePtrToPgTimestamptz(t.DueDate),
		t.ContactID, t.CustomerID, t.StaffID, t.Notes,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	return scanTransaction(row)
}

// Query lists transactions matching a filter, newest first.
func (r *TransactionRepository) Query(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	where, args := buildFilter(filter)
	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)

	sql := `SELECT ` + transactionColumns + ` FROM transactions` + where +
		fmt.Sprintf(` ORDER BY date DESC, id DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

// SumAmount totals the amounts of all transactions matching a filter.
func (r *TransactionRepository) SumAmount(ctx context.Context, filter usecase.TransactionFilter) (decimal.Decimal, error) {
	where, args := buildFilter(filter)

	var sum pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions`+where, args...).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// MarkSettled flips Settled for all ids as one statement. A missing id
// fails the whole batch.
func (r *TransactionRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, ids []string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE transactions SET settled = TRUE WHERE id = ANY($1)`, ids)
	if err != nil {
		return err
	}

	if tag.RowsAffected() != int64(len(ids)) {
		return domain.ErrTransactionNotFound
	}

	return nil
}

func buildFilter(filter usecase.TransactionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		conds = append(conds, fmt.Sprintf("(from_account_id = $%d OR to_account_id = $%d)", len(args), len(args)))
	}
	if filter.FromAccountID != "" {
		add("from_account_id = $%d", filter.FromAccountID)
	}
	if filter.ToAccountID != "" {
		add("to_account_id = $%d", filter.ToAccountID)
	}
	if len(filter.Categories) > 0 {
		add("category = ANY($%d)", filter.Categories)
	}
	if filter.ShiftID != "" {
		add("shift_id = $%d", filter.ShiftID)
	}
	if filter.CustomerID != "" {
		add("customer_id = $%d", filter.CustomerID)
	}
	if filter.StaffID != "" {
		add("staff_id = $%d", filter.StaffID)
	}
	if filter.ContactID != "" {
		add("contact_id = $%d", filter.ContactID)
	}
	if filter.Settled != nil {
		add("settled = $%d", *filter.Settled)
	}
	if filter.Posted != nil {
		add("posted = $%d", *filter.Posted)
	}
	if filter.DateFrom != nil {
		add("date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("date <= $%d", *filter.DateTo)
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t       domain.Transaction
		date    pgtype.Timestamptz
		amount  pgtype.Numeric
		dueDate pgtype.Timestamptz
	)

	err := row.Scan(&t.ID, &date, &amount, &t.FromAccountID, &t.ToAccountID,
		&t.Description, &t.Category, &t.CreatedBy, &t.Settled, &t.Posted,
		&t.ShiftID, &dueDate, &t.ContactID, &t.CustomerID, &t.StaffID, &t.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	t.Date = date.Time
	t.Amount = numericToDecimal(amount)
	t.DueDate = pgTimestamptzToTimePtr(dueDate)

	return &t, nil
}
