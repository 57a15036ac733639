package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

const shiftColumns = `id, status, opened_at, opened_by, opening_float, closed_at, closed_by,
	total_sales, card_payments, credit_bills, credit_bill_customer_id, hiking_bar_sales,
	foreign_currency_amount, foreign_currency_notes, expected_cash, actual_cash, variance, notes`

// ShiftRepository implements usecase.ShiftRepository.
type ShiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository creates a new ShiftRepository.
func NewShiftRepository(pool *pgxpool.Pool) *ShiftRepository {
	return &ShiftRepository{pool: pool}
}

// Create creates a new shift. A partial unique index on status enforces the
// single-open-shift rule at the store level too.
func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO shifts (`+shiftColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		shift.ID, string(shift.Status), timeToPgTimestamptz(shift.OpenedAt), shift.OpenedBy,
		decimalToNumeric(shift.OpeningFloat), timePtrToPgTimestamptz(shift.ClosedAt), shift.ClosedBy,
		decimalToNumeric(shift.TotalSales), decimalToNumeric(shift.CardPayments),
		decimalToNumeric(shift.CreditBills), shift.CreditBillCustomerID,
		decimalToNumeric(shift.HikingBarSales), decimalToNumeric(shift.ForeignCurrencyAmount),
		shift.ForeignCurrencyNotes, decimalToNumeric(shift.ExpectedCash),
		decimalToNumeric(shift.ActualCash), decimalToNumeric(shift.Variance), shift.Notes,
	)

	return err
}

// GetByID retrieves a shift by ID.
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id)

	return scanShift(row)
}

// Latest retrieves the most recently opened shift.
func (r *ShiftRepository) Latest(ctx context.Context) (*domain.Shift, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+shiftColumns+` FROM shifts ORDER BY opened_at DESC, id DESC LIMIT 1`)

	return scanShift(row)
}

// Open retrieves the currently open shift, if any.
func (r *ShiftRepository) Open(ctx context.Context) (*domain.Shift, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE status = $1 ORDER BY opened_at DESC LIMIT 1`,
		string(domain.ShiftOpen))

	shift, err := scanShift(row)
	if errors.Is(err, domain.ErrShiftNotFound) {
		return nil, domain.ErrShiftNotOpen
	}

	return shift, err
}

// Update rewrites a shift within a transaction.
func (r *ShiftRepository) Update(ctx context.Context, tx usecase.Transaction, shift *domain.Shift) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE shifts SET status = $2, closed_at = $3, closed_by = $4, total_sales = $5,
			card_payments = $6, credit_bills = $7, credit_bill_customer_id = $8,
			hiking_bar_sales = $9, foreign_currency_amount = $10, foreign_currency_notes = $11,
			expected_cash = $12, actual_cash = $13, variance = $14, notes = $15
		 WHERE id = $1`,
		shift.ID, string(shift.Status), timePtrToPgTimestamptz(shift.ClosedAt), shift.ClosedBy,
		decimalToNumeric(shift.TotalSales), decimalToNumeric(shift.CardPayments),
		decimalToNumeric(shift.CreditBills), shift.CreditBillCustomerID,
		decimalToNumeric(shift.HikingBarSales), decimalToNumeric(shift.ForeignCurrencyAmount),
		shift.ForeignCurrencyNotes, decimalToNumeric(shift.ExpectedCash),
		decimalToNumeric(shift.ActualCash), decimalToNumeric(shift.Variance), shift.Notes,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrShiftNotFound
	}

	return nil
}

// List lists shifts newest first.
func (r *ShiftRepository) List(ctx context.Context, limit, offset int) ([]*domain.Shift, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	rows, err := r.pool.Query(ctx,
		`SELECT `+shiftColumns+` FROM shifts ORDER BY opened_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []*domain.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	return shifts, rows.Err()
}

func scanShift(row pgx.Row) (*domain.Shift, error) {
	var (
		shift    domain.Shift
		status   string
		openedAt pgtype.Timestamptz
		closedAt pgtype.Timestamptz

		openingFloat, totalSales, cardPayments, creditBills pgtype.Numeric
		hikingBarSales, fxAmount                            pgtype.Numeric
		expectedCash, actualCash, variance                  pgtype.Numeric
	)

	err := row.Scan(&shift.ID, &status, &openedAt, &shift.OpenedBy, &openingFloat,
		&closedAt, &shift.ClosedBy, &totalSales, &cardPayments, &creditBills,
		&shift.CreditBillCustomerID, &hikingBarSales, &fxAmount,
		&shift.ForeignCurrencyNotes, &expectedCash, &actualCash, &variance, &shift.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShiftNotFound
		}

		return nil, err
	}

	shift.Status = domain.ShiftStatus(status)
	shift.OpenedAt = openedAt.Time
	shift.ClosedAt = pgTimestamptzToTimePtr(closedAt)
	shift.OpeningFloat = numericToDecimal(openingFloat)
	shift.TotalSales = numericToDecimal(totalSales)
	shift.CardPayments = numericToDecimal(cardPayments)
	shift.CreditBills = numericToDecimal(creditBills)
	shift.HikingBarSales = numericToDecimal(hikingBarSales)
	shift.ForeignCurrencyAmount = numericToDecimal(fxAmount)
	shift.ExpectedCash = numericToDecimal(expectedCash)
	shift.ActualCash = numericToDecimal(actualCash)
	shift.Variance = numericToDecimal(variance)

	return &shift, nil
}
