package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

const staffColumns = `id, name, role, salary, loan_balance, loan_installment, active, joined_at`

// StaffRepository implements usecase.StaffRepository.
type StaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

// Create creates a staff member.
func (r *StaffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO staff (`+staffColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		staff.ID, staff.Name, staff.Role, decimalToNumeric(staff.Salary),
		decimalToNumeric(staff.LoanBalance), decimalToNumeric(staff.LoanInstallment),
		staff.Active, timeToPgTimestamptz(staff.JoinedAt),
	)

	return err
}

// GetByID retrieves a staff member by ID.
func (r *StaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)

	return scanStaff(row)
}

// List lists staff members by name.
func (r *StaffRepository) List(ctx context.Context) ([]*domain.StaffMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+staffColumns+` FROM staff ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []*domain.StaffMember
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, member)
	}

	return staff, rows.Err()
}

// UpdateLoanBalance sets a staff member's remaining loan balance within a
// transaction.
func (r *StaffRepository) UpdateLoanBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE staff SET loan_balance = $2 WHERE id = $1`,
		id, decimalToNumeric(balance))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrStaffNotFound
	}

	return nil
}

func scanStaff(row pgx.Row) (*domain.StaffMember, error) {
	var (
		staff    domain.StaffMember
		joinedAt pgtype.Timestamptz

		salary, loanBalance, loanInstallment pgtype.Numeric
	)

	err := row.Scan(&staff.ID, &staff.Name, &staff.Role, &salary,
		&loanBalance, &loanInstallment, &staff.Active, &joinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStaffNotFound
		}

		return nil, err
	}

	staff.Salary = numericToDecimal(salary)
	staff.LoanBalance = numericToDecimal(loanBalance)
	staff.LoanInstallment = numericToDecimal(loanInstallment)
	staff.JoinedAt = joinedAt.Time

	return &staff, nil
}
