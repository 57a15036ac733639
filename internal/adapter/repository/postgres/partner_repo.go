package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

const partnerSaleColumns = `id, date, amount, description, status, reconciled_at, reconciled_by,
	settle_cash, settle_card, settle_service_charge, settle_contra`

// PartnerSaleRepository implements usecase.PartnerSaleRepository.
type PartnerSaleRepository struct {
	pool *pgxpool.Pool
}

// NewPartnerSaleRepository creates a new PartnerSaleRepository.
func NewPartnerSaleRepository(pool *pgxpool.Pool) *PartnerSaleRepository {
	return &PartnerSaleRepository{pool: pool}
}

// Create creates a partner sale within a transaction.
func (r *PartnerSaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.PartnerSale) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO partner_sales (id, date, amount, description, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		sale.ID, timeToPgTimestamptz(sale.Date), decimalToNumeric(sale.Amount),
		sale.Description, string(sale.Status),
	)

	return err
}

// GetByID retrieves a partner sale by ID.
func (r *PartnerSaleRepository) GetByID(ctx context.Context, id string) (*domain.PartnerSale, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+partnerSaleColumns+` FROM partner_sales WHERE id = $1`, id)

	return scanPartnerSale(row)
}

// ListPending lists unreconciled sales oldest first.
func (r *PartnerSaleRepository) ListPending(ctx context.Context) ([]*domain.PartnerSale, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+partnerSaleColumns+` FROM partner_sales WHERE status = $1 ORDER BY date, id`,
		string(domain.PartnerSalePending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*domain.PartnerSale
	for rows.Next() {
		sale, err := scanPartnerSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

// MarkReconciled flips a pending sale to RECONCILED, recording who, when
// and how the amount was split. The status guard makes a double settle a
// no-row update.
func (r *PartnerSaleRepository) MarkReconciled(ctx context.Context, tx usecase.Transaction, id, reconciledBy string, at time.Time, alloc domain.PartnerAllocation) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE partner_sales SET status = $2, reconciled_at = $3, reconciled_by = $4,
			settle_cash = $5, settle_card = $6, settle_service_charge = $7, settle_contra = $8
		 WHERE id = $1 AND status = $9`,
		id, string(domain.PartnerSaleReconciled), timeToPgTimestamptz(at), reconciledBy,
		decimalToNumeric(alloc.Cash), decimalToNumeric(alloc.Card),
		decimalToNumeric(alloc.ServiceCharge), decimalToNumeric(alloc.Contra),
		string(domain.PartnerSalePending),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPartnerSaleSettled
	}

	return nil
}

func scanPartnerSale(row pgx.Row) (*domain.PartnerSale, error) {
	var (
		sale         domain.PartnerSale
		date         pgtype.Timestamptz
		status       string
		reconciledAt pgtype.Timestamptz
		reconciledBy pgtype.Text
		amount       pgtype.Numeric

		cash, card, serviceCharge, contra pgtype.Numeric
	)

	err := row.Scan(&sale.ID, &date, &amount, &sale.Description, &status,
		&reconciledAt, &reconciledBy, &cash, &card, &serviceCharge, &contra)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPartnerSaleNotFound
		}

		return nil, err
	}

	sale.Date = date.Time
	sale.Amount = numericToDecimal(amount)
	sale.Status = domain.PartnerSaleStatus(status)
	sale.ReconciledAt = pgTimestamptzToTimePtr(reconciledAt)
	sale.ReconciledBy = reconciledBy.String

	if sale.Status == domain.PartnerSaleReconciled {
		sale.Settlement = &domain.PartnerAllocation{
			Cash:          numericToDecimal(cash),
			Card:          numericToDecimal(card),
			ServiceCharge: numericToDecimal(serviceCharge),
			Contra:        numericToDecimal(contra),
		}
	}

	return &sale, nil
}
