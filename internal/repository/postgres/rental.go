package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"

	"github.com/lib/pq"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, reference, bike_id, customer_id, contract_id, date_start, date_end, date_returned,
	duration_unit, duration, duration_display, unit_price_cents, total_price_cents, deposit_cents, deposit_returned,
	is_overdue, overdue_days, late_fee_cents, status, notes, bike_condition_start, bike_condition_end,
	accessory_ids, invoice_ref, created_on, updated_on`

func scanRental(row interface{ Scan(...interface{}) error }, rt *domain.Rental) error {
	return row.Scan(&rt.ID, &rt.Reference, &rt.BikeID, &rt.CustomerID, &rt.ContractID,
		&rt.DateStart, &rt.DateEnd, &rt.DateReturned,
		&rt.DurationUnit, &rt.Duration, &rt.DurationDisplay,
		&rt.UnitPriceCents, &rt.TotalPriceCents, &rt.DepositCents, &rt.DepositReturned,
		&rt.IsOverdue, &rt.OverdueDays, &rt.LateFeeCents, &rt.Status,
		&rt.Notes, &rt.BikeConditionStart, &rt.BikeConditionEnd,
		pq.Array(&rt.AccessoryIDs), &rt.InvoiceRef, &rt.CreatedOn, &rt.UpdatedOn)
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (reference, bike_id, customer_id, contract_id, date_start, date_end,
	          duration_unit, duration, duration_display, unit_price_cents, total_price_cents, deposit_cents,
	          status, notes, bike_condition_start, accessory_ids, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rt.Reference, rt.BikeID, rt.CustomerID, rt.ContractID,
		rt.DateStart, rt.DateEnd, rt.DurationUnit, rt.Duration, rt.DurationDisplay,
		rt.UnitPriceCents, rt.TotalPriceCents, rt.DepositCents,
		rt.Status, rt.Notes, rt.BikeConditionStart, pq.Array(rt.AccessoryIDs), time.Now(), time.Now()).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := scanRental(r.db.QueryRowContext(ctx, query, id), rt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "rental", ID: id}
		}
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET date_start=$1, date_end=$2, date_returned=$3, duration_unit=$4, duration=$5,
	          duration_display=$6, unit_price_cents=$7, total_price_cents=$8, deposit_cents=$9, deposit_returned=$10,
	          is_overdue=$11, overdue_days=$12, late_fee_cents=$13, status=$14, notes=$15,
	          bike_condition_start=$16, bike_condition_end=$17, invoice_ref=$18, updated_on=$19 WHERE id=$20`
	_, err := r.db.ExecContext(ctx, query, rt.DateStart, rt.DateEnd, rt.DateReturned, rt.DurationUnit, rt.Duration,
		rt.DurationDisplay, rt.UnitPriceCents, rt.TotalPriceCents, rt.DepositCents, rt.DepositReturned,
		rt.IsOverdue, rt.OverdueDays, rt.LateFeeCents, rt.Status, rt.Notes,
		rt.BikeConditionStart, rt.BikeConditionEnd, rt.InvoiceRef, time.Now(), rt.ID)
	return err
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1`

	args := []interface{}{customerID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rentals, err := r.queryRentals(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListByBike(ctx context.Context, bikeID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE bike_id = $1`

	args := []interface{}{bikeID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY date_start DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rentals, err := r.queryRentals(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListByContract(ctx context.Context, contractID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE contract_id = $1 ORDER BY date_start`
	return r.queryRentals(ctx, query, contractID)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 ORDER BY date_end`
	return r.queryRentals(ctx, query, status)
}

// Half-open interval intersection: existing.start < proposed.end AND
// existing.end > proposed.start. Back-to-back windows pass.
func (r *rentalRepository) FindOverlapping(ctx context.Context, bikeID int32, start, end time.Time, excludeID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE bike_id = $1
	            AND status NOT IN ('CANCELLED', 'RETURNED')
	            AND date_start < $3
	            AND date_end > $2
	            AND id <> $4
	          ORDER BY date_start`
	return r.queryRentals(ctx, query, bikeID, start, end, excludeID)
}

func (r *rentalRepository) MarkOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	query := `UPDATE rentals
	          SET status = 'OVERDUE',
	              is_overdue = true,
	              updated_on = $1
	          WHERE status = 'ONGOING'
	            AND date_end < $1
	          RETURNING ` + rentalColumns
	return r.queryRentals(ctx, query, now)
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
