package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type bikeRepository struct {
	db *sql.DB
}

func NewBikeRepository(db *sql.DB) repository.BikeRepository {
	return &bikeRepository{db: db}
}

const bikeColumns = `id, reference, name, brand, bike_type, size, status, is_for_rent, is_for_sale,
	rental_price_hour_cents, rental_price_day_cents, rental_price_week_cents, rental_price_month_cents,
	sale_price_cents, active, created_on, updated_on, archived_on`

func scanBike(row interface{ Scan(...interface{}) error }, b *domain.Bike) error {
	return row.Scan(&b.ID, &b.Reference, &b.Name, &b.Brand, &b.BikeType, &b.Size, &b.Status,
		&b.IsForRent, &b.IsForSale,
		&b.RentalPriceHourCents, &b.RentalPriceDayCents, &b.RentalPriceWeekCents, &b.RentalPriceMonthCents,
		&b.SalePriceCents, &b.Active, &b.CreatedOn, &b.UpdatedOn, &b.ArchivedOn)
}

func (r *bikeRepository) Create(ctx context.Context, b *domain.Bike) error {
	query := `INSERT INTO bikes (reference, name, brand, bike_type, size, status, is_for_rent, is_for_sale,
	          rental_price_hour_cents, rental_price_day_cents, rental_price_week_cents, rental_price_month_cents,
	          sale_price_cents, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.Reference, b.Name, b.Brand, b.BikeType, b.Size, b.Status,
		b.IsForRent, b.IsForSale,
		b.RentalPriceHourCents, b.RentalPriceDayCents, b.RentalPriceWeekCents, b.RentalPriceMonthCents,
		b.SalePriceCents, b.Active, time.Now(), time.Now()).Scan(&b.ID)
}

func (r *bikeRepository) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	b := &domain.Bike{}
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE id = $1`
	err := scanBike(r.db.QueryRowContext(ctx, query, id), b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "bike", ID: id}
		}
		return nil, err
	}
	return b, nil
}

func (r *bikeRepository) Update(ctx context.Context, b *domain.Bike) error {
	query := `UPDATE bikes SET name=$1, brand=$2, bike_type=$3, size=$4, status=$5, is_for_rent=$6, is_for_sale=$7,
	          rental_price_hour_cents=$8, rental_price_day_cents=$9, rental_price_week_cents=$10, rental_price_month_cents=$11,
	          sale_price_cents=$12, active=$13, updated_on=$14 WHERE id=$15`
	_, err := r.db.ExecContext(ctx, query, b.Name, b.Brand, b.BikeType, b.Size, b.Status, b.IsForRent, b.IsForSale,
		b.RentalPriceHourCents, b.RentalPriceDayCents, b.RentalPriceWeekCents, b.RentalPriceMonthCents,
		b.SalePriceCents, b.Active, time.Now(), b.ID)
	return err
}

func (r *bikeRepository) UpdateStatus(ctx context.Context, id int32, status domain.BikeStatus) error {
	query := `UPDATE bikes SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *bikeRepository) Archive(ctx context.Context, id int32) error {
	query := `UPDATE bikes SET active=false, archived_on=$1, updated_on=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *bikeRepository) List(ctx context.Context, bikeType, size, status string, page, pageSize int32) ([]domain.Bike, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE active = true`

	args := []interface{}{}
	argIdx := 1
	if bikeType != "" {
		query += fmt.Sprintf(" AND bike_type = $%d", argIdx)
		args = append(args, bikeType)
		argIdx++
	}
	if size != "" {
		query += fmt.Sprintf(" AND size = $%d", argIdx)
		args = append(args, size)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY reference LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bikes []domain.Bike
	for rows.Next() {
		var b domain.Bike
		if err := scanBike(rows, &b); err != nil {
			return nil, 0, err
		}
		bikes = append(bikes, b)
	}
	return bikes, count, rows.Err()
}

func (r *bikeRepository) ListRentable(ctx context.Context) ([]domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes
	          WHERE active = true AND is_for_rent = true AND status NOT IN ('SOLD', 'MAINTENANCE')
	          ORDER BY reference`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bikes []domain.Bike
	for rows.Next() {
		var b domain.Bike
		if err := scanBike(rows, &b); err != nil {
			return nil, err
		}
		bikes = append(bikes, b)
	}
	return bikes, rows.Err()
}
