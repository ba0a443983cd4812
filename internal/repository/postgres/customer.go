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

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, email, phone, customer_since, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Since, time.Now()).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, email, phone, customer_since, created_on FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Since, &c.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "customer", ID: id}
		}
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	offset := (page - 1) * pageSize
	sqlQuery := `SELECT id, name, email, phone, customer_since, created_on FROM customers WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if query != "" {
		sqlQuery += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sqlQuery + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlQuery += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Since, &c.CreatedOn); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, count, rows.Err()
}

// Cancelled rentals are excluded from count and spend. The active flag covers
// the three states that still occupy a bike.
func (r *customerRepository) GetRentalStats(ctx context.Context, customerID int32) (*domain.CustomerRentalStats, error) {
	stats := &domain.CustomerRentalStats{CustomerID: customerID}
	query := `SELECT
	            count(*) FILTER (WHERE status <> 'CANCELLED'),
	            COALESCE(sum(total_price_cents + late_fee_cents) FILTER (WHERE status <> 'CANCELLED'), 0),
	            count(*) FILTER (WHERE status IN ('CONFIRMED', 'ONGOING', 'OVERDUE')) > 0
	          FROM rentals WHERE customer_id = $1`
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&stats.RentalCount, &stats.TotalSpentCents, &stats.HasActiveRental)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM contracts WHERE customer_id = $1`, customerID).Scan(&stats.ContractCount)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
