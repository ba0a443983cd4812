package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"

	"github.com/lib/pq"
)

type accessoryRepository struct {
	db *sql.DB
}

func NewAccessoryRepository(db *sql.DB) repository.AccessoryRepository {
	return &accessoryRepository{db: db}
}

func (r *accessoryRepository) Create(ctx context.Context, a *domain.Accessory) error {
	query := `INSERT INTO accessories (reference, name, category, sale_price_cents, stock_quantity, active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, a.Reference, a.Name, a.Category, a.SalePriceCents,
		a.StockQuantity, a.Active, time.Now()).Scan(&a.ID)
}

func (r *accessoryRepository) GetByID(ctx context.Context, id int32) (*domain.Accessory, error) {
	a := &domain.Accessory{}
	query := `SELECT id, reference, name, category, sale_price_cents, stock_quantity, active, created_on
	          FROM accessories WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Reference, &a.Name, &a.Category,
		&a.SalePriceCents, &a.StockQuantity, &a.Active, &a.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "accessory", ID: id}
		}
		return nil, err
	}
	return a, nil
}

func (r *accessoryRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.Accessory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, reference, name, category, sale_price_cents, stock_quantity, active, created_on
	          FROM accessories WHERE id = ANY($1) ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accessories []domain.Accessory
	for rows.Next() {
		var a domain.Accessory
		if err := rows.Scan(&a.ID, &a.Reference, &a.Name, &a.Category, &a.SalePriceCents,
			&a.StockQuantity, &a.Active, &a.CreatedOn); err != nil {
			return nil, err
		}
		accessories = append(accessories, a)
	}
	return accessories, rows.Err()
}

func (r *accessoryRepository) List(ctx context.Context) ([]domain.Accessory, error) {
	query := `SELECT id, reference, name, category, sale_price_cents, stock_quantity, active, created_on
	          FROM accessories WHERE active = true ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accessories []domain.Accessory
	for rows.Next() {
		var a domain.Accessory
		if err := rows.Scan(&a.ID, &a.Reference, &a.Name, &a.Category, &a.SalePriceCents,
			&a.StockQuantity, &a.Active, &a.CreatedOn); err != nil {
			return nil, err
		}
		accessories = append(accessories, a)
	}
	return accessories, rows.Err()
}
