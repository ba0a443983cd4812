package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type pricingRepository struct {
	db *sql.DB
}

func NewPricingRepository(db *sql.DB) repository.PricingRepository {
	return &pricingRepository{db: db}
}

const pricingColumns = `id, bike_type, duration_unit, season, price_cents, min_duration, deposit_cents,
	weekend_surcharge_percent, active, created_on, updated_on`

func scanPricingRule(row interface{ Scan(...interface{}) error }, p *domain.PricingRule) error {
	return row.Scan(&p.ID, &p.BikeType, &p.DurationUnit, &p.Season, &p.PriceCents, &p.MinDuration,
		&p.DepositCents, &p.WeekendSurcharge, &p.Active, &p.CreatedOn, &p.UpdatedOn)
}

func (r *pricingRepository) Create(ctx context.Context, p *domain.PricingRule) error {
	query := `INSERT INTO pricing_rules (bike_type, duration_unit, season, price_cents, min_duration,
	          deposit_cents, weekend_surcharge_percent, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.BikeType, p.DurationUnit, p.Season, p.PriceCents, p.MinDuration,
		p.DepositCents, p.WeekendSurcharge, p.Active, time.Now(), time.Now()).Scan(&p.ID)
}

func (r *pricingRepository) GetByID(ctx context.Context, id int32) (*domain.PricingRule, error) {
	p := &domain.PricingRule{}
	query := `SELECT ` + pricingColumns + ` FROM pricing_rules WHERE id = $1`
	err := scanPricingRule(r.db.QueryRowContext(ctx, query, id), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "pricing rule", ID: id}
		}
		return nil, err
	}
	return p, nil
}

func (r *pricingRepository) Update(ctx context.Context, p *domain.PricingRule) error {
	query := `UPDATE pricing_rules SET price_cents=$1, min_duration=$2, deposit_cents=$3,
	          weekend_surcharge_percent=$4, active=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, p.PriceCents, p.MinDuration, p.DepositCents,
		p.WeekendSurcharge, p.Active, time.Now(), p.ID)
	return err
}

func (r *pricingRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pricing_rules WHERE id = $1`, id)
	return err
}

func (r *pricingRepository) List(ctx context.Context) ([]domain.PricingRule, error) {
	query := `SELECT ` + pricingColumns + ` FROM pricing_rules ORDER BY bike_type, duration_unit, season`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.PricingRule
	for rows.Next() {
		var p domain.PricingRule
		if err := scanPricingRule(rows, &p); err != nil {
			return nil, err
		}
		rules = append(rules, p)
	}
	return rules, rows.Err()
}

func (r *pricingRepository) Find(ctx context.Context, bikeType domain.BikeType, unit domain.DurationUnit, season domain.Season) (*domain.PricingRule, error) {
	p := &domain.PricingRule{}
	query := `SELECT ` + pricingColumns + ` FROM pricing_rules
	          WHERE bike_type = $1 AND duration_unit = $2 AND season = $3 AND active = true`
	err := scanPricingRule(r.db.QueryRowContext(ctx, query, bikeType, unit, season), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.PricingGapError{BikeType: bikeType, DurationUnit: unit, Season: season}
		}
		return nil, err
	}
	return p, nil
}
