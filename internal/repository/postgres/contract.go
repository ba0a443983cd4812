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

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `id, reference, customer_id, contract_type, date_contract, date_start, date_end,
	discount_percent, subtotal_cents, discount_amount_cents, total_amount_cents, total_deposit_cents,
	amount_paid_cents, balance_due_cents, status, terms_accepted, notes, created_on, updated_on`

func scanContract(row interface{ Scan(...interface{}) error }, c *domain.Contract) error {
	return row.Scan(&c.ID, &c.Reference, &c.CustomerID, &c.ContractType, &c.DateContract, &c.DateStart, &c.DateEnd,
		&c.DiscountPercent, &c.SubtotalCents, &c.DiscountAmountCents, &c.TotalAmountCents, &c.TotalDepositCents,
		&c.AmountPaidCents, &c.BalanceDueCents, &c.Status, &c.TermsAccepted, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (reference, customer_id, contract_type, date_contract, date_start, date_end,
	          discount_percent, status, terms_accepted, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Reference, c.CustomerID, c.ContractType,
		c.DateContract, c.DateStart, c.DateEnd, c.DiscountPercent,
		c.Status, c.TermsAccepted, c.Notes, time.Now(), time.Now()).Scan(&c.ID)
}

func (r *contractRepository) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	c := &domain.Contract{}
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	err := scanContract(r.db.QueryRowContext(ctx, query, id), c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "contract", ID: id}
		}
		return nil, err
	}
	return c, nil
}

func (r *contractRepository) Update(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts SET contract_type=$1, date_start=$2, date_end=$3, discount_percent=$4,
	          subtotal_cents=$5, discount_amount_cents=$6, total_amount_cents=$7, total_deposit_cents=$8,
	          amount_paid_cents=$9, balance_due_cents=$10, status=$11, terms_accepted=$12, notes=$13,
	          updated_on=$14 WHERE id=$15`
	_, err := r.db.ExecContext(ctx, query, c.ContractType, c.DateStart, c.DateEnd, c.DiscountPercent,
		c.SubtotalCents, c.DiscountAmountCents, c.TotalAmountCents, c.TotalDepositCents,
		c.AmountPaidCents, c.BalanceDueCents, c.Status, c.TermsAccepted, c.Notes, time.Now(), c.ID)
	return err
}

func (r *contractRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE customer_id = $1 ORDER BY date_contract DESC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		var c domain.Contract
		if err := scanContract(rows, &c); err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (r *contractRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Contract, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
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

	query += fmt.Sprintf(" ORDER BY date_contract DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		var c domain.Contract
		if err := scanContract(rows, &c); err != nil {
			return nil, 0, err
		}
		contracts = append(contracts, c)
	}
	return contracts, count, rows.Err()
}
