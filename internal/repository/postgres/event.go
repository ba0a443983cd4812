package postgres

import (
	"context"
	"database/sql"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.RentalEvent) error {
	query := `INSERT INTO rental_events (kind, rental_id, rental_ref, old_status, new_status, metric, occurred_at, recorded_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.Kind, e.RentalID, e.RentalRef, e.OldStatus, e.NewStatus,
		e.Metric, e.OccurredAt, time.Now()).Scan(&e.ID)
}

func (r *eventRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalEvent, error) {
	query := `SELECT id, kind, rental_id, rental_ref, old_status, new_status, metric, occurred_at, recorded_on
	          FROM rental_events WHERE rental_id = $1 ORDER BY occurred_at`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.RentalEvent
	for rows.Next() {
		var e domain.RentalEvent
		if err := rows.Scan(&e.ID, &e.Kind, &e.RentalID, &e.RentalRef, &e.OldStatus, &e.NewStatus,
			&e.Metric, &e.OccurredAt, &e.RecordedOn); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
