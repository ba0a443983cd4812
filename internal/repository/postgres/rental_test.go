package postgres

import (
	"context"
	"testing"
	"time"

	"bikeshop-rental-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var rentalTestColumns = []string{
	"id", "reference", "bike_id", "customer_id", "contract_id", "date_start", "date_end", "date_returned",
	"duration_unit", "duration", "duration_display", "unit_price_cents", "total_price_cents", "deposit_cents",
	"deposit_returned", "is_overdue", "overdue_days", "late_fee_cents", "status", "notes",
	"bike_condition_start", "bike_condition_end", "accessory_ids", "invoice_ref", "created_on", "updated_on",
}

func addRentalRow(rows *sqlmock.Rows, id int32, ref string, bikeID int32, status domain.RentalStatus, start, end time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, ref, bikeID, int32(3), nil, start, end, nil,
		"day", int32(2), "2 day(s)", int32(2000), int32(4000), int32(8000),
		false, false, int32(0), int32(0), string(status), "",
		"", "", "{}", "", time.Now(), time.Now(),
	)
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	rt := &domain.Rental{
		Reference:    "RENT-ABC",
		BikeID:       7,
		CustomerID:   3,
		DateStart:    time.Now(),
		DateEnd:      time.Now().Add(48 * time.Hour),
		DurationUnit: domain.DurationUnitDay,
		Duration:     2,
		Status:       domain.RentalStatusDraft,
	}

	mock.ExpectQuery("INSERT INTO rentals").
		WithArgs("RENT-ABC", int32(7), int32(3), nil, rt.DateStart, rt.DateEnd,
			domain.DurationUnitDay, int32(2), "", int32(0), int32(0), int32(0),
			domain.RentalStatusDraft, "", "", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err = repo.Create(context.Background(), rt)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), rt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)

	t.Run("Found", func(t *testing.T) {
		start := time.Now()
		rows := addRentalRow(sqlmock.NewRows(rentalTestColumns), 1, "RENT-ABC", 7, domain.RentalStatusConfirmed, start, start.Add(48*time.Hour))
		mock.ExpectQuery("FROM rentals WHERE id").WithArgs(int32(1)).WillReturnRows(rows)

		rt, err := repo.GetByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "RENT-ABC", rt.Reference)
		assert.Equal(t, domain.RentalStatusConfirmed, rt.Status)
		assert.Empty(t, rt.AccessoryIDs)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM rentals WHERE id").WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(rentalTestColumns))

		rt, err := repo.GetByID(context.Background(), 99)
		assert.Nil(t, rt)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_FindOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	start := time.Now()
	end := start.Add(48 * time.Hour)

	t.Run("ReturnsOpenRentalsOnly", func(t *testing.T) {
		rows := addRentalRow(sqlmock.NewRows(rentalTestColumns), 5, "RENT-TAKEN", 7, domain.RentalStatusOngoing, start, end)
		mock.ExpectQuery("FROM rentals").
			WithArgs(int32(7), start, end, int32(0)).
			WillReturnRows(rows)

		conflicts, err := repo.FindOverlapping(context.Background(), 7, start, end, 0)
		assert.NoError(t, err)
		assert.Len(t, conflicts, 1)
		assert.Equal(t, "RENT-TAKEN", conflicts[0].Reference)
	})

	t.Run("ExcludesOwnRental", func(t *testing.T) {
		mock.ExpectQuery("FROM rentals").
			WithArgs(int32(7), start, end, int32(5)).
			WillReturnRows(sqlmock.NewRows(rentalTestColumns))

		conflicts, err := repo.FindOverlapping(context.Background(), 7, start, end, 5)
		assert.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_MarkOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	now := time.Now()

	t.Run("FlagsElapsedOngoing", func(t *testing.T) {
		rows := addRentalRow(sqlmock.NewRows(rentalTestColumns), 1, "RENT-LATE", 7, domain.RentalStatusOverdue,
			now.Add(-72*time.Hour), now.Add(-24*time.Hour))
		mock.ExpectQuery("UPDATE rentals").WithArgs(now).WillReturnRows(rows)

		flagged, err := repo.MarkOverdue(context.Background(), now)
		assert.NoError(t, err)
		assert.Len(t, flagged, 1)
		assert.Equal(t, domain.RentalStatusOverdue, flagged[0].Status)
	})

	t.Run("SecondSweepFindsNothing", func(t *testing.T) {
		mock.ExpectQuery("UPDATE rentals").WithArgs(now).
			WillReturnRows(sqlmock.NewRows(rentalTestColumns))

		flagged, err := repo.MarkOverdue(context.Background(), now)
		assert.NoError(t, err)
		assert.Empty(t, flagged)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ListByContract(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	start := time.Now()

	rows := sqlmock.NewRows(rentalTestColumns)
	addRentalRow(rows, 1, "RENT-A", 7, domain.RentalStatusConfirmed, start, start.Add(24*time.Hour))
	addRentalRow(rows, 2, "RENT-B", 8, domain.RentalStatusDraft, start, start.Add(48*time.Hour))
	mock.ExpectQuery("FROM rentals WHERE contract_id").WithArgs(int32(11)).WillReturnRows(rows)

	rentals, err := repo.ListByContract(context.Background(), 11)
	assert.NoError(t, err)
	assert.Len(t, rentals, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
