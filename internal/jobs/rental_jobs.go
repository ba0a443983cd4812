package jobs

import (
	"context"
	"time"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/logger"
)

// MarkOverdueRentals flips ONGOING rentals past their end date to OVERDUE.
// The predicate lives inside the UPDATE, so a rental returned between runs
// is never touched and repeated runs are no-ops.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()
		now := time.Now()

		transitioned, err := jr.store.RentalRepository.MarkOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", len(transitioned))

		for i := range transitioned {
			rental := &transitioned[i]
			rental.RefreshOverdue(now)

			days := rental.OverdueDays
			event := &domain.RentalEvent{
				Kind:       domain.EventKindOverdueSweep,
				RentalID:   rental.ID,
				RentalRef:  rental.Reference,
				OldStatus:  domain.RentalStatusOngoing,
				NewStatus:  domain.RentalStatusOverdue,
				Metric:     &days,
				OccurredAt: now,
			}
			if err := jr.store.EventRepository.Create(ctx, event); err != nil {
				logger.Error("Failed to record overdue event", "rental_ref", rental.Reference, "error", err)
			}

			// Persist the refreshed late fee so reads do not have to
			// rederive it.
			if err := jr.store.RentalRepository.Update(ctx, rental); err != nil {
				logger.Error("Failed to persist overdue fields", "rental_ref", rental.Reference, "error", err)
				continue
			}

			logger.Debug("Marked rental as overdue",
				"rental_ref", rental.Reference,
				"bike_id", rental.BikeID,
				"overdue_days", rental.OverdueDays,
				"late_fee_cents", rental.LateFeeCents)
		}
	})
}

// SendOverdueReminders emails every customer holding an overdue rental.
// One failed send does not stop the rest.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()
		now := time.Now()

		overdue, err := jr.store.RentalRepository.ListByStatus(ctx, domain.RentalStatusOverdue)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		sent := 0
		for i := range overdue {
			rental := &overdue[i]
			rental.RefreshOverdue(now)

			customer, err := jr.store.CustomerRepository.GetByID(ctx, rental.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for reminder", "rental_ref", rental.Reference, "error", err)
				continue
			}

			if err := jr.services.Email.SendOverdueNotice(ctx, customer.Email, customer.Name,
				rental.Reference, rental.OverdueDays, rental.LateFeeCents); err != nil {
				logger.Error("Failed to send overdue reminder", "rental_ref", rental.Reference, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "count", sent, "overdue_total", len(overdue))
	})
}
