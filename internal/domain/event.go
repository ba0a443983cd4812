package domain

import "time"

type EventKind string

const (
	EventKindTransition   EventKind = "TRANSITION"
	EventKindOverdueSweep EventKind = "OVERDUE_SWEEP"
	EventKindExtension    EventKind = "EXTENSION"
)

// RentalEvent is the structured record emitted on every lifecycle
// transition. Consumers (audit log, messaging) do their own formatting;
// the engine only supplies fields.
type RentalEvent struct {
	ID          int32        `json:"id"`
	Kind        EventKind    `json:"kind"`
	RentalID    int32        `json:"rental_id"`
	RentalRef   string       `json:"rental_ref"`
	OldStatus   RentalStatus `json:"old_status"`
	NewStatus   RentalStatus `json:"new_status"`
	Metric      *int32       `json:"metric,omitempty"` // e.g. overdue days, extension amount
	OccurredAt  time.Time    `json:"occurred_at"`
	RecordedOn  time.Time    `json:"recorded_on"`
}
