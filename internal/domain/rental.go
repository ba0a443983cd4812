package domain

import (
	"math"
	"time"
)

type RentalStatus string

const (
	RentalStatusDraft     RentalStatus = "DRAFT"
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusOngoing   RentalStatus = "ONGOING"
	RentalStatusReturned  RentalStatus = "RETURNED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
)

type DurationUnit string

const (
	DurationUnitHour  DurationUnit = "hour"
	DurationUnitDay   DurationUnit = "day"
	DurationUnitWeek  DurationUnit = "week"
	DurationUnitMonth DurationUnit = "month"
)

// lateFeeMultiplier is the flat surcharge applied on top of the daily rate
// for every overdue day.
const lateFeeMultiplier = 1.5

type Rental struct {
	ID         int32  `json:"id"`
	Reference  string `json:"reference"`
	BikeID     int32  `json:"bike_id"`
	CustomerID int32  `json:"customer_id"`
	ContractID *int32 `json:"contract_id,omitempty"`

	DateStart    time.Time  `json:"date_start"`
	DateEnd      time.Time  `json:"date_end"`
	DateReturned *time.Time `json:"date_returned,omitempty"`

	DurationUnit    DurationUnit `json:"duration_unit"`
	Duration        int32        `json:"duration"`
	DurationDisplay string       `json:"duration_display"`

	UnitPriceCents  int32 `json:"unit_price_cents"`
	TotalPriceCents int32 `json:"total_price_cents"`
	DepositCents    int32 `json:"deposit_cents"`
	DepositReturned bool  `json:"deposit_returned"`

	IsOverdue    bool  `json:"is_overdue"`
	OverdueDays  int32 `json:"overdue_days"`
	LateFeeCents int32 `json:"late_fee_cents"`

	Status RentalStatus `json:"status"`

	Notes              string  `json:"notes"`
	BikeConditionStart string  `json:"bike_condition_start"`
	BikeConditionEnd   string  `json:"bike_condition_end"`
	AccessoryIDs       []int32 `json:"accessory_ids,omitempty"`

	InvoiceRef string `json:"invoice_ref,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Terminal reports whether the rental no longer occupies its bike's
// calendar. Terminal rentals are excluded from every overlap scan.
func (r *Rental) Terminal() bool {
	return r.Status == RentalStatusCancelled || r.Status == RentalStatusReturned
}

// RecomputeTotal re-derives the total from duration and unit price. Must be
// called whenever either input changes.
func (r *Rental) RecomputeTotal() {
	r.TotalPriceCents = r.Duration * r.UnitPriceCents
}

// RefreshOverdue re-derives the overdue flag, day count and late fee as of
// now. Ongoing and confirmed rentals compare against the clock; returned
// rentals compare the actual return date so fees survive a late return.
func (r *Rental) RefreshOverdue(now time.Time) {
	switch {
	case (r.Status == RentalStatusOngoing || r.Status == RentalStatusConfirmed || r.Status == RentalStatusOverdue) && now.After(r.DateEnd):
		r.IsOverdue = true
		r.OverdueDays = int32(now.Sub(r.DateEnd).Hours() / 24)
	case r.Status == RentalStatusReturned && r.DateReturned != nil && r.DateReturned.After(r.DateEnd):
		r.IsOverdue = true
		r.OverdueDays = int32(r.DateReturned.Sub(r.DateEnd).Hours() / 24)
	default:
		r.IsOverdue = false
		r.OverdueDays = 0
	}
	r.LateFeeCents = r.lateFee()
}

// lateFee keeps the legacy conversion: non-day units derive an hourly
// equivalent by dividing the unit price by 24, regardless of the unit's own
// span. See DESIGN.md before changing this.
func (r *Rental) lateFee() int32 {
	if !r.IsOverdue || r.OverdueDays <= 0 {
		return 0
	}
	dailyRate := float64(r.UnitPriceCents)
	if r.DurationUnit != DurationUnitDay {
		dailyRate = float64(r.UnitPriceCents) / 24
	}
	return int32(math.Round(dailyRate * float64(r.OverdueDays) * lateFeeMultiplier))
}

// InvoiceLine is a finalized rental exposed to the invoicing collaborator.
type InvoiceLine struct {
	Description    string `json:"description"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int32  `json:"unit_price_cents"`
}

// InvoiceLines renders the rental as billable line items: the rental itself,
// the late fee when present, and one zero-priced line per included accessory.
func (r *Rental) InvoiceLines(accessoryNames []string) []InvoiceLine {
	lines := []InvoiceLine{{
		Description:    "Bike rental " + r.Reference + " - " + r.DurationDisplay,
		Quantity:       r.Duration,
		UnitPriceCents: r.UnitPriceCents,
	}}
	if r.LateFeeCents > 0 {
		lines = append(lines, InvoiceLine{
			Description:    "Late return fee",
			Quantity:       1,
			UnitPriceCents: r.LateFeeCents,
		})
	}
	for _, name := range accessoryNames {
		lines = append(lines, InvoiceLine{Description: "Accessory: " + name, Quantity: 1})
	}
	return lines
}
