package domain

import "time"

type Season string

const (
	SeasonAll  Season = "all"
	SeasonHigh Season = "high"
	SeasonLow  Season = "low"
)

// PricingRule is one row of the rental price grid. At most one rule may
// exist per (bike type, duration unit, season) tuple.
type PricingRule struct {
	ID               int32        `json:"id"`
	BikeType         BikeType     `json:"bike_type"`
	DurationUnit     DurationUnit `json:"duration_unit"`
	Season           Season       `json:"season"`
	PriceCents       int32        `json:"price_cents"`
	MinDuration      int32        `json:"min_duration"`
	DepositCents     int32        `json:"deposit_cents"`
	WeekendSurcharge float64      `json:"weekend_surcharge_percent"`
	Active           bool         `json:"active"`
	CreatedOn        time.Time    `json:"created_on"`
	UpdatedOn        time.Time    `json:"updated_on"`
}
