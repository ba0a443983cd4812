package domain

import "time"

type BikeStatus string

const (
	BikeStatusAvailable   BikeStatus = "AVAILABLE"
	BikeStatusReserved    BikeStatus = "RESERVED"
	BikeStatusRented      BikeStatus = "RENTED"
	BikeStatusMaintenance BikeStatus = "MAINTENANCE"
	BikeStatusSold        BikeStatus = "SOLD"
)

type BikeType string

const (
	BikeTypeRoad     BikeType = "road"
	BikeTypeMountain BikeType = "mountain"
	BikeTypeCity     BikeType = "city"
	BikeTypeElectric BikeType = "electric"
	BikeTypeHybrid   BikeType = "hybrid"
	BikeTypeBMX      BikeType = "bmx"
	BikeTypeFolding  BikeType = "folding"
	BikeTypeCargo    BikeType = "cargo"
	BikeTypeKids     BikeType = "kids"
)

type BikeSize string

const (
	BikeSizeXS   BikeSize = "xs"
	BikeSizeS    BikeSize = "s"
	BikeSizeM    BikeSize = "m"
	BikeSizeL    BikeSize = "l"
	BikeSizeXL   BikeSize = "xl"
	BikeSizeXXL  BikeSize = "xxl"
	BikeSizeKids BikeSize = "kids"
)

type Bike struct {
	ID        int32      `json:"id"`
	Reference string     `json:"reference"`
	Name      string     `json:"name"`
	Brand     string     `json:"brand"`
	BikeType  BikeType   `json:"bike_type"`
	Size      BikeSize   `json:"size"`
	Status    BikeStatus `json:"status"`
	IsForRent bool       `json:"is_for_rent"`
	IsForSale bool       `json:"is_for_sale"`
	// Per-unit rental prices. Zero means the bike has no own rate for the
	// unit and the pricing table is consulted instead.
	RentalPriceHourCents  int32      `json:"rental_price_hour_cents"`
	RentalPriceDayCents   int32      `json:"rental_price_day_cents"`
	RentalPriceWeekCents  int32      `json:"rental_price_week_cents"`
	RentalPriceMonthCents int32      `json:"rental_price_month_cents"`
	SalePriceCents        int32      `json:"sale_price_cents"`
	Active                bool       `json:"active"`
	CreatedOn             time.Time  `json:"created_on"`
	UpdatedOn             time.Time  `json:"updated_on"`
	ArchivedOn            *time.Time `json:"archived_on,omitempty"`
}

// RentalPriceFor maps a duration unit to the bike's own rate. Explicit
// mapping instead of name-based field lookup so a bad unit cannot slip
// through to pricing.
func (b *Bike) RentalPriceFor(unit DurationUnit) int32 {
	switch unit {
	case DurationUnitHour:
		return b.RentalPriceHourCents
	case DurationUnitDay:
		return b.RentalPriceDayCents
	case DurationUnitWeek:
		return b.RentalPriceWeekCents
	case DurationUnitMonth:
		return b.RentalPriceMonthCents
	default:
		return 0
	}
}

// Rentable reports whether the bike can accept new reservations at all.
// Availability for a concrete window is the reservation engine's job.
func (b *Bike) Rentable() bool {
	return b.Active && b.IsForRent && b.Status != BikeStatusSold && b.Status != BikeStatusMaintenance
}
