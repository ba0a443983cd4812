package domain

import "time"

// Customer is the read view the engine keeps of the external customer
// directory. The engine never mutates customer records; it only attributes
// rentals and serves the aggregated statistics below.
type Customer struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Since     time.Time `json:"customer_since"`
	CreatedOn time.Time `json:"created_on"`
}

// CustomerRentalStats is the spend rollup exposed to the customer
// directory. Cancelled rentals are excluded from both count and spend.
type CustomerRentalStats struct {
	CustomerID      int32 `json:"customer_id"`
	RentalCount     int32 `json:"rental_count"`
	TotalSpentCents int32 `json:"total_spent_cents"`
	ContractCount   int32 `json:"contract_count"`
	HasActiveRental bool  `json:"has_active_rental"`
}
