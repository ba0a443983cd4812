package domain

import (
	"math"
	"time"
)

type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "DRAFT"
	ContractStatusConfirmed ContractStatus = "CONFIRMED"
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusDone      ContractStatus = "DONE"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

type ContractType string

const (
	ContractTypeShort        ContractType = "short"
	ContractTypeMedium       ContractType = "medium"
	ContractTypeLong         ContractType = "long"
	ContractTypeSubscription ContractType = "subscription"
)

type Contract struct {
	ID         int32  `json:"id"`
	Reference  string `json:"reference"`
	CustomerID int32  `json:"customer_id"`

	ContractType ContractType `json:"contract_type"`
	DateContract time.Time    `json:"date_contract"`
	DateStart    time.Time    `json:"date_start"`
	DateEnd      time.Time    `json:"date_end"`

	DiscountPercent     float64 `json:"discount_percent"`
	SubtotalCents       int32   `json:"subtotal_cents"`
	DiscountAmountCents int32   `json:"discount_amount_cents"`
	TotalAmountCents    int32   `json:"total_amount_cents"`
	TotalDepositCents   int32   `json:"total_deposit_cents"`
	AmountPaidCents     int32   `json:"amount_paid_cents"`
	BalanceDueCents     int32   `json:"balance_due_cents"`

	Status        ContractStatus `json:"status"`
	TermsAccepted bool           `json:"terms_accepted"`
	Notes         string         `json:"notes"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// DefaultWindow maps a contract type to its default duration. Used as a
// convenience at creation only; never enforced afterwards.
func (t ContractType) DefaultWindow() time.Duration {
	switch t {
	case ContractTypeShort:
		return 7 * 24 * time.Hour
	case ContractTypeMedium:
		return 28 * 24 * time.Hour
	case ContractTypeLong:
		return 90 * 24 * time.Hour
	case ContractTypeSubscription:
		return 365 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// RecomputeTotals rolls the member rentals up into the contract. Cancelled
// rentals contribute nothing; everything else counts at its current total.
func (c *Contract) RecomputeTotals(rentals []Rental) {
	var subtotal, deposit int32
	for i := range rentals {
		if rentals[i].Status == RentalStatusCancelled {
			continue
		}
		subtotal += rentals[i].TotalPriceCents
		deposit += rentals[i].DepositCents
	}
	c.SubtotalCents = subtotal
	c.DiscountAmountCents = int32(math.Round(float64(subtotal) * c.DiscountPercent / 100))
	c.TotalAmountCents = subtotal - c.DiscountAmountCents
	c.TotalDepositCents = deposit
	c.BalanceDueCents = c.TotalAmountCents - c.AmountPaidCents
}
