package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks across layers.
var (
	ErrConflict          = errors.New("booking conflict")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrPricingGap        = errors.New("no applicable pricing rule")
)

// ConflictError reports that a requested window overlaps existing
// non-terminal rentals on the same bike. Never auto-resolved.
type ConflictError struct {
	BikeID     int32
	RentalIDs  []int32
	RentalRefs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("bike %d is already reserved for this period (rentals %v)", e.BikeID, e.RentalRefs)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// InvalidTransitionError reports a lifecycle operation attempted from a
// state that does not permit it. Ref names the rental or contract.
type InvalidTransitionError struct {
	Ref  string
	From string
	Op   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from state %s", e.Ref, e.Op, e.From)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// ValidationError reports a structural violation caught before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports a missing bike, rental, contract or pricing rule.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// PricingGapError reports that no rate exists for the combination. A zero
// price is never treated as a free rental.
type PricingGapError struct {
	BikeType     BikeType
	DurationUnit DurationUnit
	Season       Season
}

func (e *PricingGapError) Error() string {
	return fmt.Sprintf("no pricing rule for %s/%s (season %s)", e.BikeType, e.DurationUnit, e.Season)
}

func (e *PricingGapError) Unwrap() error { return ErrPricingGap }
