package utils

import (
	"fmt"
	"time"

	"bikeshop-rental-backend/internal/domain"
)

// Fixed unit widths in hours. Months are a flat 30 days (720h); calendar
// month arithmetic is intentionally not used.
const (
	HoursPerDay   = 24
	HoursPerWeek  = 168
	HoursPerMonth = 720
)

// ComputeDuration buckets the [start, end) window into billable units.
// Day, week and month bill a minimum of one unit; the hour unit floors
// without a minimum, matching the legacy grid.
func ComputeDuration(start, end time.Time, unit domain.DurationUnit) (int32, string, error) {
	if !end.After(start) {
		return 0, "", &domain.ValidationError{Field: "date_end", Reason: "must be after date_start"}
	}

	totalHours := end.Sub(start).Hours()

	switch unit {
	case domain.DurationUnitHour:
		n := int32(totalHours)
		return n, fmt.Sprintf("%d hour(s)", n), nil
	case domain.DurationUnitDay:
		n := atLeastOne(int32(totalHours / HoursPerDay))
		return n, fmt.Sprintf("%d day(s)", n), nil
	case domain.DurationUnitWeek:
		n := atLeastOne(int32(totalHours / HoursPerWeek))
		return n, fmt.Sprintf("%d week(s)", n), nil
	case domain.DurationUnitMonth:
		n := atLeastOne(int32(totalHours / HoursPerMonth))
		return n, fmt.Sprintf("%d month(s)", n), nil
	default:
		return 0, "", &domain.ValidationError{Field: "duration_unit", Reason: fmt.Sprintf("unknown unit %q", unit)}
	}
}

// ExtensionDelta converts an extension request into a wall-clock duration.
// Months use the same fixed 30-day width as ComputeDuration.
func ExtensionDelta(unit domain.DurationUnit, amount int32) (time.Duration, error) {
	if amount <= 0 {
		return 0, &domain.ValidationError{Field: "extension_duration", Reason: "must be greater than 0"}
	}
	switch unit {
	case domain.DurationUnitHour:
		return time.Duration(amount) * time.Hour, nil
	case domain.DurationUnitDay:
		return time.Duration(amount) * HoursPerDay * time.Hour, nil
	case domain.DurationUnitWeek:
		return time.Duration(amount) * HoursPerWeek * time.Hour, nil
	case domain.DurationUnitMonth:
		return time.Duration(amount) * HoursPerMonth * time.Hour, nil
	default:
		return 0, &domain.ValidationError{Field: "extension_type", Reason: fmt.Sprintf("unknown unit %q", unit)}
	}
}

func atLeastOne(n int32) int32 {
	if n < 1 {
		return 1
	}
	return n
}
