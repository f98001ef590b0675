package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// TargetMap maps an item name to a planned quantity.
type TargetMap map[string]int

// Get returns the planned quantity for name, or 0 when absent.
func (m TargetMap) Get(name string) int {
	return m[name]
}

// Total sums every quantity in the map.
func (m TargetMap) Total() int {
	total := 0
	for _, q := range m {
		total += q
	}
	return total
}

// Clone returns a shallow copy of the map.
func (m TargetMap) Clone() TargetMap {
	out := make(TargetMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DailyTargets holds target maps keyed by DateKey.
type DailyTargets map[string]TargetMap

// MonthlyTargets holds target maps keyed by MonthKey.
type MonthlyTargets map[string]TargetMap

// For returns the day's map, or nil when none was saved.
func (d DailyTargets) For(date time.Time) TargetMap {
	return d[DateKey(date)]
}

// For returns the month's map, or nil when none was saved.
func (m MonthlyTargets) For(month time.Time) TargetMap {
	return m[MonthKey(month)]
}

// DateKey formats a calendar date as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey formats the calendar month of t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM month; the result is the first day of the month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", s, err)
	}
	return t, nil
}

// ValidateTargets rejects negative planned quantities.
func ValidateTargets(m TargetMap) error {
	for name, q := range m {
		if q < 0 {
			return &ValidationError{Code: ErrCodeInvalidQuantity, Field: name, Message: fmt.Sprintf("target must be non-negative, got %d", q)}
		}
	}
	return nil
}
