package model

import (
	"fmt"
	"time"
)

const monthFormat = "2006-01"

// MonthKey is a "YYYY-MM" bucket used to group transactions by month.
type MonthKey string

// MonthOf returns the month containing t.
func MonthOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthFormat))
}

// ParseMonthKey validates the YYYY-MM format.
func ParseMonthKey(s string) (MonthKey, error) {
	if _, err := time.Parse(monthFormat, s); err != nil {
		return "", fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return MonthKey(s), nil
}

// Start returns midnight UTC on the first day of the month.
func (m MonthKey) Start() (time.Time, error) {
	t, err := time.Parse(monthFormat, string(m))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", string(m), err)
	}
	return t, nil
}

// Days returns the number of days in the month (Gregorian calendar).
func (m MonthKey) Days() (int, error) {
	start, err := m.Start()
	if err != nil {
		return 0, err
	}
	// Day 0 of the following month is the last day of this one.
	return time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

func (m MonthKey) String() string { return string(m) }
