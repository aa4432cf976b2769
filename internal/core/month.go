package core

import (
	"fmt"
	"strings"
	"time"
)

const monthKeyLayout = "2006-01"

// MonthKey returns the "YYYY-MM" key of the calendar month containing t,
// evaluated in t's location.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// ParseMonthKey parses a "YYYY-MM" key into the first instant of that
// month in UTC.
func ParseMonthKey(key string) (time.Time, error) {
	key = strings.TrimSpace(key)
	if len(key) != len(monthKeyLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonthKey, key)
	}
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonthKey, key)
	}
	return t, nil
}

// ValidateMonthKey returns ErrInvalidMonthKey unless key is "YYYY-MM".
func ValidateMonthKey(key string) error {
	_, err := ParseMonthKey(key)
	return err
}

// MonthName renders a key as "January 2025". Invalid keys are returned as-is.
func MonthName(key string) string {
	t, err := ParseMonthKey(key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}
