package services

import (
	"fmt"
	"logistics-backoffice/internal/domain"
	"time"
)

// MonthLabelLayout formats a month as abbreviated name plus 4-digit year ("Jun 2025").
const MonthLabelLayout = "Jan 2006"

// MaxMonthsCount caps the chart window at one hundred years.
const MaxMonthsCount = 1200

// MonthsBefore returns the first day of the calendar month n months before t's
// month, in t's location. Negative n steps forward.
func MonthsBefore(t time.Time, n int) time.Time {
	// Zero-based month index so modulo arithmetic wraps across years.
	idx := t.Year()*12 + int(t.Month()) - 1 - n
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, t.Location())
}

// MonthWindow returns monthsCount month starts, oldest first, ending with the
// month containing now (evaluated in UTC).
func MonthWindow(now time.Time, monthsCount int) ([]time.Time, error) {
	if monthsCount < 1 {
		return nil, fmt.Errorf("month window: months count must be positive, got %d: %w", monthsCount, domain.ErrInvalidArgument)
	}
	if monthsCount > MaxMonthsCount {
		return nil, fmt.Errorf("month window: months count must be at most %d, got %d: %w", MaxMonthsCount, monthsCount, domain.ErrInvalidArgument)
	}

	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := make([]time.Time, 0, monthsCount)
	for i := monthsCount - 1; i >= 0; i-- {
		months = append(months, MonthsBefore(current, i))
	}
	return months, nil
}

type monthKey struct {
	year  int
	month time.Month
}

func keyOf(t time.Time) monthKey {
	t = t.UTC()
	return monthKey{year: t.Year(), month: t.Month()}
}
