// Package schedule turns user-entered day/month pairs into the UTC day-start
// instants used as task start dates, and computes the day rollover compares
// against.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateInput is returned for malformed or impossible DD/MM input.
var ErrInvalidDateInput = errors.New("invalid date input")

// Normalizer resolves calendar days relative to an injected clock.
type Normalizer struct {
	now func() time.Time
	loc *time.Location
}

// New returns a Normalizer. A nil now uses time.Now and a nil loc uses time.Local.
// loc decides which calendar day "today" is for the user.
func New(now func() time.Time, loc *time.Location) *Normalizer {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{now: now, loc: loc}
}

// Now returns the current instant in the user's zone.
func (n *Normalizer) Now() time.Time {
	return n.now().In(n.loc)
}

// NormalizeStart builds 00:00:00 UTC of day/month in the current year.
// Past-looking dates are not moved into next year.
func (n *Normalizer) NormalizeStart(day, month int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %02d/%02d", ErrInvalidDateInput, day, month)
	}
	year := n.Now().Year()
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 31/02 into March; reject instead.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("%w: %02d/%02d does not exist in %d", ErrInvalidDateInput, day, month, year)
	}
	return t, nil
}

// ParseDayMonth parses "DD/MM" and normalizes it with NormalizeStart.
func (n *Normalizer) ParseDayMonth(input string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(input), "/")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q is not DD/MM", ErrInvalidDateInput, input)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad day in %q", ErrInvalidDateInput, input)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad month in %q", ErrInvalidDateInput, input)
	}
	return n.NormalizeStart(day, month)
}

// Today returns the user's current calendar day as a UTC day-start.
func (n *Normalizer) Today() time.Time {
	y, m, d := n.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// YesterdayStart returns the user's previous calendar day as a UTC day-start,
// the same representation NormalizeStart produces.
func (n *Normalizer) YesterdayStart() time.Time {
	return n.Today().AddDate(0, 0, -1)
}

// DayStart truncates t to 00:00:00 UTC of its UTC calendar day.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
