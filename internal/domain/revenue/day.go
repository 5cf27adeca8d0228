package revenue

import (
	"time"

	"github.com/rentora/backend/internal/domain/shared"
)

// DayKey is a canonical calendar-day key in "2006-01-02" form.
// Lexical ordering of keys matches chronological ordering.
type DayKey string

const dayKeyLayout = "2006-01-02"

// Before reports whether k is an earlier calendar day than other
func (k DayKey) Before(other DayKey) bool {
	return k < other
}

// After reports whether k is a later calendar day than other
func (k DayKey) After(other DayKey) bool {
	return k > other
}

// String returns the ISO date string
func (k DayKey) String() string {
	return string(k)
}

// DayPolicy decides which calendar day a timestamp belongs to.
// Every same-day comparison in the engine goes through a single policy so
// the canonicalizing timezone is set in exactly one place.
type DayPolicy struct {
	loc *time.Location
}

// NewDayPolicy creates a day policy canonicalizing to the given location
func NewDayPolicy(loc *time.Location) DayPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return DayPolicy{loc: loc}
}

// UTCDays returns the default policy: UTC calendar days
func UTCDays() DayPolicy {
	return DayPolicy{loc: time.UTC}
}

// Location returns the canonicalizing timezone
func (p DayPolicy) Location() *time.Location {
	if p.loc == nil {
		return time.UTC
	}
	return p.loc
}

// Key returns the calendar-day key for a timestamp
func (p DayPolicy) Key(t time.Time) DayKey {
	return DayKey(t.In(p.Location()).Format(dayKeyLayout))
}

// SameDay reports whether two timestamps fall on the same calendar day
func (p DayPolicy) SameDay(a, b time.Time) bool {
	return p.Key(a) == p.Key(b)
}

// StartOfDay returns midnight of the timestamp's calendar day
func (p DayPolicy) StartOfDay(t time.Time) time.Time {
	loc := p.Location()
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay returns the last instant of the timestamp's calendar day
func (p DayPolicy) EndOfDay(t time.Time) time.Time {
	return p.StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DateRange is an inclusive [Start, End] time window
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a date range, rejecting inverted windows
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, shared.ErrInvalidDateRange
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t falls within the range (inclusive)
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
