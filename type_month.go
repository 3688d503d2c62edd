package tradebook

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// Month identifies a calendar month of a specific year. It is the key of the
// true-portfolio recurrence and of monthly starting-capital overrides.
//
// The zero value is not a valid month; use [NewMonth] or [ParseMonth].
type Month struct {
	year int
	mon  time.Month
}

// NewMonth returns a normalized Month (out-of-range months roll over like
// time.Date).
func NewMonth(year int, m time.Month) Month {
	d := NewDate(year, m, 1)
	return Month{year: d.Year(), mon: d.Month()}
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month { return Month{year: d.Year(), mon: d.Month()} }

// Year returns the month's year.
func (m Month) Year() int { return m.year }

// Name returns the canonical 3-letter month name ("Jan").
func (m Month) Name() string { return m.Start().Format("Jan") }

// String formats the month like "Jan 2024".
func (m Month) String() string { return m.Start().Format("Jan 2006") }

// Start returns the first day of the month.
func (m Month) Start() Date { return NewDate(m.year, m.mon, 1) }

// End returns the last day of the month.
func (m Month) End() Date { return NewDate(m.year, m.mon+1, 0) }

// Range returns the date range covering the whole month.
func (m Month) Range() Range { return Range{From: m.Start(), To: m.End()} }

// Contains reports whether d falls within the month.
func (m Month) Contains(d Date) bool { return d.Year() == m.year && d.Month() == m.mon }

// Next returns the following calendar month.
func (m Month) Next() Month { return NewMonth(m.year, m.mon+1) }

// Prev returns the preceding calendar month.
func (m Month) Prev() Month { return NewMonth(m.year, m.mon-1) }

// Before reports whether m is strictly earlier than x.
func (m Month) Before(x Month) bool {
	return m.year < x.year || (m.year == x.year && m.mon < x.mon)
}

// After reports whether m is strictly later than x.
func (m Month) After(x Month) bool { return x.Before(m) }

// IsZero returns true if the month is the zero value.
func (m Month) IsZero() bool { return m.year == 0 && m.mon == 0 }

// Until returns an iterator that yields every month from m to x, inclusive.
func (m Month) Until(x Month) iter.Seq[Month] {
	return func(yield func(Month) bool) {
		for cur := m; !cur.After(x); cur = cur.Next() {
			if !yield(cur) {
				return
			}
		}
	}
}

// monthNames maps lowercased long and short month names to their time.Month.
// Lookups normalize to this table so that overrides keyed by short names
// still match callers passing long names.
var monthNames = map[string]time.Month{}

func init() {
	for m := time.January; m <= time.December; m++ {
		long := strings.ToLower(m.String())
		monthNames[long] = m
		monthNames[long[:3]] = m
	}
}

// ParseMonthName maps a long or short month name (case-insensitive), or a
// numeric month "1".."12", to its time.Month. A name that fails to normalize
// is a caller bug and is reported as an explicit error, never defaulted.
func ParseMonthName(s string) (time.Month, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if m, ok := monthNames[name]; ok {
		return m, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), nil
		}
		return 0, fmt.Errorf("invalid month number %d: want 1..12", n)
	}
	return 0, fmt.Errorf("invalid month name %q", s)
}

// ParseMonth parses a Month from strings like "Jan 2024", "January 2024" or
// "2024-01".
func ParseMonth(s string) (Month, error) {
	str := strings.TrimSpace(s)
	if fields := strings.Fields(str); len(fields) == 2 {
		mon, err := ParseMonthName(fields[0])
		if err != nil {
			return Month{}, err
		}
		year, err := strconv.Atoi(fields[1])
		if err != nil {
			return Month{}, fmt.Errorf("invalid year %q in month %q: %w", fields[1], s, err)
		}
		return NewMonth(year, mon), nil
	}
	on, err := time.Parse("2006-01", str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: want \"Jan 2006\" or \"2006-01\"", s)
	}
	return NewMonth(on.Year(), on.Month()), nil
}
