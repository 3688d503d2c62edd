package tradebook

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"sort"
	"strconv"
	"strings"
)

// Journal holds every record of one trading book.
//
// In a Journal records are always in chronological order.
type Journal struct {
	records []Record
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{records: make([]Record, 0)}
}

// Len returns the number of records in the journal.
func (j *Journal) Len() int { return len(j.records) }

// Validate checks a record for correctness and applies quick fixes where
// applicable (e.g. defaulting a zero date to today, assigning a trade ID).
// It returns the validated (and potentially modified) record or an error
// detailing any validation failure.
func (j *Journal) Validate(r Record) (Record, error) {
	fixed, err := r.Validate(j)
	if err != nil {
		return fixed, fmt.Errorf("invalid %s record on %v: %w", r.What(), r.When(), err)
	}
	return fixed, nil
}

// Append appends records to this journal and maintains the chronological
// order of records.
func (j *Journal) Append(recs ...Record) {
	j.records = append(j.records, recs...)
	j.stableSort()
}

// Fmt returns a canonical copy of the journal: every record validated with
// its quick fixes applied (trade IDs assigned, statuses recomputed), records
// in chronological order. When any record fails validation the original
// journal is returned unchanged along with the joined errors.
func (j *Journal) Fmt() (*Journal, error) {
	formatted := NewJournal()
	var errs []error
	for _, r := range j.records {
		fixed, err := formatted.Validate(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		formatted.records = append(formatted.records, fixed)
	}
	if len(errs) > 0 {
		return j, errors.Join(errs...)
	}
	formatted.stableSort()
	return formatted, nil
}

// stableSort sorts the journal by record date. The sort is stable, meaning
// records on the same day maintain their original relative order.
func (j *Journal) stableSort() {
	sort.SliceStable(j.records, func(a, b int) bool {
		return j.records[a].When().Before(j.records[b].When())
	})
}

// Records returns an iterator that yields each record in chronological
// order. When filters are given, a record is yielded if any filter accepts
// it.
func (j *Journal) Records(filters ...func(Record) bool) iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range j.records {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(r) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, r) {
				return
			}
		}
	}
}

// ByType returns a predicate that filters records by type.
func ByType(rt RecordType) func(Record) bool {
	return func(r Record) bool { return r.What() == rt }
}

// BySymbol returns a predicate that filters trade records by symbol.
func BySymbol(symbol string) func(Record) bool {
	return func(r Record) bool {
		t, ok := r.(Trade)
		return ok && t.Symbol == symbol
	}
}

// Trades returns all trade records in chronological order.
func (j *Journal) Trades() []Trade {
	var trades []Trade
	for _, r := range j.records {
		if t, ok := r.(Trade); ok {
			trades = append(trades, t)
		}
	}
	return trades
}

// Trade returns the trade holding the given ID.
func (j *Journal) Trade(id string) (Trade, bool) {
	for _, r := range j.records {
		if t, ok := r.(Trade); ok && t.ID == id {
			return t, true
		}
	}
	return Trade{}, false
}

// UpdateTrade replaces the stored trade holding the same ID, typically after
// recording an exit on it.
func (j *Journal) UpdateTrade(t Trade) error {
	if t.ID == "" {
		return fmt.Errorf("cannot update a trade without an id")
	}
	for i, r := range j.records {
		if old, ok := r.(Trade); ok && old.ID == t.ID {
			j.records[i] = t
			j.stableSort()
			return nil
		}
	}
	return fmt.Errorf("no trade %q in the journal", t.ID)
}

// nextTradeID returns the first free identifier in the T1, T2, ... sequence.
func (j *Journal) nextTradeID() string {
	max := 0
	for _, r := range j.records {
		t, ok := r.(Trade)
		if !ok || !strings.HasPrefix(t.ID, "T") {
			continue
		}
		if n, err := strconv.Atoi(t.ID[1:]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("T%d", max+1)
}

// CapitalChanges returns the engine-side view of all deposits and
// withdrawals in chronological order.
func (j *Journal) CapitalChanges() []CapitalChange {
	var changes []CapitalChange
	for _, r := range j.records {
		switch v := r.(type) {
		case Deposit:
			changes = append(changes, v.Change())
		case Withdraw:
			changes = append(changes, v.Change())
		}
	}
	return changes
}

// YearlyCapitals returns all yearly starting capital declarations in
// chronological order. When a year was declared more than once the latest
// declaration wins downstream.
func (j *Journal) YearlyCapitals() []YearlyCapital {
	var years []YearlyCapital
	for _, r := range j.records {
		if y, ok := r.(YearlyCapital); ok {
			years = append(years, y)
		}
	}
	return years
}

// Overrides returns all monthly starting capital overrides in chronological
// order.
func (j *Journal) Overrides() []MonthlyOverride {
	var overrides []MonthlyOverride
	for _, r := range j.records {
		if o, ok := r.(MonthlyOverride); ok {
			overrides = append(overrides, o)
		}
	}
	return overrides
}

// SetYearlyCapital records a yearly starting capital declaration. A year is
// declared at most once: if it already was, the old record is replaced.
func (j *Journal) SetYearlyCapital(y YearlyCapital) {
	for i, r := range j.records {
		if old, ok := r.(YearlyCapital); ok && old.Year == y.Year {
			if !old.Amount.Equal(y.Amount) {
				log.Printf("%v: update year %d starting capital from %s to %s", y.Date, y.Year, old.Amount, y.Amount)
			}
			j.records[i] = y
			j.stableSort()
			return
		}
	}
	j.Append(y)
}

// SetMonthlyOverride records a monthly starting capital override. A month is
// overridden at most once: if it already was, the old record is replaced.
func (j *Journal) SetMonthlyOverride(o MonthlyOverride) {
	for i, r := range j.records {
		if old, ok := r.(MonthlyOverride); ok && old.Month == o.Month {
			if !old.Amount.Equal(o.Amount) {
				log.Printf("%v: update %v starting capital from %s to %s", o.Date, o.Month, old.Amount, o.Amount)
			}
			j.records[i] = o
			j.stableSort()
			return
		}
	}
	j.Append(o)
}

// EarliestRecordDate returns the date of the earliest record in the journal,
// or the zero date when the journal is empty.
func (j *Journal) EarliestRecordDate() Date {
	if len(j.records) == 0 {
		return Date{}
	}
	return j.records[0].When()
}

// LatestRecordDate returns the date of the latest record in the journal, or
// the zero date when the journal is empty.
func (j *Journal) LatestRecordDate() Date {
	if len(j.records) == 0 {
		return Date{}
	}
	return j.records[len(j.records)-1].When()
}

// TruePortfolio builds the capital engine over the journal's current
// records, under the given accounting basis. Every call builds a fresh
// engine with its own memo, so the result reflects the records as of now.
func (j *Journal) TruePortfolio(basis AccountingBasis) *TruePortfolio {
	return NewTruePortfolio(j.Trades(), j.CapitalChanges(), j.YearlyCapitals(), j.Overrides(), basis)
}
