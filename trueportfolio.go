package tradebook

import "time"

// DefaultPortfolioSize is the capital assumed while the journal holds no
// data at all: every month then resolves to this size, so that impact
// percentages stay defined before the first record. Every caller expecting a
// portfolio size ahead of real data must use this same constant.
var DefaultPortfolioSize = M(100_000, DefaultCurrency)

// MonthPortfolio is the reconstructed capital balance of one month.
//
// The conservation invariant Final = Starting + ChangesNet + PL holds
// exactly, and Starting equals the previous month's Final unless an override
// or the floor-month anchor applies. Derived and memoized per computation,
// never persisted.
type MonthPortfolio struct {
	Month      Month
	Starting   Money // capital on the first day, before changes and P/L
	ChangesNet Money // deposits − withdrawals dated in the month
	PL         Money // basis-attributed realized P/L dated in the month
	Final      Money // capital carried into the next month
}

// MarshalJSON implements the json.Marshaler interface for MonthPortfolio.
func (p MonthPortfolio) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("month", p.Month.String())
	w.Append("starting", p.Starting)
	w.Append("changes", p.ChangesNet)
	w.Append("pl", p.PL)
	w.Append("final", p.Final)
	return w.MarshalJSON()
}

// TruePortfolio reconstructs the capital balance month by month: each
// month's starting capital is the previous month's final capital, except
// where a monthly override pins it or the yearly anchor seeds the floor
// month.
//
// A TruePortfolio is built per computation request and owns its memo table:
// inputs are read once at construction and treated read-only, so concurrent
// requests over shared slices never observe each other. Discard the value
// when the underlying records change.
type TruePortfolio struct {
	basis    AccountingBasis
	floor    Month // first month of the recurrence
	last     Month // latest month carrying any data
	empty    bool  // no records at all
	yearly   map[int]Money
	override map[Month]Money
	changes  map[Month]Money // net capital changes per month
	pl       map[Month]Money // attributed P/L per month
	memo     map[Month]MonthPortfolio

	flowByDay map[Date]Money // external flows per day, for the equity curve
	plByDay   map[Date]Money // attributed P/L per day
	positions []PositionPL   // per-position rows for win/loss statistics
}

// NewTruePortfolio builds a fresh engine over the given inputs. The floor of
// the recurrence is the month of the earliest date across trade entries
// (plus exit dates under cash basis), capital changes, and the first of
// January of each anchored year; when only overrides exist, the earliest
// overridden month.
func NewTruePortfolio(trades []Trade, changes []CapitalChange, yearly []YearlyCapital, overrides []MonthlyOverride, basis AccountingBasis) *TruePortfolio {
	tp := &TruePortfolio{
		basis:     basis,
		yearly:    map[int]Money{},
		override:  map[Month]Money{},
		changes:   map[Month]Money{},
		pl:        map[Month]Money{},
		memo:      map[Month]MonthPortfolio{},
		flowByDay: map[Date]Money{},
		plByDay:   map[Date]Money{},
		positions: Positions(trades, basis),
	}

	var min, max Date
	note := func(d Date) {
		if d.IsZero() {
			return
		}
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}

	for _, t := range trades {
		note(t.Date)
		if basis == Cash {
			for _, e := range t.Exits {
				if e.Valid() && !e.Date.IsZero() {
					note(e.Date)
				}
			}
		}
	}
	for _, c := range changes {
		note(c.Date)
		m := MonthOf(c.Date)
		tp.changes[m] = tp.changes[m].Add(c.Signed())
		tp.flowByDay[c.Date] = tp.flowByDay[c.Date].Add(c.Signed())
	}
	for _, y := range yearly {
		tp.yearly[y.Year] = y.Amount
		note(NewDate(y.Year, time.January, 1))
	}
	for _, o := range overrides {
		tp.override[o.Month] = o.Amount
	}
	for _, e := range entries(trades, basis) {
		m := MonthOf(e.date())
		tp.pl[m] = tp.pl[m].Add(e.pl())
		tp.plByDay[e.date()] = tp.plByDay[e.date()].Add(e.pl())
	}

	switch {
	case !min.IsZero():
		tp.floor = MonthOf(min)
	case len(overrides) > 0:
		earliest := overrides[0].Month
		for _, o := range overrides[1:] {
			if o.Month.Before(earliest) {
				earliest = o.Month
			}
		}
		tp.floor = earliest
	default:
		tp.empty = true
		return tp
	}

	tp.last = tp.floor
	if !max.IsZero() && MonthOf(max).After(tp.last) {
		tp.last = MonthOf(max)
	}
	for m := range tp.override {
		if m.After(tp.last) {
			tp.last = m
		}
	}
	return tp
}

// Basis returns the accounting basis the engine attributes P/L with.
func (tp *TruePortfolio) Basis() AccountingBasis { return tp.basis }

// MonthlyPortfolio returns the reconstructed balance of one month, extending
// the walk from the floor as needed.
//
// A month below the floor returns a zero-valued record: that is the designed
// base case of the recurrence, not an error. When the journal holds no data
// at all, every month resolves to DefaultPortfolioSize.
func (tp *TruePortfolio) MonthlyPortfolio(m Month) MonthPortfolio {
	if tp.empty {
		return MonthPortfolio{Month: m, Starting: DefaultPortfolioSize, Final: DefaultPortfolioSize}
	}
	if m.Before(tp.floor) {
		return MonthPortfolio{Month: m}
	}
	if r, ok := tp.memo[m]; ok {
		return r
	}
	// Walk forward from the floor, densely: each month's final capital
	// seeds the next month's starting capital.
	var prev MonthPortfolio
	for cur := range tp.floor.Until(m) {
		if r, ok := tp.memo[cur]; ok {
			prev = r
			continue
		}
		r := tp.computeMonth(cur, prev)
		tp.memo[cur] = r
		prev = r
	}
	return tp.memo[m]
}

// computeMonth resolves one month given the already-resolved previous one.
func (tp *TruePortfolio) computeMonth(m Month, prev MonthPortfolio) MonthPortfolio {
	var starting Money
	if v, ok := tp.override[m]; ok {
		starting = v
	} else if m == tp.floor {
		starting = tp.yearly[m.Year()] // zero when no anchor was declared
	} else {
		starting = prev.Final
	}
	changes := tp.changes[m]
	pl := tp.pl[m]
	return MonthPortfolio{
		Month:      m,
		Starting:   starting,
		ChangesNet: changes,
		PL:         pl,
		Final:      starting.Add(changes).Add(pl),
	}
}

// AllMonthlyPortfolios returns the balance of every month from the floor
// through the later of the current month and the last recorded data,
// chronologically. An empty journal yields nil.
func (tp *TruePortfolio) AllMonthlyPortfolios() []MonthPortfolio {
	if tp.empty {
		return nil
	}
	through := MonthOf(Today())
	if tp.last.After(through) {
		through = tp.last
	}
	if through.Before(tp.floor) {
		through = tp.floor
	}
	var out []MonthPortfolio
	for m := range tp.floor.Until(through) {
		out = append(out, tp.MonthlyPortfolio(m))
	}
	return out
}

// Capital returns the portfolio size effective in the month of d: that
// month's starting capital, or DefaultPortfolioSize while the journal holds
// no data. Impact percentages are computed against this figure.
func (tp *TruePortfolio) Capital(d Date) Money {
	return tp.MonthlyPortfolio(MonthOf(d)).Starting
}

// Impact returns the trade's attributed P/L as a percentage of the capital
// in its relevant month (0 when that capital is zero).
func (tp *TruePortfolio) Impact(t Trade) Percent {
	pl := AttributedPL(t, tp.basis)
	return pl.PercentOf(tp.Capital(RelevantDate(t, tp.basis)))
}

// MonthlyPortfolio computes one month's balance from scratch: it normalizes
// the month name ("Jan", "January" or "1"), builds a fresh engine over the
// inputs and resolves that month. Callers holding a [TruePortfolio] should
// use its method instead of paying the rebuild on every call.
func MonthlyPortfolio(month string, year int, trades []Trade, changes []CapitalChange, yearly []YearlyCapital, overrides []MonthlyOverride, basis AccountingBasis) (MonthPortfolio, error) {
	mon, err := ParseMonthName(month)
	if err != nil {
		return MonthPortfolio{}, err
	}
	tp := NewTruePortfolio(trades, changes, yearly, overrides, basis)
	return tp.MonthlyPortfolio(NewMonth(year, mon)), nil
}

// AllMonthlyPortfolios computes the full monthly series with a fresh engine.
func AllMonthlyPortfolios(trades []Trade, changes []CapitalChange, yearly []YearlyCapital, overrides []MonthlyOverride, basis AccountingBasis) []MonthPortfolio {
	return NewTruePortfolio(trades, changes, yearly, overrides, basis).AllMonthlyPortfolios()
}
