package tradebook

import (
	"testing"
	"time"
)

func TestEquityCurve(t *testing.T) {
	yearly := []YearlyCapital{NewYearlyCapital(NewDate(2024, time.January, 1), 2024, INR(100_000))}
	changes := []CapitalChange{NewDeposit(NewDate(2024, time.January, 20), "", INR(10_000)).Change()}
	trades := []Trade{plTrade(t, "T1", NewDate(2024, time.January, 10), 5000)}

	tp := NewTruePortfolio(trades, changes, yearly, nil, Accrual)
	curve := tp.EquityCurve(NewDate(2024, time.February, 29))
	if len(curve) != 31+29 {
		t.Fatalf("got %d points, want one per day of Jan and Feb", len(curve))
	}

	at := func(day Date) EquityPoint {
		t.Helper()
		for _, p := range curve {
			if p.Date == day {
				return p
			}
		}
		t.Fatalf("no point for %s", day)
		return EquityPoint{}
	}

	// Jan 1 opens on the anchor; the trade lands on the 10th; the deposit
	// on the 20th.
	if got, want := at(NewDate(2024, time.January, 1)).Equity, INR(100_000); !got.Equal(want) {
		t.Errorf("Jan 1 equity = %s, want %s", got, want)
	}
	if got, want := at(NewDate(2024, time.January, 9)).Equity, INR(100_000); !got.Equal(want) {
		t.Errorf("Jan 9 equity = %s, want %s", got, want)
	}
	p := at(NewDate(2024, time.January, 10))
	if want := INR(5000); !p.PL.Equal(want) {
		t.Errorf("Jan 10 PL = %s, want %s", p.PL, want)
	}
	if want := INR(105_000); !p.Equity.Equal(want) {
		t.Errorf("Jan 10 equity = %s, want %s", p.Equity, want)
	}
	p = at(NewDate(2024, time.January, 20))
	if want := INR(10_000); !p.Flow.Equal(want) {
		t.Errorf("Jan 20 flow = %s, want %s", p.Flow, want)
	}
	if want := INR(115_000); !p.Equity.Equal(want) {
		t.Errorf("Jan 20 equity = %s, want %s", p.Equity, want)
	}

	// Month ends tie out with the monthly series exactly.
	jan := tp.MonthlyPortfolio(NewMonth(2024, time.January))
	if got := at(NewDate(2024, time.January, 31)).Equity; !got.Equal(jan.Final) {
		t.Errorf("Jan 31 equity = %s, want monthly Final %s", got, jan.Final)
	}
	feb := tp.MonthlyPortfolio(NewMonth(2024, time.February))
	if got := at(NewDate(2024, time.February, 1)).Equity; !got.Equal(feb.Starting) {
		t.Errorf("Feb 1 equity = %s, want monthly Starting %s", got, feb.Starting)
	}
}

func TestEquityCurve_RebasesOnOverride(t *testing.T) {
	yearly := []YearlyCapital{NewYearlyCapital(NewDate(2024, time.January, 1), 2024, INR(100_000))}
	overrides := []MonthlyOverride{
		NewMonthlyOverride(NewDate(2024, time.February, 1), NewMonth(2024, time.February), INR(80_000)),
	}
	tp := NewTruePortfolio(nil, nil, yearly, overrides, Accrual)

	curve := tp.EquityCurve(NewDate(2024, time.February, 5))
	last := curve[len(curve)-1]
	// The override jumps the daily curve just like the monthly series.
	if want := INR(80_000); !last.Equity.Equal(want) {
		t.Errorf("Feb 5 equity = %s, want the override %s", last.Equity, want)
	}
}

func TestEquityCurve_Empty(t *testing.T) {
	tp := NewTruePortfolio(nil, nil, nil, nil, Accrual)
	if curve := tp.EquityCurve(NewDate(2024, time.June, 1)); curve != nil {
		t.Errorf("got %d points, want nil for an empty journal", len(curve))
	}

	// A through-date before the floor yields nothing either.
	yearly := []YearlyCapital{NewYearlyCapital(NewDate(2024, time.January, 1), 2024, INR(100_000))}
	tp = NewTruePortfolio(nil, nil, yearly, nil, Accrual)
	if curve := tp.EquityCurve(NewDate(2023, time.June, 1)); curve != nil {
		t.Errorf("got %d points, want nil before the floor", len(curve))
	}
}

func TestSamplePeriods(t *testing.T) {
	yearly := []YearlyCapital{NewYearlyCapital(NewDate(2024, time.January, 1), 2024, INR(100_000))}
	changes := []CapitalChange{NewDeposit(NewDate(2024, time.January, 20), "", INR(10_000)).Change()}
	trades := []Trade{plTrade(t, "T1", NewDate(2024, time.January, 10), 5000)}

	tp := NewTruePortfolio(trades, changes, yearly, nil, Accrual)
	daily := tp.EquityCurve(NewDate(2024, time.February, 29))

	monthly := SamplePeriods(daily, Monthly)
	if len(monthly) != 2 {
		t.Fatalf("got %d monthly points, want 2", len(monthly))
	}
	jan := monthly[0]
	if want := NewDate(2024, time.January, 31); jan.Date != want {
		t.Errorf("Jan closes on %s, want %s", jan.Date, want)
	}
	if want := INR(10_000); !jan.Flow.Equal(want) {
		t.Errorf("Jan flow = %s, want %s", jan.Flow, want)
	}
	if want := INR(5000); !jan.PL.Equal(want) {
		t.Errorf("Jan PL = %s, want %s", jan.PL, want)
	}
	if want := tp.MonthlyPortfolio(NewMonth(2024, time.January)).Final; !jan.Equity.Equal(want) {
		t.Errorf("Jan equity = %s, want monthly Final %s", jan.Equity, want)
	}

	// Daily is the identity, and sampling never invents points.
	if got := SamplePeriods(daily, Daily); len(got) != len(daily) {
		t.Errorf("Daily sampling resized the curve: %d -> %d", len(daily), len(got))
	}
	if got := SamplePeriods(nil, Monthly); got != nil {
		t.Errorf("sampling an empty curve = %v, want nil", got)
	}
}
