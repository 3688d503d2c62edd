package tradebook

import (
	"sort"
	"time"
)

// SymbolPerf aggregates closed-position performance for one symbol.
type SymbolPerf struct {
	Symbol    string
	Positions int
	Wins      int
	PL        Money
	WinRate   Percent
}

// WeekdayPerf aggregates position performance by the weekday the P/L lands
// on under the chosen basis.
type WeekdayPerf struct {
	Weekday   time.Weekday
	Positions int
	Wins      int
	PL        Money
	WinRate   Percent
}

// SetupPerf aggregates position performance by setup tag.
type SetupPerf struct {
	Setup     string
	Positions int
	Wins      int
	PL        Money
	WinRate   Percent
}

// UnlabeledSetup buckets positions whose trade carries no setup tag.
const UnlabeledSetup = "unlabeled"

type perfAcc struct {
	positions int
	wins      int
	pl        Money
}

func (a *perfAcc) add(pl Money) {
	a.positions++
	if pl.IsPositive() {
		a.wins++
	}
	a.pl = a.pl.Add(pl)
}

func (a *perfAcc) winRate() Percent {
	if a.positions == 0 {
		return 0
	}
	return Percent(float64(a.wins) / float64(a.positions) * 100)
}

// TopPerformers ranks symbols by their summed basis-aware P/L. Gainers are
// the n best net-positive symbols, losers the n worst net-negative ones; a
// symbol netting exactly zero lands in neither list. n <= 0 keeps all.
func TopPerformers(trades []Trade, basis AccountingBasis, n int) (gainers, losers []SymbolPerf) {
	accs := make(map[string]*perfAcc)
	for _, p := range Positions(trades, basis) {
		acc := accs[p.Symbol]
		if acc == nil {
			acc = &perfAcc{}
			accs[p.Symbol] = acc
		}
		acc.add(p.PL)
	}
	for sym, acc := range accs {
		perf := SymbolPerf{Symbol: sym, Positions: acc.positions, Wins: acc.wins, PL: acc.pl, WinRate: acc.winRate()}
		switch {
		case acc.pl.IsPositive():
			gainers = append(gainers, perf)
		case acc.pl.IsNegative():
			losers = append(losers, perf)
		}
	}
	sort.Slice(gainers, func(i, j int) bool {
		if gainers[i].PL.Equal(gainers[j].PL) {
			return gainers[i].Symbol < gainers[j].Symbol
		}
		return gainers[j].PL.LessThan(gainers[i].PL)
	})
	sort.Slice(losers, func(i, j int) bool {
		if losers[i].PL.Equal(losers[j].PL) {
			return losers[i].Symbol < losers[j].Symbol
		}
		return losers[i].PL.LessThan(losers[j].PL)
	})
	if n > 0 {
		if len(gainers) > n {
			gainers = gainers[:n]
		}
		if len(losers) > n {
			losers = losers[:n]
		}
	}
	return gainers, losers
}

// WeekdayDistribution groups basis-aware position P/L by the weekday it is
// attributed to. Rows come back Monday first; weekdays without a single
// position are omitted.
func WeekdayDistribution(trades []Trade, basis AccountingBasis) []WeekdayPerf {
	var accs [7]perfAcc
	for _, p := range Positions(trades, basis) {
		accs[p.Date.Weekday()].add(p.PL)
	}
	var dist []WeekdayPerf
	for i := range accs {
		wd := time.Weekday((i + 1) % 7)
		acc := accs[wd]
		if acc.positions == 0 {
			continue
		}
		dist = append(dist, WeekdayPerf{
			Weekday:   wd,
			Positions: acc.positions,
			Wins:      acc.wins,
			PL:        acc.pl,
			WinRate:   acc.winRate(),
		})
	}
	return dist
}

// SetupDistribution groups basis-aware position P/L by setup tag, most
// profitable setup first.
func SetupDistribution(trades []Trade, basis AccountingBasis) []SetupPerf {
	accs := make(map[string]*perfAcc)
	for _, p := range Positions(trades, basis) {
		setup := p.Setup
		if setup == "" {
			setup = UnlabeledSetup
		}
		acc := accs[setup]
		if acc == nil {
			acc = &perfAcc{}
			accs[setup] = acc
		}
		acc.add(p.PL)
	}
	var dist []SetupPerf
	for setup, acc := range accs {
		dist = append(dist, SetupPerf{
			Setup:     setup,
			Positions: acc.positions,
			Wins:      acc.wins,
			PL:        acc.pl,
			WinRate:   acc.winRate(),
		})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].PL.Equal(dist[j].PL) {
			return dist[i].Setup < dist[j].Setup
		}
		return dist[j].PL.LessThan(dist[i].PL)
	})
	return dist
}
