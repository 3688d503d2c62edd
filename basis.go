package tradebook

import "sort"

// CashExit is the synthetic record produced by cash-basis explosion: one per
// priced exit, dated at its own exit date, carrying the P/L the FIFO matches
// attribute to that exit. It is ephemeral and never persisted.
type CashExit struct {
	TradeID  string
	Symbol   string
	Setup    string
	Date     Date
	Quantity Quantity
	Price    Money
	PL       Money
}

// ExplodeCashExits returns one CashExit per valid priced exit of the trade,
// each dated at its own exit date (the entry date when an exit carries no
// date). Open trades yield nothing.
//
// The exploded records are the unit of monthly aggregation under cash basis:
// summing their PL gives back the trade's FIFO realized P/L exactly, so a
// consumer must never re-add the parent trade's total on top of them.
func ExplodeCashExits(t Trade) []CashExit {
	if t.Status == Open {
		return nil
	}
	rt := Resolve(t)
	var out []CashExit
	for i, e := range t.Exits {
		if !e.Valid() {
			continue
		}
		day := e.Date
		if day.IsZero() {
			day = t.Date
		}
		out = append(out, CashExit{
			TradeID:  t.ID,
			Symbol:   t.Symbol,
			Setup:    t.Setup,
			Date:     day,
			Quantity: e.Quantity,
			Price:    e.Price,
			PL:       rt.ExitPL(i),
		})
	}
	return out
}

// AttributedPL returns the realized P/L the given basis attributes to the
// trade. The amount is the same FIFO-matched total under either basis (cash
// merely re-dates it across exits); open trades contribute zero.
func AttributedPL(t Trade, basis AccountingBasis) Money {
	if t.Status == Open {
		return Money{}
	}
	return Resolve(t).RealizedPL
}

// RelevantDate returns the ledger attribution date of the whole trade under
// the given basis: the entry date for accrual, the latest exit date for cash
// (where the position's realized P/L completes).
func RelevantDate(t Trade, basis AccountingBasis) Date {
	if basis == Cash {
		if last := latestExit(t.Exits); !last.IsZero() {
			return last
		}
	}
	return t.Date
}

// latestExit returns the latest date across valid dated exits, or the zero
// date when there is none.
func latestExit(exits []Exit) Date {
	var last Date
	for _, e := range exits {
		if !e.Valid() || e.Date.IsZero() {
			continue
		}
		if e.Date.After(last) {
			last = e.Date
		}
	}
	return last
}

// --- Ledger entries ---

// ledgerEntry is one unit of monthly P/L attribution: a whole trade on its
// entry date under accrual, or a single cash exit on its own date. The two
// accounting modes are structurally distinct types, never optional fields
// bolted onto a trade.
type ledgerEntry interface {
	date() Date
	pl() Money
	tradeID() string
}

// accrualEntry attributes the whole realized P/L to the entry date.
type accrualEntry struct {
	resolved ResolvedTrade
}

func (e accrualEntry) date() Date      { return e.resolved.Trade.Date }
func (e accrualEntry) pl() Money       { return e.resolved.RealizedPL }
func (e accrualEntry) tradeID() string { return e.resolved.Trade.ID }

// cashExitEntry attributes one exit's P/L to that exit's own date.
type cashExitEntry struct {
	exit CashExit
}

func (e cashExitEntry) date() Date      { return e.exit.Date }
func (e cashExitEntry) pl() Money       { return e.exit.PL }
func (e cashExitEntry) tradeID() string { return e.exit.TradeID }

// entries resolves trades into the basis-attributed ledger stream, sorted by
// attribution date (stable within a day). Open trades are skipped.
func entries(trades []Trade, basis AccountingBasis) []ledgerEntry {
	var out []ledgerEntry
	for _, t := range trades {
		if t.Status == Open {
			continue
		}
		if basis == Cash {
			for _, ce := range ExplodeCashExits(t) {
				out = append(out, cashExitEntry{exit: ce})
			}
			continue
		}
		out = append(out, accrualEntry{resolved: Resolve(t)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].date().Before(out[j].date())
	})
	return out
}

// --- Per-position rows ---

// PositionPL is the one-row-per-position view of realized P/L used by
// win-rate, streak and setup statistics. Under cash basis the exits of a
// trade are grouped back by trade ID (their P/L summed) and the row is dated
// at the latest exit; under accrual the row is dated at the entry.
type PositionPL struct {
	TradeID string
	Symbol  string
	Setup   string
	Date    Date
	PL      Money
}

// Positions reduces trades to chronologically ordered per-position P/L rows
// under the given basis. Open trades and trades without a valid exit are
// excluded: they have no realized P/L to classify as win or loss.
func Positions(trades []Trade, basis AccountingBasis) []PositionPL {
	var out []PositionPL
	for _, t := range trades {
		if t.Status == Open {
			continue
		}
		rt := Resolve(t)
		if rt.ExitedQty.IsZero() {
			continue
		}
		out = append(out, PositionPL{
			TradeID: t.ID,
			Symbol:  t.Symbol,
			Setup:   t.Setup,
			Date:    RelevantDate(t, basis),
			PL:      rt.RealizedPL,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
