package tradebook

import "fmt"

// ResolvedTrade carries every figure derived from a raw trade record. The
// journal stores only the raw record; all of these are recomputed on demand.
type ResolvedTrade struct {
	Trade       Trade
	AvgEntry    Money    // quantity-weighted mean over valid entry lots
	AvgExit     Money    // quantity-weighted mean over valid exit lots
	EnteredQty  Quantity // total valid entered quantity
	ExitedQty   Quantity // total valid exited quantity
	OpenQty     Quantity // entered − exited, never negative
	RealizedPL  Money    // FIFO-matched, signed by side
	StockMove   Percent  // average exit vs average entry, signed by side
	HoldingDays int      // entry to earliest exit; 0 with no exits
	Warnings    []ValidationWarning

	matches []match
}

func (rt *ResolvedTrade) warn(field, format string, args ...any) {
	rt.Warnings = append(rt.Warnings, ValidationWarning{
		TradeID: rt.Trade.ID,
		Field:   field,
		Reason:  fmt.Sprintf(format, args...),
	})
}

// avgPrice returns the quantity-weighted mean price over the valid lots,
// along with the total valid quantity.
func avgPrice(lots []Lot) (avg Money, qty Quantity) {
	var cost Money
	for _, l := range lots {
		if !l.Valid() {
			continue
		}
		cost = cost.Add(l.Cost())
		qty = qty.Add(l.Quantity)
	}
	if qty.IsZero() {
		return Money{}, qty
	}
	return cost.Div(qty), qty
}

// Resolve derives averages, open and exited quantities, FIFO-matched
// realized P/L, stock move and holding days from a raw trade record.
//
// Malformed lots (a quantity without a positive price) are excluded and
// reported as warnings; the computation proceeds on the remaining lots.
// Nothing here ever fails hard: a trade that cannot be persisted can still
// be resolved for display.
func Resolve(t Trade) ResolvedTrade {
	rt := ResolvedTrade{Trade: t}

	for i, l := range t.Entries {
		if !l.Valid() && l.Quantity.IsPositive() {
			rt.warn("entries", "entry lot %d has quantity %s without a positive price, lot excluded", i+1, l.Quantity)
		}
	}
	exitLots := make([]Lot, 0, len(t.Exits))
	for i, e := range t.Exits {
		if !e.Valid() && e.Quantity.IsPositive() {
			rt.warn("exits", "exit lot %d has quantity %s without a positive price, lot excluded", i+1, e.Quantity)
		}
		if e.Valid() && e.Date.IsZero() {
			rt.warn("exits", "exit lot %d has no date, attributed to the entry date", i+1)
		}
		exitLots = append(exitLots, e.Lot)
	}

	rt.AvgEntry, rt.EnteredQty = avgPrice(t.Entries)
	rt.AvgExit, rt.ExitedQty = avgPrice(exitLots)

	rt.OpenQty = rt.EnteredQty.Sub(rt.ExitedQty)
	if rt.OpenQty.IsNegative() {
		rt.warn("exits", "exited %s exceeds entered %s, the excess is unmatched", rt.ExitedQty, rt.EnteredQty)
		rt.OpenQty = Q(0)
	}

	rt.matches = fifoMatch(t.Entries, t.Exits)
	for _, m := range rt.matches {
		rt.RealizedPL = rt.RealizedPL.Add(m.pl(t.Side))
	}

	if rt.AvgEntry.IsPositive() && rt.ExitedQty.IsPositive() {
		move := rt.AvgExit.Sub(rt.AvgEntry).PercentOf(rt.AvgEntry)
		if t.Side == Sell {
			move = -move
		}
		rt.StockMove = move
	}

	if first := earliestExit(t.Exits); !first.IsZero() {
		rt.HoldingDays = first.Sub(t.Date)
	}

	switch {
	case t.Status == Open && rt.ExitedQty.IsPositive():
		rt.warn("status", "marked open but %s already exited", rt.ExitedQty)
	case t.Status == Closed && rt.OpenQty.IsPositive():
		rt.warn("status", "marked closed but %s is still open", rt.OpenQty)
	case t.Status == Partial && rt.ExitedQty.IsZero():
		rt.warn("status", "marked partial but nothing exited")
	case t.Status == Partial && rt.OpenQty.IsZero() && rt.EnteredQty.IsPositive():
		rt.warn("status", "marked partial but fully exited")
	}

	return rt
}

// earliestExit returns the earliest date across valid dated exits, or the
// zero date when there is none.
func earliestExit(exits []Exit) Date {
	var first Date
	for _, e := range exits {
		if !e.Valid() || e.Date.IsZero() {
			continue
		}
		if first.IsZero() || e.Date.Before(first) {
			first = e.Date
		}
	}
	return first
}

// ExitPL returns the realized P/L attributable to exit lot i, summed over
// the FIFO matches that consumed it. Summing ExitPL over all exits gives
// back RealizedPL exactly.
func (rt ResolvedTrade) ExitPL(i int) Money {
	var pl Money
	for _, m := range rt.matches {
		if m.ExitIndex == i {
			pl = pl.Add(m.pl(rt.Trade.Side))
		}
	}
	return pl
}
