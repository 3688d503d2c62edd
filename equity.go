package tradebook

// EquityPoint is one day of the bootstrapped equity curve.
type EquityPoint struct {
	Date   Date
	Equity Money // capital at end of day
	Flow   Money // external flow (deposits − withdrawals) landing on the day
	PL     Money // attributed P/L landing on the day
}

// EquityCurve bootstraps a daily equity curve from the monthly inputs: it
// walks every day from the recurrence floor through 'through', carrying
// capital forward and applying capital changes and basis-attributed P/L on
// the days they land.
//
// On the first day of each month the balance re-bases on that month's
// starting capital, so overrides and the floor anchor produce the same jumps
// in the daily curve as in the monthly series. Returns nil while the journal
// holds no data.
func (tp *TruePortfolio) EquityCurve(through Date) []EquityPoint {
	if tp.empty {
		return nil
	}
	start := tp.floor.Start()
	if through.Before(start) {
		return nil
	}

	var out []EquityPoint
	var equity Money
	for d := range NewRange(start, through).Days() {
		if d.Day() == 1 {
			equity = tp.MonthlyPortfolio(MonthOf(d)).Starting
		}
		flow := tp.flowByDay[d]
		pl := tp.plByDay[d]
		equity = equity.Add(flow).Add(pl)
		out = append(out, EquityPoint{Date: d, Equity: equity, Flow: flow, PL: pl})
	}
	return out
}

// equityThrough returns the natural end of the curve: today, capped to the
// last month carrying data.
func (tp *TruePortfolio) equityThrough() Date {
	end := tp.last.End()
	if today := Today(); today.Before(end) && !today.Before(tp.floor.Start()) {
		return today
	}
	return end
}

// SamplePeriods folds the daily curve into one point per calendar period:
// the capital at the period close, flows and P/L summed over it. Daily
// returns the curve unchanged.
func SamplePeriods(curve []EquityPoint, p Period) []EquityPoint {
	if p == Daily || len(curve) == 0 {
		return curve
	}
	full := NewRange(curve[0].Date, curve[len(curve)-1].Date)
	var out []EquityPoint
	i := 0
	for r := range full.Periods(p) {
		var pt EquityPoint
		var seen bool
		for ; i < len(curve) && !curve[i].Date.After(r.To); i++ {
			pt.Date = curve[i].Date
			pt.Equity = curve[i].Equity
			pt.Flow = pt.Flow.Add(curve[i].Flow)
			pt.PL = pt.PL.Add(curve[i].PL)
			seen = true
		}
		if seen {
			out = append(out, pt)
		}
	}
	return out
}
