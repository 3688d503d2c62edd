package renderer

import (
	"strings"

	"github.com/quillfox/tradebook"
)

// EquityReport is the view model of the bootstrapped equity curve. The curve
// is summarized; only points carrying a flow or P/L become rows.
type EquityReport struct {
	AsOf    string
	Unit    string // capitalized plural of the sampling period ("Days")
	Through tradebook.Date
	Final   tradebook.Money
	Peak    tradebook.Money
	Count   int
	Rows    []tradebook.EquityPoint
}

// NewEquityReport builds the view model from a curve sampled at the given
// period.
func NewEquityReport(curve []tradebook.EquityPoint, p tradebook.Period) *EquityReport {
	n := p.Name()
	r := &EquityReport{AsOf: asOf(), Unit: strings.ToUpper(n[:1]) + n[1:] + "s"}
	for _, pt := range curve {
		r.Count++
		r.Through = pt.Date
		r.Final = pt.Equity
		if r.Count == 1 || r.Peak.LessThan(pt.Equity) {
			r.Peak = pt.Equity
		}
		if !pt.Flow.IsZero() || !pt.PL.IsZero() {
			r.Rows = append(r.Rows, pt)
		}
	}
	return r
}

// EquityMarkdown renders the equity curve to a markdown string.
func EquityMarkdown(curve []tradebook.EquityPoint, p tradebook.Period) string {
	partials := map[string]string{
		"equity_title":   "equity_title.md",
		"equity_summary": "equity_summary.md",
		"equity_table":   "equity_table.md",
	}
	return renderTemplate("equity", "equity.md", partials, NewEquityReport(curve, p))
}
