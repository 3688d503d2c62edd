package renderer

import (
	"github.com/quillfox/tradebook"
)

// TopReport is the view model of the top performers report.
type TopReport struct {
	AsOf    string
	Basis   tradebook.AccountingBasis
	Limit   int
	Gainers []tradebook.SymbolPerf
	Losers  []tradebook.SymbolPerf
}

// NewTopReport ranks the trades' symbols and builds the view model. n limits
// both lists; n <= 0 keeps all.
func NewTopReport(trades []tradebook.Trade, basis tradebook.AccountingBasis, n int) *TopReport {
	gainers, losers := tradebook.TopPerformers(trades, basis, n)
	return &TopReport{AsOf: asOf(), Basis: basis, Limit: n, Gainers: gainers, Losers: losers}
}

// TopMarkdown renders the best and worst symbols to a markdown string.
func TopMarkdown(trades []tradebook.Trade, basis tradebook.AccountingBasis, n int) string {
	partials := map[string]string{
		"top_title":   "top_title.md",
		"top_gainers": "top_gainers.md",
		"top_losers":  "top_losers.md",
	}
	return renderTemplate("top", "top.md", partials, NewTopReport(trades, basis, n))
}
