package renderer

import (
	"github.com/quillfox/tradebook"
)

// TradeLogReport is the view model of the trade log: one row per trade with
// its resolved averages and realized P/L.
type TradeLogReport struct {
	AsOf    string
	Rows    []TradeRow
	Open    int
	Partial int
	Closed  int
	NetPL   tradebook.Money
}

// TradeRow is one rendered trade.
type TradeRow struct {
	tradebook.ResolvedTrade
}

// NewTradeLog resolves every trade and builds the view model.
func NewTradeLog(trades []tradebook.Trade) *TradeLogReport {
	r := &TradeLogReport{AsOf: asOf()}
	for _, t := range trades {
		rt := tradebook.Resolve(t)
		r.Rows = append(r.Rows, TradeRow{rt})
		switch t.Status {
		case tradebook.Open:
			r.Open++
		case tradebook.Partial:
			r.Partial++
		case tradebook.Closed:
			r.Closed++
		}
		r.NetPL = r.NetPL.Add(rt.RealizedPL)
	}
	return r
}

// TradeLogMarkdown renders the trade log to a markdown string.
func TradeLogMarkdown(trades []tradebook.Trade) string {
	partials := map[string]string{
		"tradelog_title": "tradelog_title.md",
		"tradelog_table": "tradelog_table.md",
	}
	return renderTemplate("tradelog", "tradelog.md", partials, NewTradeLog(trades))
}
