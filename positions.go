package tradebook

import (
	"errors"
	"fmt"
)

// QuoteProvider supplies a market price for a symbol on a given date.
// Implementations may hit the network; the engine itself never does.
type QuoteProvider interface {
	Quote(symbol string, on Date) (Money, error)
}

// QuoteCache memoizes QuoteProvider answers for the duration of one report.
// It is owned by the caller: build one per request and discard it, there is
// no package-level price state.
type QuoteCache struct {
	provider QuoteProvider
	quotes   map[quoteKey]Money
}

type quoteKey struct {
	symbol string
	on     Date
}

// NewQuoteCache wraps a provider with per-request memoization.
func NewQuoteCache(p QuoteProvider) *QuoteCache {
	return &QuoteCache{provider: p, quotes: make(map[quoteKey]Money)}
}

// Quote returns the price for a symbol on a date, asking the provider at
// most once per (symbol, date) pair.
func (c *QuoteCache) Quote(symbol string, on Date) (Money, error) {
	key := quoteKey{symbol, on}
	if q, ok := c.quotes[key]; ok {
		return q, nil
	}
	q, err := c.provider.Quote(symbol, on)
	if err != nil {
		return Money{}, err
	}
	c.quotes[key] = q
	return q, nil
}

// OpenPosition is one open or partially exited trade marked to market.
type OpenPosition struct {
	TradeID     string
	Symbol      string
	Side        Side
	Entered     Date
	AvgEntry    Money
	OpenQty     Quantity
	CostBasis   Money // open quantity at average entry
	MarketPrice Money
	MarketValue Money // open quantity at market price
	OpenPL      Money // unrealized, sign follows the side
	OpenMove    Percent
	StopLoss    Money
	RiskAtStop  Money // loss if stopped out on the open quantity
}

// PositionReport lists the open positions on a given date.
type PositionReport struct {
	Date      Date
	Positions []OpenPosition
	Value     Money // total market value of open positions
	OpenPL    Money // total unrealized P/L
}

// OpenPositions reports every position still open on a date, marked to
// market. Prices come from the quote cache when one is given, falling back
// to each trade's stored market price, then to its average entry. Provider
// failures degrade to the fallback and come back joined in the error, next
// to a still-usable report.
func OpenPositions(trades []Trade, on Date, quotes *QuoteCache) (*PositionReport, error) {
	report := &PositionReport{Date: on}
	var errs error
	for _, t := range trades {
		if t.Date.After(on) {
			continue
		}
		rt := Resolve(asOf(t, on))
		if !rt.OpenQty.IsPositive() {
			continue
		}

		price := rt.AvgEntry
		if t.MarketPrice.IsPositive() {
			price = t.MarketPrice
		}
		if quotes != nil {
			q, err := quotes.Quote(t.Symbol, on)
			if err != nil {
				errs = errors.Join(errs, fmt.Errorf("could not quote %s: %w", t.Symbol, err))
			} else if q.IsPositive() {
				price = q
			}
		}

		pl := price.Sub(rt.AvgEntry).Mul(rt.OpenQty)
		move := price.Sub(rt.AvgEntry).PercentOf(rt.AvgEntry)
		if t.Side == Sell {
			pl = pl.Neg()
			move = -move
		}
		var risk Money
		if t.StopLoss.IsPositive() {
			risk = rt.AvgEntry.Sub(t.StopLoss).Mul(rt.OpenQty)
			if t.Side == Sell {
				risk = risk.Neg()
			}
		}

		pos := OpenPosition{
			TradeID:     t.ID,
			Symbol:      t.Symbol,
			Side:        t.Side,
			Entered:     t.Date,
			AvgEntry:    rt.AvgEntry,
			OpenQty:     rt.OpenQty,
			CostBasis:   rt.AvgEntry.Mul(rt.OpenQty),
			MarketPrice: price,
			MarketValue: price.Mul(rt.OpenQty),
			OpenPL:      pl,
			OpenMove:    move,
			StopLoss:    t.StopLoss,
			RiskAtStop:  risk,
		}
		report.Positions = append(report.Positions, pos)
		report.Value = report.Value.Add(pos.MarketValue)
		report.OpenPL = report.OpenPL.Add(pos.OpenPL)
	}
	return report, errs
}

// asOf strips exits dated after the report date, so quantities reflect the
// position as it stood on that day. Status is recomputed to match.
func asOf(t Trade, on Date) Trade {
	kept := make([]Exit, 0, len(t.Exits))
	for _, e := range t.Exits {
		if e.Date.IsZero() || !e.Date.After(on) {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(t.Exits) {
		return t
	}
	t.Exits = kept
	switch {
	case t.ExitedQty().IsZero():
		t.Status = Open
	case t.ExitedQty().LessThan(t.EnteredQty()):
		t.Status = Partial
	default:
		t.Status = Closed
	}
	return t
}
