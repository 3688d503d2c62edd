package tradebook

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Side is the direction of a position.
type Side int

const (
	// Buy is a long position: it profits when the price rises.
	Buy Side = iota
	// Sell is a short position: it profits when the price falls.
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "buy", "long":
		return Buy, nil
	case "sell", "short":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown side: %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface for Side.
func (s Side) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// UnmarshalJSON implements the json.Unmarshaler interface for Side.
func (s *Side) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseSide(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Status describes how much of a position remains open.
type Status int

const (
	// Open means nothing has been exited yet.
	Open Status = iota
	// Partial means some, but not all, of the entered quantity has exited.
	Partial
	// Closed means the whole position has exited.
	Closed
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Partial:
		return "partial"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "open":
		return Open, nil
	case "partial":
		return Partial, nil
	case "closed":
		return Closed, nil
	default:
		return 0, fmt.Errorf("unknown status: %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface for Status.
func (s Status) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// UnmarshalJSON implements the json.Unmarshaler interface for Status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Lot is one priced fill: a quantity executed at a single price. The entries
// and exits of a trade are ordered sequences of lots.
type Lot struct {
	Price    Money
	Quantity Quantity
}

// Valid reports whether the lot is a real fill: positive price and positive
// quantity. Invalid lots are excluded from resolution, never zero-filled.
func (l Lot) Valid() bool { return l.Price.IsPositive() && l.Quantity.IsPositive() }

// Cost returns price × quantity.
func (l Lot) Cost() Money { return l.Price.Mul(l.Quantity) }

func (l Lot) Equal(o Lot) bool { return l.Price.Equal(o.Price) && l.Quantity.Equal(o.Quantity) }

// MarshalJSON writes the lot with a bare decimal price; the currency lives at
// the trade level.
func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("price", l.Price.value)
	w.Append("quantity", l.Quantity)
	return w.MarshalJSON()
}

// Exit is a lot leaving the position on its own date.
type Exit struct {
	Lot
	Date Date
}

func (e Exit) Equal(o Exit) bool { return e.Date == o.Date && e.Lot.Equal(o.Lot) }

// MarshalJSON implements the json.Marshaler interface for Exit. An exit
// without a date is written without one, so it still falls back to the entry
// date after a reload.
func (e Exit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	if !e.Date.IsZero() {
		w.Append("date", e.Date)
	}
	w.Append("price", e.Price.value)
	w.Append("quantity", e.Quantity)
	return w.MarshalJSON()
}

// A trade carries at most the initial entry plus two pyramids, and at most
// three exits.
const (
	MaxEntryLots = 3
	MaxExitLots  = 3
)

// Trade is a position record: an initial entry with up to two pyramids, and
// up to three priced exits, possibly partial. Averages, open quantity,
// realized P/L and the like are derived by [Resolve], never stored.
type Trade struct {
	baseRec
	Symbol       string
	Side         Side
	Entries      []Lot  // initial entry + pyramids, in execution order
	Exits        []Exit // partial or full exits, in execution order
	StopLoss     Money  // optional; zero means no stop recorded
	MarketPrice  Money  // optional last marked price, for the open quantity
	Status       Status
	Setup        string // setup tag, e.g. "breakout"
	PlanFollowed bool
}

// NewTrade creates a new Trade record entered on the given day.
func NewTrade(day Date, id, memo, symbol string, side Side, entries ...Lot) Trade {
	return Trade{
		baseRec: baseRec{Record: RecTrade, Date: day, ID: id, Memo: memo},
		Symbol:  symbol,
		Side:    side,
		Entries: entries,
	}
}

// Currency returns the currency of the trade's prices (DefaultCurrency when
// the trade carries none).
func (t Trade) Currency() string {
	for _, l := range t.Entries {
		if c := l.Price.Currency(); c != "" {
			return c
		}
	}
	for _, e := range t.Exits {
		if c := e.Price.Currency(); c != "" {
			return c
		}
	}
	if c := t.StopLoss.Currency(); c != "" {
		return c
	}
	if c := t.MarketPrice.Currency(); c != "" {
		return c
	}
	return DefaultCurrency
}

// EnteredQty returns the total quantity across valid entry lots.
func (t Trade) EnteredQty() Quantity {
	var sum Quantity
	for _, l := range t.Entries {
		if l.Valid() {
			sum = sum.Add(l.Quantity)
		}
	}
	return sum
}

// ExitedQty returns the total quantity across valid exit lots.
func (t Trade) ExitedQty() Quantity {
	var sum Quantity
	for _, e := range t.Exits {
		if e.Valid() {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum
}

// WithExit returns a copy of t with one more exit recorded and the status
// recomputed from the remaining open quantity.
func (t Trade) WithExit(e Exit) Trade {
	t.Exits = append(slices.Clone(t.Exits), e)
	if t.ExitedQty().LessThan(t.EnteredQty()) {
		t.Status = Partial
	} else {
		t.Status = Closed
	}
	return t
}

func (t Trade) Equal(other Record) bool {
	o, ok := other.(Trade)
	return ok && t.baseRec == o.baseRec && t.Symbol == o.Symbol && t.Side == o.Side &&
		slices.EqualFunc(t.Entries, o.Entries, Lot.Equal) &&
		slices.EqualFunc(t.Exits, o.Exits, Exit.Equal) &&
		t.StopLoss.Equal(o.StopLoss) && t.MarketPrice.Equal(o.MarketPrice) &&
		t.Status == o.Status && t.Setup == o.Setup && t.PlanFollowed == o.PlanFollowed
}

// Validate checks the fields that make a trade unsafe to persist: a missing
// symbol, more lots than the form allows, exits dated before the entry,
// exited quantity exceeding the entered quantity, or a status inconsistent
// with the open quantity. The journal is used to assign a free ID when the
// trade has none.
func (t Trade) Validate(j *Journal) (Record, error) {
	t.baseRec.Validate()
	if t.Symbol == "" {
		return t, fmt.Errorf("trade symbol is missing")
	}
	if t.ID == "" && j != nil {
		t.ID = j.nextTradeID()
	}
	if len(t.Entries) > MaxEntryLots {
		return t, fmt.Errorf("trade %s has %d entry lots, at most %d (entry + pyramids)", t.ID, len(t.Entries), MaxEntryLots)
	}
	if len(t.Exits) > MaxExitLots {
		return t, fmt.Errorf("trade %s has %d exit lots, at most %d", t.ID, len(t.Exits), MaxExitLots)
	}
	entered := t.EnteredQty()
	if entered.IsZero() {
		return t, fmt.Errorf("trade %s has no valid entry lot", t.ID)
	}
	for _, e := range t.Exits {
		if e.Valid() && e.Date.Before(t.Date) {
			return t, fmt.Errorf("trade %s has an exit on %s before its entry on %s", t.ID, e.Date, t.Date)
		}
	}
	exited := t.ExitedQty()
	if exited.GreaterThan(entered) {
		return t, fmt.Errorf("trade %s exits %s but only entered %s", t.ID, exited, entered)
	}
	switch {
	case t.Status == Open && exited.IsPositive():
		return t, fmt.Errorf("trade %s is marked open but has exits", t.ID)
	case t.Status == Closed && exited.LessThan(entered):
		return t, fmt.Errorf("trade %s is marked closed but %s is still open", t.ID, entered.Sub(exited))
	case t.Status == Partial && (exited.IsZero() || exited.Equal(entered)):
		return t, fmt.Errorf("trade %s is marked partial but exited %s of %s", t.ID, exited, entered)
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for Trade.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseRec)
	w.Append("symbol", t.Symbol)
	w.Append("side", t.Side)
	if c := t.Currency(); c != DefaultCurrency {
		w.Append("currency", c)
	}
	w.Append("entries", t.Entries)
	if len(t.Exits) > 0 {
		w.Append("exits", t.Exits)
	}
	if t.StopLoss.IsPositive() {
		w.Append("stop", t.StopLoss.value)
	}
	if t.MarketPrice.IsPositive() {
		w.Append("market", t.MarketPrice.value)
	}
	w.Append("status", t.Status)
	w.Optional("setup", t.Setup)
	if t.PlanFollowed {
		w.Append("plan", true)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Trade. Lot
// prices are bare decimals in the trade's currency.
func (t *Trade) UnmarshalJSON(data []byte) error {
	type jlot struct {
		Date     Date            `json:"date"`
		Price    decimal.Decimal `json:"price"`
		Quantity Quantity        `json:"quantity"`
	}
	var temp struct {
		baseRec
		Symbol   string          `json:"symbol"`
		Side     Side            `json:"side"`
		Currency string          `json:"currency"`
		Entries  []jlot          `json:"entries"`
		Exits    []jlot          `json:"exits"`
		Stop     decimal.Decimal `json:"stop"`
		Market   decimal.Decimal `json:"market"`
		Status   Status          `json:"status"`
		Setup    string          `json:"setup"`
		Plan     bool            `json:"plan"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	c := temp.Currency
	if c == "" {
		c = DefaultCurrency
	}
	t.baseRec = temp.baseRec
	t.Symbol = temp.Symbol
	t.Side = temp.Side
	t.Entries = nil
	for _, l := range temp.Entries {
		t.Entries = append(t.Entries, Lot{Price: M(l.Price, c), Quantity: l.Quantity})
	}
	t.Exits = nil
	for _, l := range temp.Exits {
		t.Exits = append(t.Exits, Exit{Date: l.Date, Lot: Lot{Price: M(l.Price, c), Quantity: l.Quantity}})
	}
	if !temp.Stop.IsZero() {
		t.StopLoss = M(temp.Stop, c)
	}
	if !temp.Market.IsZero() {
		t.MarketPrice = M(temp.Market, c)
	}
	t.Status = temp.Status
	t.Setup = temp.Setup
	t.PlanFollowed = temp.Plan
	return nil
}
