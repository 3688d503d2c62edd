package tradebook

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// ImportMapping locates trade fields inside a foreign JSON export, as
// JSONPath expressions. Rows selects the list of trade objects; every other
// path is evaluated against one row. Optional paths may be left empty.
type ImportMapping struct {
	Rows     string `json:"rows"`
	Symbol   string `json:"symbol"`
	Side     string `json:"side,omitempty"` // rows import as Buy when empty
	Date     string `json:"date"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Setup    string `json:"setup,omitempty"`
	StopLoss string `json:"stopLoss,omitempty"`
	Memo     string `json:"memo,omitempty"`

	// Exit paths. All three must resolve on a row for its exit to be
	// recorded.
	ExitDate     string `json:"exitDate,omitempty"`
	ExitPrice    string `json:"exitPrice,omitempty"`
	ExitQuantity string `json:"exitQuantity,omitempty"`

	// Currency applies to every imported price. It is a currency code, not
	// a path, and defaults to DefaultCurrency.
	Currency string `json:"currency,omitempty"`
}

// ImportTrades reads a foreign JSON export and maps its rows into trade
// records. Import is best-effort: a malformed row is skipped and reported,
// the remaining rows still import. Returned trades carry no ID yet, journal
// validation assigns them.
func ImportTrades(r io.Reader, mapping ImportMapping) ([]Trade, []error) {
	if mapping.Rows == "" {
		return nil, []error{fmt.Errorf("import mapping has no rows path")}
	}
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, []error{fmt.Errorf("could not decode import: %w", err)}
	}
	jrows, err := jsonpath.Get(mapping.Rows, jobj)
	if err != nil {
		return nil, []error{fmt.Errorf("could not select rows %q: %w", mapping.Rows, err)}
	}
	rows, ok := jrows.([]any)
	if !ok {
		return nil, []error{fmt.Errorf("rows path %q selected a %T, not a list", mapping.Rows, jrows)}
	}

	cur := mapping.Currency
	if cur == "" {
		cur = DefaultCurrency
	}

	var trades []Trade
	var errs []error
	for i, row := range rows {
		t, err := importRow(row, mapping, cur)
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		trades = append(trades, t)
	}
	return trades, errs
}

func importRow(row any, mapping ImportMapping, cur string) (Trade, error) {
	symbol, err := jpString(row, mapping.Symbol)
	if err != nil {
		return Trade{}, fmt.Errorf("symbol: %w", err)
	}
	day, err := jpDate(row, mapping.Date)
	if err != nil {
		return Trade{}, fmt.Errorf("date: %w", err)
	}
	price, err := jpFloat(row, mapping.Price)
	if err != nil {
		return Trade{}, fmt.Errorf("price: %w", err)
	}
	qty, err := jpFloat(row, mapping.Quantity)
	if err != nil {
		return Trade{}, fmt.Errorf("quantity: %w", err)
	}

	side := Buy
	if mapping.Side != "" {
		s, err := jpString(row, mapping.Side)
		if err != nil {
			return Trade{}, fmt.Errorf("side: %w", err)
		}
		side, err = ParseSide(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return Trade{}, err
		}
	}

	t := NewTrade(day, "", "", symbol, side, Lot{Price: M(price, cur), Quantity: Q(qty)})

	// Optional fields import when their path resolves and stay zero
	// otherwise.
	if mapping.Setup != "" {
		if setup, err := jpString(row, mapping.Setup); err == nil {
			t.Setup = setup
		}
	}
	if mapping.Memo != "" {
		if memo, err := jpString(row, mapping.Memo); err == nil {
			t.Memo = memo
		}
	}
	if mapping.StopLoss != "" {
		if stop, err := jpFloat(row, mapping.StopLoss); err == nil {
			t.StopLoss = M(stop, cur)
		}
	}

	if mapping.ExitDate != "" && mapping.ExitPrice != "" && mapping.ExitQuantity != "" {
		xd, derr := jpDate(row, mapping.ExitDate)
		xp, perr := jpFloat(row, mapping.ExitPrice)
		xq, qerr := jpFloat(row, mapping.ExitQuantity)
		if derr == nil && perr == nil && qerr == nil && xq > 0 {
			t = t.WithExit(Exit{Date: xd, Lot: Lot{Price: M(xp, cur), Quantity: Q(xq)}})
		}
	}

	return t, nil
}

// jp evaluates a JSONPath against a row. The library answers with either a
// single value or a one-element list depending on the path shape, so lists
// collapse to their first element.
func jp(row any, path string) (any, error) {
	jval, err := jsonpath.Get(path, row)
	if err != nil {
		return nil, err
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func jpString(row any, path string) (string, error) {
	v, err := jp(row, path)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%q is not a string: %v", path, v)
}

func jpFloat(row any, path string) (float64, error) {
	v, err := jp(row, path)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		// some exports quote their numbers, with a comma decimal mark
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number: %q", path, n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%q is not a number: %v", path, v)
}

func jpDate(row any, path string) (Date, error) {
	s, err := jpString(row, path)
	if err != nil {
		return Date{}, err
	}
	day, err := ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("%q is not a date: %w", path, err)
	}
	return day, nil
}
