package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
)

type logCmd struct {
	date     string
	symbol   string
	side     string
	currency string
	price    float64
	qty      float64
	price2   float64
	qty2     float64
	price3   float64
	qty3     float64
	stop     float64
	setup    string
	plan     bool
	memo     string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "record a new trade in the journal" }
func (*logCmd) Usage() string {
	return `tbk log -s <symbol> -q <quantity> -p <price> [-side <side>] [-d <date>] [-p2 <price> -q2 <qty>] [-p3 <price> -q3 <qty>] [-stop <price>] [-setup <tag>] [-plan] [-m <memo>]

  Records a new position: the initial entry, with up to two pyramids. Exits
  are recorded later with 'tbk exit'.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Entry date (defaults to today). See 'tbk topic dates'.")
	f.StringVar(&c.symbol, "s", "", "Symbol traded")
	f.StringVar(&c.side, "side", "buy", "Position side (buy, sell)")
	f.StringVar(&c.currency, "c", tradebook.DefaultCurrency, "Currency of the prices")
	f.Float64Var(&c.qty, "q", 0, "Quantity of the initial entry")
	f.Float64Var(&c.price, "p", 0, "Price of the initial entry")
	f.Float64Var(&c.qty2, "q2", 0, "Quantity of the first pyramid")
	f.Float64Var(&c.price2, "p2", 0, "Price of the first pyramid")
	f.Float64Var(&c.qty3, "q3", 0, "Quantity of the second pyramid")
	f.Float64Var(&c.price3, "p3", 0, "Price of the second pyramid")
	f.Float64Var(&c.stop, "stop", 0, "Stop loss price")
	f.StringVar(&c.setup, "setup", "", "Setup tag (e.g. breakout)")
	f.BoolVar(&c.plan, "plan", false, "Mark the trade as having followed its plan")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.qty <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := tradebook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	side, err := tradebook.ParseSide(c.side)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	entries := []tradebook.Lot{{Price: tradebook.M(c.price, c.currency), Quantity: tradebook.Q(c.qty)}}
	if c.qty2 > 0 && c.price2 > 0 {
		entries = append(entries, tradebook.Lot{Price: tradebook.M(c.price2, c.currency), Quantity: tradebook.Q(c.qty2)})
	}
	if c.qty3 > 0 && c.price3 > 0 {
		entries = append(entries, tradebook.Lot{Price: tradebook.M(c.price3, c.currency), Quantity: tradebook.Q(c.qty3)})
	}

	t := tradebook.NewTrade(day, "", c.memo, c.symbol, side, entries...)
	if c.stop > 0 {
		t.StopLoss = tradebook.M(c.stop, c.currency)
	}
	t.Setup = c.setup
	t.PlanFollowed = c.plan

	return appendRecord(t)
}
