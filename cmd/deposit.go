package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
)

type depositCmd struct {
	date     string
	amount   float64
	currency string
	memo     string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record cash added to the trading capital" }
func (*depositCmd) Usage() string {
	return `tbk deposit -a <amount> [-d <date>] [-m <memo>]

  Records a cash deposit. Deposits raise the capital without counting as
  trading performance.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Deposit date (defaults to today). See 'tbk topic dates'.")
	f.Float64Var(&c.amount, "a", 0, "Amount of cash deposited")
	f.StringVar(&c.currency, "c", tradebook.DefaultCurrency, "Currency of the deposit")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := tradebook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	return appendRecord(tradebook.NewDeposit(day, c.memo, tradebook.M(c.amount, c.currency)))
}
