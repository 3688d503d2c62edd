package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
)

type withdrawCmd struct {
	date     string
	amount   float64
	currency string
	memo     string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record cash taken out of the trading capital" }
func (*withdrawCmd) Usage() string {
	return `tbk withdraw -a <amount> [-d <date>] [-m <memo>]

  Records a cash withdrawal. The amount is given positive and netted
  negative against the capital.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Withdrawal date (defaults to today). See 'tbk topic dates'.")
	f.Float64Var(&c.amount, "a", 0, "Amount of cash withdrawn")
	f.StringVar(&c.currency, "c", tradebook.DefaultCurrency, "Currency of the withdrawal")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := tradebook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	return appendRecord(tradebook.NewWithdraw(day, c.memo, tradebook.M(c.amount, c.currency)))
}
