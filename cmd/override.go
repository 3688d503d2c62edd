package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
)

type overrideCmd struct {
	date     string
	month    string
	amount   float64
	currency string
}

func (*overrideCmd) Name() string     { return "override" }
func (*overrideCmd) Synopsis() string { return "pin the starting capital of one month" }
func (*overrideCmd) Usage() string {
	return `tbk override -month <month> -a <amount> [-d <date>]

  Pins the starting capital of a single month, taking precedence over the
  carried-forward recurrence for that month. Useful to re-align the journal
  with a broker statement. See 'tbk topic capital'.
`
}

func (c *overrideCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Declaration date (defaults to today)")
	f.StringVar(&c.month, "month", "", `Overridden month ("Jan 2024", "January 2024" or "2024-01")`)
	f.Float64Var(&c.amount, "a", -1, "Starting capital of the month")
	f.StringVar(&c.currency, "c", tradebook.DefaultCurrency, "Currency of the amount")
}

func (c *overrideCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.month == "" || c.amount < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := tradebook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	month, err := tradebook.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fixed, err := journal.Validate(tradebook.NewMonthlyOverride(day, month, tradebook.M(c.amount, c.currency)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rec := fixed.(tradebook.MonthlyOverride)
	journal.SetMonthlyOverride(rec)
	if err := SaveJournal(journal); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Pinned %s starting capital %s in %s\n", rec.Month, rec.Amount, *journalFile)
	return subcommands.ExitSuccess
}
