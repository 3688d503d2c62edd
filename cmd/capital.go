package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
)

type capitalCmd struct {
	date     string
	year     int
	amount   float64
	currency string
}

func (*capitalCmd) Name() string     { return "capital" }
func (*capitalCmd) Synopsis() string { return "declare the starting capital of a year" }
func (*capitalCmd) Usage() string {
	return `tbk capital -a <amount> [-y <year>] [-d <date>]

  Declares the capital the year started with. The declaration anchors the
  monthly capital recurrence; a year is declared at most once, declaring it
  again replaces the previous amount. See 'tbk topic capital'.
`
}

func (c *capitalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Declaration date (defaults to today)")
	f.IntVar(&c.year, "y", 0, "Declared year (defaults to the declaration date's year)")
	f.Float64Var(&c.amount, "a", -1, "Starting capital of the year")
	f.StringVar(&c.currency, "c", tradebook.DefaultCurrency, "Currency of the amount")
}

func (c *capitalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := tradebook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fixed, err := journal.Validate(tradebook.NewYearlyCapital(day, c.year, tradebook.M(c.amount, c.currency)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rec := fixed.(tradebook.YearlyCapital)
	journal.SetYearlyCapital(rec)
	if err := SaveJournal(journal); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Declared %d starting capital %s in %s\n", rec.Year, rec.Amount, *journalFile)
	return subcommands.ExitSuccess
}
