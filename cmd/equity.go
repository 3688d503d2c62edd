package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
	"github.com/quillfox/tradebook/renderer"
)

type equityCmd struct {
	basis  string
	date   string
	period string
}

func (*equityCmd) Name() string     { return "equity" }
func (*equityCmd) Synopsis() string { return "display the equity curve" }
func (*equityCmd) Usage() string {
	return `tbk equity [-d <date>] [-basis <basis>] [-period <period>]

  Walks the capital day by day from the first month holding data through the
  given date, and displays the days where cash moved or P/L landed. With a
  period, the curve is sampled at period closes instead.
`
}

func (c *equityCmd) SetFlags(f *flag.FlagSet) {
	basisFlag(f, &c.basis)
	f.StringVar(&c.date, "d", "0d", "End of the curve (defaults to today). See 'tbk topic dates'.")
	f.StringVar(&c.period, "period", "daily", "Sampling period (daily, weekly, monthly, quarterly, yearly)")
}

func (c *equityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	basis, err := tradebook.ParseBasis(c.basis)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	through, err := tradebook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	period, err := tradebook.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tp := journal.TruePortfolio(basis)
	curve := tradebook.SamplePeriods(tp.EquityCurve(through), period)
	printMarkdown(renderer.EquityMarkdown(curve, period))
	return subcommands.ExitSuccess
}
