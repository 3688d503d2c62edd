package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
	"github.com/quillfox/tradebook/renderer"
)

type reviewCmd struct {
	basis    string
	n        int
	riskFree float64
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "display the full performance review" }
func (*reviewCmd) Usage() string {
	return `tbk review [-basis <basis>] [-n <count>] [-rf <rate>]

  Displays the whole review in one pass: the monthly capital, the risk and
  win/loss metrics, the top and bottom symbols, and the weekday and setup
  distributions.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	basisFlag(f, &c.basis)
	f.IntVar(&c.n, "n", 5, "How many symbols on each side of the top")
	f.Float64Var(&c.riskFree, "rf", 6, "Annual risk-free rate in percent")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	basis, err := tradebook.ParseBasis(c.basis)
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
	trades := journal.Trades()

	sections := []string{
		renderer.MonthlyMarkdown(tp.AllMonthlyPortfolios(), basis),
		renderer.MetricsMarkdown(tp.RiskMetrics(tradebook.WithRiskFreeRate(c.riskFree)), basis),
		renderer.TopMarkdown(trades, basis, c.n),
		renderer.DistributionMarkdown(trades, basis),
	}
	printMarkdown(strings.Join(sections, "\n"))
	return subcommands.ExitSuccess
}
