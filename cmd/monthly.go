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

type monthlyCmd struct {
	basis string
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the capital ledger month by month" }
func (*monthlyCmd) Usage() string {
	return `tbk monthly [-basis <basis>]

  Displays every month from the first recorded data to the last: starting
  capital, net deposits and withdrawals, realized P/L, return and final
  capital carried into the next month.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	basisFlag(f, &c.basis)
}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.MonthlyMarkdown(tp.AllMonthlyPortfolios(), basis))
	return subcommands.ExitSuccess
}
