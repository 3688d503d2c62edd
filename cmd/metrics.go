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

type metricsCmd struct {
	basis    string
	riskFree float64
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "display risk and win/loss metrics" }
func (*metricsCmd) Usage() string {
	return `tbk metrics [-basis <basis>] [-rf <rate>]

  Displays the risk figures of the journal: annualized return, volatility,
  max drawdown, Sharpe, Sortino and Calmar ratios, the win/loss statistics,
  and the monthly return series. See 'tbk topic metrics'.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	basisFlag(f, &c.basis)
	f.Float64Var(&c.riskFree, "rf", 6, "Annual risk-free rate in percent")
}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	m := tp.RiskMetrics(tradebook.WithRiskFreeRate(c.riskFree))
	printMarkdown(renderer.MetricsMarkdown(m, basis))
	return subcommands.ExitSuccess
}
