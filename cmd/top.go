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

type topCmd struct {
	basis string
	n     int
}

func (*topCmd) Name() string     { return "top" }
func (*topCmd) Synopsis() string { return "display the best and worst symbols by realized P/L" }
func (*topCmd) Usage() string {
	return `tbk top [-n <count>] [-basis <basis>]

  Ranks the symbols of the journal by summed realized P/L and displays the
  top gainers and the top losers, with their position counts and win rates.
`
}

func (c *topCmd) SetFlags(f *flag.FlagSet) {
	basisFlag(f, &c.basis)
	f.IntVar(&c.n, "n", 5, "How many symbols on each side")
}

func (c *topCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.n < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
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

	printMarkdown(renderer.TopMarkdown(journal.Trades(), basis, c.n))
	return subcommands.ExitSuccess
}
