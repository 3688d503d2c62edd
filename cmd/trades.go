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

type tradesCmd struct {
	status string
	symbol string
	head   int
	tail   int
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list the trades of the journal" }
func (*tradesCmd) Usage() string {
	return `tbk trades [-status <status>] [-s <symbol>] [-head <n> | -tail <n>]

  Lists the trades with their resolved figures: average entry and exit,
  realized P/L, stock move and status.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "status", "", "Keep only one status (open, partial, closed)")
	f.StringVar(&c.symbol, "s", "", "Keep only one symbol")
	f.IntVar(&c.head, "head", 0, "Show only the first N trades")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N trades")
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	var status tradebook.Status
	if c.status != "" {
		var err error
		status, err = tradebook.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var trades []tradebook.Trade
	for _, t := range journal.Trades() {
		if c.status != "" && t.Status != status {
			continue
		}
		if c.symbol != "" && t.Symbol != c.symbol {
			continue
		}
		trades = append(trades, t)
	}

	if c.head > 0 && len(trades) > c.head {
		trades = trades[:c.head]
	}
	if c.tail > 0 && len(trades) > c.tail {
		trades = trades[len(trades)-c.tail:]
	}

	var warnings []tradebook.ValidationWarning
	for _, t := range trades {
		warnings = append(warnings, tradebook.Resolve(t).Warnings...)
	}
	if err := tradebook.JoinWarnings(warnings); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	printMarkdown(renderer.TradeLogMarkdown(trades))
	return subcommands.ExitSuccess
}
