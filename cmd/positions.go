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

type positionsCmd struct {
	date string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display the open positions marked to market" }
func (*positionsCmd) Usage() string {
	return `tbk positions [-d <date>]

  Lists every position still open on the given date, marked at its recorded
  market price when one exists, at its average entry otherwise. Exits dated
  after the given date are ignored, so the report reflects that day.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Report date (defaults to today). See 'tbk topic dates'.")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := tradebook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report, err := tradebook.OpenPositions(journal.Trades(), on, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	printMarkdown(renderer.PositionsMarkdown(report))
	return subcommands.ExitSuccess
}
