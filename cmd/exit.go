package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
)

type exitCmd struct {
	id    string
	date  string
	price float64
	qty   float64
}

func (*exitCmd) Name() string     { return "exit" }
func (*exitCmd) Synopsis() string { return "record an exit on an open trade" }
func (*exitCmd) Usage() string {
	return `tbk exit -t <trade-id> -p <price> [-q <quantity>] [-d <date>]

  Records a partial or full exit on a trade. Without -q the whole remaining
  open quantity exits. The trade's status is recomputed from what stays open.
`
}

func (c *exitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "t", "", "Trade identifier (e.g. T3)")
	f.StringVar(&c.date, "d", "0d", "Exit date (defaults to today). See 'tbk topic dates'.")
	f.Float64Var(&c.price, "p", 0, "Exit price")
	f.Float64Var(&c.qty, "q", 0, "Quantity exited, all the open quantity if missing")
}

func (c *exitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.price <= 0 || c.qty < 0 {
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
	t, ok := journal.Trade(c.id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no trade %q in %s\n", c.id, *journalFile)
		return subcommands.ExitFailure
	}

	qty := tradebook.Q(c.qty)
	if qty.IsZero() {
		qty = t.EnteredQty().Sub(t.ExitedQty())
	}
	updated := t.WithExit(tradebook.Exit{
		Date: day,
		Lot:  tradebook.Lot{Price: tradebook.M(c.price, t.Currency()), Quantity: qty},
	})

	fixed, err := journal.Validate(updated)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := journal.UpdateTrade(fixed.(tradebook.Trade)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveJournal(journal); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	final, _ := journal.Trade(c.id)
	fmt.Printf("Recorded exit of %s on trade %s, now %s\n", qty, c.id, final.Status)
	return subcommands.ExitSuccess
}
