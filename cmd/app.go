// Package cmd implements the CLI application to manage a trading journal.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&logCmd{}, "journal")
	c.Register(&exitCmd{}, "journal")
	c.Register(&depositCmd{}, "journal")
	c.Register(&withdrawCmd{}, "journal")
	c.Register(&capitalCmd{}, "journal")
	c.Register(&overrideCmd{}, "journal")
	c.Register(&importCmd{}, "journal")
	c.Register(&fmtCmd{}, "journal")

	c.Register(&monthlyCmd{}, "reports")
	c.Register(&reviewCmd{}, "reports")
	c.Register(&metricsCmd{}, "reports")
	c.Register(&topCmd{}, "reports")
	c.Register(&equityCmd{}, "reports")
	c.Register(&tradesCmd{}, "reports")
	c.Register(&positionsCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var journalFile = flag.String("journal-file", "journal.jsonl", "Path to the journal file (JSONL format)")

// DecodeJournal loads the journal from the app journal file. A missing file
// is an empty journal.
func DecodeJournal() (*tradebook.Journal, error) {
	f, err := os.Open(*journalFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tradebook.NewJournal(), nil
		}
		return nil, fmt.Errorf("could not open journal file %q: %w", *journalFile, err)
	}
	defer f.Close()

	journal, err := tradebook.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal file %q: %w", *journalFile, err)
	}
	return journal, nil
}

// SaveJournal rewrites the whole journal file in canonical JSONL.
func SaveJournal(journal *tradebook.Journal) error {
	f, err := os.Create(*journalFile)
	if err != nil {
		return fmt.Errorf("could not open journal file %q for writing: %w", *journalFile, err)
	}
	defer f.Close()

	if err := tradebook.EncodeJournal(f, journal); err != nil {
		return fmt.Errorf("could not write journal file %q: %w", *journalFile, err)
	}
	return nil
}

// appendRecord validates a single record against the journal on disk and
// appends it to the journal file.
func appendRecord(r tradebook.Record) subcommands.ExitStatus {
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fixed, err := journal.Validate(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*journalFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := tradebook.EncodeRecord(f, fixed); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal file %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s to %s\n", describe(fixed), *journalFile)
	return subcommands.ExitSuccess
}

// describe names a record for the confirmation line, trades by their ID.
func describe(r tradebook.Record) string {
	if t, ok := r.(tradebook.Trade); ok {
		return fmt.Sprintf("trade %s", t.ID)
	}
	return string(r.What())
}

// renderMarkdown renders markdown for the terminal. It falls back to the raw
// text when no renderer can be built (e.g. a dumb terminal).
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }

// basisFlag declares the -basis flag shared by the report commands.
func basisFlag(f *flag.FlagSet, p *string) {
	f.StringVar(p, "basis", "accrual", "Accounting basis (accrual, cash). See 'tbk topic basis'.")
}
