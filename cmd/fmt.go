package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
)

type fmtCmd struct {
	output string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `tbk fmt [-o <file>]

  Validates and formats the journal file. This command reads all records,
  validates them, applies available quick-fixes (like assigning trade IDs),
  sorts them by date, and writes them back in a canonical JSONL format.
  By default the journal file is rewritten in place; -o writes elsewhere,
  '-' for stdout.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file, the journal file itself by default, '-' for stdout")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load journal: %v\n", err)
		return subcommands.ExitFailure
	}

	formatted, err := journal.Fmt()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}

	switch p.output {
	case "", *journalFile:
		if err := SaveJournal(formatted); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	case "-":
		if err := tradebook.EncodeJournal(os.Stdout, formatted); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing journal: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	default:
		out, err := os.Create(p.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening output file %q: %v\n", p.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := tradebook.EncodeJournal(out, formatted); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file %q: %v\n", p.output, err)
			return subcommands.ExitFailure
		}
	}

	if formatted.Len() == 0 {
		fmt.Fprintf(os.Stderr, "✅ Successfully formatted an empty journal.\n")
	} else {
		fmt.Fprintf(os.Stderr, "✅ Successfully formatted %d records from %s to %s.\n",
			formatted.Len(), formatted.EarliestRecordDate(), formatted.LatestRecordDate())
	}
	return subcommands.ExitSuccess
}
