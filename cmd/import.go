package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/quillfox/tradebook"
)

type importCmd struct {
	file    string
	mapping string

	rows     string
	symbol   string
	side     string
	date     string
	price    string
	quantity string
	currency string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from a foreign JSON export" }
func (*importCmd) Usage() string {
	return `tbk import -mapping <file> [-file <export>]
tbk import -rows <path> -symbol <path> -date <path> -price <path> -quantity <path> [-file <export>]

  Maps the rows of a broker or spreadsheet JSON export into trade records and
  appends them to the journal. Field locations are JSONPath expressions,
  either loaded from a mapping file or given directly as flags. The import is
  best-effort: malformed rows are reported and skipped, the rest still land.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "-", "Export to read, '-' for stdin")
	f.StringVar(&c.mapping, "mapping", "", "JSON file holding the field mapping")
	f.StringVar(&c.rows, "rows", "", "JSONPath selecting the list of trade rows")
	f.StringVar(&c.symbol, "symbol", "", "JSONPath of the symbol within a row")
	f.StringVar(&c.side, "side", "", "JSONPath of the side within a row (rows import as buys when empty)")
	f.StringVar(&c.date, "date", "", "JSONPath of the entry date within a row")
	f.StringVar(&c.price, "price", "", "JSONPath of the entry price within a row")
	f.StringVar(&c.quantity, "quantity", "", "JSONPath of the entry quantity within a row")
	f.StringVar(&c.currency, "currency", "", "Currency of the imported prices (not a path)")
}

// buildMapping loads the mapping file when given and lets the flags override
// its fields.
func (c *importCmd) buildMapping() (tradebook.ImportMapping, error) {
	var mapping tradebook.ImportMapping
	if c.mapping != "" {
		data, err := os.ReadFile(c.mapping)
		if err != nil {
			return mapping, fmt.Errorf("could not read mapping file %q: %w", c.mapping, err)
		}
		if err := json.Unmarshal(data, &mapping); err != nil {
			return mapping, fmt.Errorf("could not parse mapping file %q: %w", c.mapping, err)
		}
	}
	if c.rows != "" {
		mapping.Rows = c.rows
	}
	if c.symbol != "" {
		mapping.Symbol = c.symbol
	}
	if c.side != "" {
		mapping.Side = c.side
	}
	if c.date != "" {
		mapping.Date = c.date
	}
	if c.price != "" {
		mapping.Price = c.price
	}
	if c.quantity != "" {
		mapping.Quantity = c.quantity
	}
	if c.currency != "" {
		mapping.Currency = c.currency
	}
	return mapping, nil
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mapping, err := c.buildMapping()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if mapping.Rows == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	var in io.Reader = os.Stdin
	if c.file != "-" {
		file, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening export %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		in = file
	}

	trades, errs := tradebook.ImportTrades(in, mapping)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if len(trades) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no trade imported.")
		return subcommands.ExitFailure
	}

	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	imported := 0
	for _, t := range trades {
		fixed, err := journal.Validate(t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		journal.Append(fixed)
		imported++
	}
	if imported == 0 {
		fmt.Fprintln(os.Stderr, "Error: no imported trade passed validation.")
		return subcommands.ExitFailure
	}
	if err := SaveJournal(journal); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d trades into %s (%d rows skipped)\n", imported, *journalFile, len(errs)+len(trades)-imported)
	return subcommands.ExitSuccess
}
