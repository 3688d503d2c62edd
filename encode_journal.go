package tradebook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeJournal decodes records from a stream of JSONL data from an
// io.Reader, decodes each line into the appropriate record struct, and
// returns a sorted Journal.
func DecodeJournal(r io.Reader) (*Journal, error) {
	journal := NewJournal()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Record RecordType `json:"record"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record in line %q: %w", string(lineBytes), err)
		}

		var decoded Record
		var err error
		switch identifier.Record {
		case RecTrade:
			var t Trade
			err = json.Unmarshal(lineBytes, &t)
			decoded = t
		case RecDeposit:
			var t Deposit
			err = json.Unmarshal(lineBytes, &t)
			decoded = t
		case RecWithdraw:
			var t Withdraw
			err = json.Unmarshal(lineBytes, &t)
			decoded = t
		case RecYearlyCapital:
			var t YearlyCapital
			err = json.Unmarshal(lineBytes, &t)
			decoded = t
		case RecMonthlyOverride:
			var t MonthlyOverride
			err = json.Unmarshal(lineBytes, &t)
			decoded = t
		default:
			err = fmt.Errorf("unknown journal record: %q", identifier.Record)
		}
		if err != nil {
			return nil, err
		}
		journal.records = append(journal.records, decoded)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	// Perform a stable sort on the journal based on the record date.
	journal.stableSort()

	return journal, nil
}

// EncodeRecord marshals a single record to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeRecord(w io.Writer, r Record) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", r.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// EncodeJournal reorders records by date and persists them to an io.Writer
// in JSONL format. The sort is stable, meaning records on the same day
// maintain their original relative order, and each record's keys come out
// in a canonical order.
func EncodeJournal(w io.Writer, journal *Journal) error {
	decimal.MarshalJSONWithoutQuotes = true

	journal.stableSort()

	for _, r := range journal.records {
		if err := EncodeRecord(w, r); err != nil {
			return err
		}
	}

	return nil
}
