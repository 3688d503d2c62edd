package tradebook

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDecodeJournal(t *testing.T) {
	// A JSONL stream with every record type, deliberately out of order.
	jsonlStream := `
{"record":"trade","date":"2024-01-05","id":"T1","symbol":"TCS","side":"buy","entries":[{"price":3500,"quantity":10}],"status":"open"}
{"record":"deposit","date":"2024-01-02","amount":100000,"currency":"INR"}
{"record":"withdrawal","date":"2024-02-01","amount":5000,"currency":"INR"}
{"record":"yearly-capital","date":"2024-01-01","year":2024,"amount":100000,"currency":"INR"}
{"record":"monthly-override","date":"2024-03-01","month":"Mar","year":2024,"amount":80000,"currency":"INR"}
`
	journal, err := DecodeJournal(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeJournal() returned an unexpected error: %v", err)
	}
	if journal.Len() != 5 {
		t.Fatalf("DecodeJournal() decoded %d records, want 5", journal.Len())
	}

	// Records come back sorted by date, whatever the file order was.
	expectedTypes := []reflect.Type{
		reflect.TypeOf(YearlyCapital{}),
		reflect.TypeOf(Deposit{}),
		reflect.TypeOf(Trade{}),
		reflect.TypeOf(Withdraw{}),
		reflect.TypeOf(MonthlyOverride{}),
	}
	for i, r := range journal.Records() {
		if reflect.TypeOf(r) != expectedTypes[i] {
			t.Errorf("record %d has wrong type. Got: %T, want: %v", i, r, expectedTypes[i])
		}
	}

	tr, ok := journal.Trade("T1")
	if !ok {
		t.Fatal("decoded journal has no trade T1")
	}
	if tr.Symbol != "TCS" || tr.Side != Buy || tr.Status != Open {
		t.Errorf("trade T1 = %s %s %s, want TCS buy open", tr.Symbol, tr.Side, tr.Status)
	}
	if len(tr.Entries) != 1 || !tr.Entries[0].Price.Equal(INR(3500)) {
		t.Errorf("trade T1 entries = %v, want one lot at 3500 INR", tr.Entries)
	}

	overrides := journal.Overrides()
	if len(overrides) != 1 || overrides[0].Month != NewMonth(2024, time.March) {
		t.Fatalf("overrides = %v, want one for Mar 2024", overrides)
	}
	if want := INR(80_000); !overrides[0].Amount.Equal(want) {
		t.Errorf("override amount = %s, want %s", overrides[0].Amount, want)
	}
}

func TestDecodeJournal_UnknownRecord(t *testing.T) {
	_, err := DecodeJournal(strings.NewReader(`{"record":"dividend","date":"2024-01-05"}`))
	if err == nil {
		t.Fatal("DecodeJournal() accepted an unknown record type")
	}
	if !strings.Contains(err.Error(), "unknown journal record") {
		t.Errorf("error %q does not name the unknown record", err)
	}
}

func TestDecodeJournal_Garbage(t *testing.T) {
	if _, err := DecodeJournal(strings.NewReader(`{not json}`)); err == nil {
		t.Fatal("DecodeJournal() accepted a line that is not JSON")
	}
}

func TestEncodeJournal(t *testing.T) {
	// Records in a deliberately unsorted order. r2 and r3 share a date:
	// their relative order must be preserved.
	r1 := NewDeposit(NewDate(2024, time.August, 3), "", INR(1000))
	r2 := NewDeposit(NewDate(2024, time.August, 1), "first", INR(2000))
	r3 := NewWithdraw(NewDate(2024, time.August, 1), "second", INR(500))

	journal := &Journal{records: []Record{r1, r2, r3}}

	var want bytes.Buffer
	for _, r := range []Record{r2, r3, r1} {
		if err := EncodeRecord(&want, r); err != nil {
			t.Fatalf("failed to encode expected record: %v", err)
		}
	}

	var got bytes.Buffer
	if err := EncodeJournal(&got, journal); err != nil {
		t.Fatalf("EncodeJournal() returned an unexpected error: %v", err)
	}
	if got.String() != want.String() {
		t.Errorf("EncodeJournal() produced incorrect output.\nGot:\n%s\nWant:\n%s", got.String(), want.String())
	}
}

func TestJournalRoundTrip(t *testing.T) {
	jan5 := NewDate(2024, time.January, 5)
	full := NewTrade(jan5, "T1", "swing on earnings", "TCS", Buy,
		lot(3500, 10), lot(3550, 5)).
		WithExit(exitOn(jan5.Add(10), 3700, 8))
	full.StopLoss = INR(3400)
	full.MarketPrice = INR(3650)
	full.Setup = "breakout"
	full.PlanFollowed = true
	short := NewTrade(jan5.Add(1), "T2", "", "INFY", Sell, lot(1500, 20))

	journal := NewJournal()
	journal.Append(
		full,
		short,
		NewDeposit(NewDate(2024, time.January, 2), "seed", INR(100_000)),
		NewWithdraw(NewDate(2024, time.February, 1), "", INR(5000)),
		NewYearlyCapital(NewDate(2024, time.January, 1), 2024, INR(100_000)),
		NewMonthlyOverride(NewDate(2024, time.March, 1), NewMonth(2024, time.March), INR(80_000)),
	)

	var buffer bytes.Buffer
	if err := EncodeJournal(&buffer, journal); err != nil {
		t.Fatalf("EncodeJournal() returned an unexpected error: %v", err)
	}
	decoded, err := DecodeJournal(&buffer)
	if err != nil {
		t.Fatalf("DecodeJournal() returned an unexpected error: %v", err)
	}

	if decoded.Len() != journal.Len() {
		t.Fatalf("round trip kept %d of %d records", decoded.Len(), journal.Len())
	}
	for i, r := range journal.Records() {
		if !r.Equal(decoded.records[i]) {
			t.Errorf("record %d does not survive the round trip.\nGot:  %+v\nWant: %+v", i, decoded.records[i], r)
		}
	}
}
