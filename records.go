package tradebook

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// RecordType is a typed string for identifying journal records.
type RecordType string

// Record types used for identifying journal entries.
const (
	RecTrade           RecordType = "trade"
	RecDeposit         RecordType = "deposit"
	RecWithdraw        RecordType = "withdrawal"
	RecYearlyCapital   RecordType = "yearly-capital"
	RecMonthlyOverride RecordType = "monthly-override"
)

// Record defines the common interface for everything that can be stored in
// the journal.
type Record interface {
	What() RecordType // What returns the record type (e.g. "trade", "deposit").
	When() Date       // When returns the date the record applies to.
	Equal(Record) bool
	Validate(j *Journal) (Record, error)
}

type baseRec struct {
	Record RecordType `json:"record"`         // Record specifies the type of journal entry.
	Date   Date       `json:"date"`           // Date is the day the record applies to.
	ID     string     `json:"id,omitempty"`   // ID optionally identifies the record for later reference.
	Memo   string     `json:"memo,omitempty"` // Memo provides an optional note for the record.
}

// What returns the record type, used to identify the kind of journal entry.
func (t baseRec) What() RecordType { return t.Record }

// When returns the date of the record.
func (t baseRec) When() Date { return t.Date }

// MarshalJSON implements the json.Marshaler interface for baseRec.
func (t baseRec) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("record", t.Record)
	w.Append("date", t.Date)
	w.Optional("id", t.ID)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base record fields. It sets the date to today if it's
// zero. It's meant to be embedded in other record validation methods.
func (t *baseRec) Validate() {
	if t.Date == (Date{}) {
		t.Date = Today()
	}
}

// amountRec is a component for records carrying a single money amount.
type amountRec struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Money returns the amount as a Money in the record's currency, defaulting
// to DefaultCurrency.
func (a amountRec) Money() Money {
	c := a.Currency
	if c == "" {
		c = DefaultCurrency
	}
	return M(a.Amount, c)
}

// Deposit represents cash added to the trading capital.
type Deposit struct {
	baseRec
	Amount Money // Amount is the deposited cash, always positive.
}

// NewDeposit creates a new Deposit record.
func NewDeposit(day Date, memo string, amount Money) Deposit {
	return Deposit{baseRec: baseRec{Record: RecDeposit, Date: day, Memo: memo}, Amount: amount}
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseRec)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Deposit.
func (t *Deposit) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseRec
		amountRec
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseRec = temp.baseRec
	t.Amount = temp.Money()
	return nil
}

func (t Deposit) Equal(other Record) bool {
	o, ok := other.(Deposit)
	return ok && t.baseRec == o.baseRec && t.Amount.Equal(o.Amount)
}

// Validate checks that the deposited amount is positive.
func (t Deposit) Validate(j *Journal) (Record, error) {
	t.baseRec.Validate()
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("deposit amount must be positive, got %s", t.Amount)
	}
	return t, nil
}

// Withdraw represents cash taken out of the trading capital. The amount is
// stored positive and netted negative in aggregation.
type Withdraw struct {
	baseRec
	Amount Money // Amount is the withdrawn cash, always positive.
}

// NewWithdraw creates a new Withdraw record.
func NewWithdraw(day Date, memo string, amount Money) Withdraw {
	return Withdraw{baseRec: baseRec{Record: RecWithdraw, Date: day, Memo: memo}, Amount: amount}
}

// MarshalJSON implements the json.Marshaler interface for Withdraw.
func (t Withdraw) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseRec)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Withdraw.
func (t *Withdraw) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseRec
		amountRec
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseRec = temp.baseRec
	t.Amount = temp.Money()
	return nil
}

func (t Withdraw) Equal(other Record) bool {
	o, ok := other.(Withdraw)
	return ok && t.baseRec == o.baseRec && t.Amount.Equal(o.Amount)
}

// Validate checks that the withdrawn amount is positive.
func (t Withdraw) Validate(j *Journal) (Record, error) {
	t.baseRec.Validate()
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("withdrawal amount must be positive, got %s", t.Amount)
	}
	return t, nil
}

// YearlyCapital declares the starting capital for a year. It anchors the
// true-portfolio recurrence at the floor month of that year. At most one per
// year; recording a new one replaces the previous declaration.
type YearlyCapital struct {
	baseRec
	Year   int   // Year is the anchored calendar year.
	Amount Money // Amount is the declared starting capital.
}

// NewYearlyCapital creates a new YearlyCapital record. The record date
// doubles as the declaration timestamp.
func NewYearlyCapital(day Date, year int, amount Money) YearlyCapital {
	return YearlyCapital{baseRec: baseRec{Record: RecYearlyCapital, Date: day}, Year: year, Amount: amount}
}

// MarshalJSON implements the json.Marshaler interface for YearlyCapital.
func (t YearlyCapital) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseRec)
	w.Append("year", t.Year)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for YearlyCapital.
func (t *YearlyCapital) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseRec
		amountRec
		Year int `json:"year"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseRec = temp.baseRec
	t.Year = temp.Year
	t.Amount = temp.Money()
	return nil
}

func (t YearlyCapital) Equal(other Record) bool {
	o, ok := other.(YearlyCapital)
	return ok && t.baseRec == o.baseRec && t.Year == o.Year && t.Amount.Equal(o.Amount)
}

// Validate checks the declared year and amount.
func (t YearlyCapital) Validate(j *Journal) (Record, error) {
	t.baseRec.Validate()
	if t.Year == 0 {
		t.Year = t.Date.Year()
	}
	if t.Year < 1900 || t.Year > 9999 {
		return t, fmt.Errorf("yearly capital year %d is out of range", t.Year)
	}
	if t.Amount.IsNegative() {
		return t, fmt.Errorf("yearly capital must not be negative, got %s", t.Amount)
	}
	return t, nil
}

// MonthlyOverride pins the starting capital of one specific month, taking
// precedence over the recurrence for that month. At most one per month;
// recording a new one replaces the previous declaration.
type MonthlyOverride struct {
	baseRec
	Month  Month // Month is the overridden calendar month.
	Amount Money // Amount is the pinned starting capital.
}

// NewMonthlyOverride creates a new MonthlyOverride record. The record date
// doubles as the declaration timestamp.
func NewMonthlyOverride(day Date, month Month, amount Money) MonthlyOverride {
	return MonthlyOverride{baseRec: baseRec{Record: RecMonthlyOverride, Date: day}, Month: month, Amount: amount}
}

// MarshalJSON implements the json.Marshaler interface for MonthlyOverride.
func (t MonthlyOverride) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseRec)
	w.Append("month", t.Month.Name())
	w.Append("year", t.Month.Year())
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for MonthlyOverride.
// Month names are normalized, so files written with long names still load.
func (t *MonthlyOverride) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseRec
		amountRec
		Month string `json:"month"`
		Year  int    `json:"year"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	mon, err := ParseMonthName(temp.Month)
	if err != nil {
		return err
	}
	t.baseRec = temp.baseRec
	t.Month = NewMonth(temp.Year, mon)
	t.Amount = temp.Money()
	return nil
}

func (t MonthlyOverride) Equal(other Record) bool {
	o, ok := other.(MonthlyOverride)
	return ok && t.baseRec == o.baseRec && t.Month == o.Month && t.Amount.Equal(o.Amount)
}

// Validate checks the overridden month and amount.
func (t MonthlyOverride) Validate(j *Journal) (Record, error) {
	t.baseRec.Validate()
	if t.Month.IsZero() {
		return t, fmt.Errorf("monthly override has no month")
	}
	if t.Amount.IsNegative() {
		return t, fmt.Errorf("monthly override must not be negative, got %s", t.Amount)
	}
	return t, nil
}

// CapitalChange is the engine-side view of a deposit or withdrawal, supplied
// to the true-portfolio computation as a plain value.
type CapitalChange struct {
	ID     string
	Date   Date
	Amount Money      // always positive
	Kind   RecordType // RecDeposit or RecWithdraw
	Memo   string
}

// Signed returns the amount netted by kind: deposits positive, withdrawals
// negative.
func (c CapitalChange) Signed() Money {
	if c.Kind == RecWithdraw {
		return c.Amount.Neg()
	}
	return c.Amount
}

// Change returns the engine-side view of the deposit.
func (t Deposit) Change() CapitalChange {
	return CapitalChange{ID: t.ID, Date: t.Date, Amount: t.Amount, Kind: RecDeposit, Memo: t.Memo}
}

// Change returns the engine-side view of the withdrawal.
func (t Withdraw) Change() CapitalChange {
	return CapitalChange{ID: t.ID, Date: t.Date, Amount: t.Amount, Kind: RecWithdraw, Memo: t.Memo}
}
