package tradebook

import (
	"slices"
	"testing"
	"time"
)

func TestNewMonth_Normalizes(t *testing.T) {
	if got, want := NewMonth(2024, 13), NewMonth(2025, time.January); got != want {
		t.Errorf("NewMonth(2024, 13) = %s, want %s", got, want)
	}
	if got, want := NewMonth(2024, 0), NewMonth(2023, time.December); got != want {
		t.Errorf("NewMonth(2024, 0) = %s, want %s", got, want)
	}
}

func TestMonth_Bounds(t *testing.T) {
	feb := NewMonth(2024, time.February)
	if got, want := feb.Start(), NewDate(2024, time.February, 1); got != want {
		t.Errorf("Start() = %s, want %s", got, want)
	}
	// 2024 is a leap year.
	if got, want := feb.End(), NewDate(2024, time.February, 29); got != want {
		t.Errorf("End() = %s, want %s", got, want)
	}
	if !feb.Contains(NewDate(2024, time.February, 15)) || feb.Contains(NewDate(2024, time.March, 1)) {
		t.Error("Contains() does not respect the month bounds")
	}
	if got := MonthOf(NewDate(2024, time.February, 15)); got != feb {
		t.Errorf("MonthOf() = %s, want %s", got, feb)
	}
}

func TestMonth_NextPrev(t *testing.T) {
	dec := NewMonth(2023, time.December)
	jan := NewMonth(2024, time.January)
	if dec.Next() != jan {
		t.Errorf("Next() across the year boundary = %s, want %s", dec.Next(), jan)
	}
	if jan.Prev() != dec {
		t.Errorf("Prev() across the year boundary = %s, want %s", jan.Prev(), dec)
	}
	if !dec.Before(jan) || jan.Before(dec) || !jan.After(dec) {
		t.Error("Before/After ordering is wrong across the year boundary")
	}
}

func TestMonth_Until(t *testing.T) {
	got := slices.Collect(NewMonth(2023, time.November).Until(NewMonth(2024, time.February)))
	want := []Month{
		NewMonth(2023, time.November),
		NewMonth(2023, time.December),
		NewMonth(2024, time.January),
		NewMonth(2024, time.February),
	}
	if !slices.Equal(got, want) {
		t.Errorf("Until() = %v, want %v", got, want)
	}

	if got := slices.Collect(NewMonth(2024, time.March).Until(NewMonth(2024, time.January))); len(got) != 0 {
		t.Errorf("Until() backwards yielded %v, want nothing", got)
	}
}

func TestParseMonthName(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Month
		err      bool
	}{
		{"Jan", time.January, false},
		{"january", time.January, false},
		{"JULY", time.July, false},
		{"  mar  ", time.March, false},
		{"7", time.July, false},
		{"12", time.December, false},
		{"0", 0, true},
		{"13", 0, true},
		{"Janvier", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonthName(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseMonthName(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseMonthName(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	jan24 := NewMonth(2024, time.January)
	tests := []struct {
		input    string
		expected Month
		err      bool
	}{
		{"Jan 2024", jan24, false},
		{"January 2024", jan24, false},
		{"2024-01", jan24, false},
		{"1 2024", jan24, false},
		{"Jane 2024", Month{}, true},
		{"Jan twenty24", Month{}, true},
		{"2024-13", Month{}, true},
		{"onlyone", Month{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseMonth(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseMonth(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMonth_Strings(t *testing.T) {
	m := NewMonth(2024, time.January)
	if got := m.String(); got != "Jan 2024" {
		t.Errorf("String() = %q, want %q", got, "Jan 2024")
	}
	if got := m.Name(); got != "Jan" {
		t.Errorf("Name() = %q, want %q", got, "Jan")
	}
}
