package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quillfox/tradebook"
	"google.golang.org/genai"
)

func inr(v float64) tradebook.Money { return tradebook.M(v, "INR") }

// journalOf returns a loader over a fixed in-memory journal.
func journalOf(recs ...tradebook.Record) func() (*tradebook.Journal, error) {
	j := tradebook.NewJournal()
	j.Append(recs...)
	return func() (*tradebook.Journal, error) { return j, nil }
}

func output(t *testing.T, resp *genai.FunctionResponse) string {
	t.Helper()
	if e, ok := resp.Response["error"]; ok {
		t.Fatalf("unexpected tool error: %v", e)
	}
	s, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("tool response has no string output: %v", resp.Response)
	}
	return s
}

func TestBookkeeperTools(t *testing.T) {
	day := tradebook.NewDate(2024, time.January, 10)
	trade := tradebook.NewTrade(day, "T1", "", "TCS", tradebook.Buy,
		tradebook.Lot{Price: inr(100), Quantity: tradebook.Q(10)},
	).WithExit(tradebook.Exit{Date: day.Add(5), Lot: tradebook.Lot{Price: inr(120), Quantity: tradebook.Q(10)}})

	bk := NewBookkeeper(journalOf(
		tradebook.NewDeposit(day, "seed", inr(100000)),
		trade,
	))
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{
			name: "MonthlyPortfolios",
			args: map[string]any{"basis": "cash"},
			want: []string{"# Monthly Capital (cash)", "Jan 2024"},
		},
		{
			name: "RiskMetrics",
			args: nil,
			want: []string{"# Risk Metrics (accrual)", "Win Rate"},
		},
		{
			name: "TopPerformers",
			args: map[string]any{"limit": 3.0},
			want: []string{"# Top Performers (accrual)", "TCS"},
		},
		{
			// Between entry and exit the position is still open.
			name: "OpenPositions",
			args: map[string]any{"date": "2024-01-12"},
			want: []string{"# Open Positions on 2024-01-12", "| T1 | TCS | buy |"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := bk.Library(ctx, &genai.FunctionCall{ID: "c1", Name: tc.name, Args: tc.args})
			if resp.Name != tc.name {
				t.Errorf("response Name = %q, want %q", resp.Name, tc.name)
			}
			got := output(t, resp)
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("%s output missing %q:\n%s", tc.name, want, got)
				}
			}
		})
	}

	t.Run("unknown function", func(t *testing.T) {
		resp := bk.Library(ctx, &genai.FunctionCall{ID: "c2", Name: "Nope"})
		if _, ok := resp.Response["error"]; !ok {
			t.Fatalf("expected an error response, got %v", resp.Response)
		}
	})
}

func TestBookkeeperLoadError(t *testing.T) {
	bk := NewBookkeeper(func() (*tradebook.Journal, error) {
		return nil, errors.New("journal is gone")
	})
	resp := bk.Library(context.Background(), &genai.FunctionCall{ID: "c1", Name: "MonthlyPortfolios"})
	e, ok := resp.Response["error"].(string)
	if !ok {
		t.Fatalf("expected an error response, got %v", resp.Response)
	}
	if !strings.Contains(e, "journal is gone") {
		t.Errorf("error = %q, want the loader failure", e)
	}
}

func TestParseBasis(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    tradebook.AccountingBasis
		wantErr bool
	}{
		{name: "missing defaults to accrual", args: map[string]any{}, want: tradebook.Accrual},
		{name: "accrual", args: map[string]any{"basis": "accrual"}, want: tradebook.Accrual},
		{name: "cash", args: map[string]any{"basis": "cash"}, want: tradebook.Cash},
		{name: "not a string", args: map[string]any{"basis": 12.0}, wantErr: true},
		{name: "unknown value", args: map[string]any{"basis": "mark-to-market"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseBasis(tc.args)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseBasis() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("parseBasis() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    tradebook.Date
		wantErr bool
	}{
		{name: "missing defaults to today", args: map[string]any{}, want: tradebook.Today()},
		{name: "iso date", args: map[string]any{"date": "2024-01-12"}, want: tradebook.NewDate(2024, time.January, 12)},
		{name: "not a string", args: map[string]any{"date": 12.0}, wantErr: true},
		{name: "garbage", args: map[string]any{"date": "someday"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDate(tc.args)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseDate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("parseDate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    int
		wantErr bool
	}{
		{name: "missing uses default", args: map[string]any{}, want: 5},
		{name: "number", args: map[string]any{"limit": 3.0}, want: 3},
		{name: "not a number", args: map[string]any{"limit": "three"}, wantErr: true},
		{name: "zero", args: map[string]any{"limit": 0.0}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLimit(tc.args, 5)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseLimit() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("parseLimit() = %d, want %d", got, tc.want)
			}
		})
	}
}
