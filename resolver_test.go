package tradebook

import (
	"strings"
	"testing"
	"time"
)

func lot(price float64, qty int) Lot {
	return Lot{Price: INR(price), Quantity: Q(qty)}
}

func exitOn(day Date, price float64, qty int) Exit {
	return Exit{Date: day, Lot: lot(price, qty)}
}

func TestResolve_FIFOMatching(t *testing.T) {
	// Entries (100,10) then (110,5), one exit (120,12):
	// 10×(120-100) + 2×(120-110) = 200 + 20 = 220.
	trade := NewTrade(NewDate(2024, time.January, 10), "T1", "", "RELIANCE", Buy,
		lot(100, 10), lot(110, 5))
	trade = trade.WithExit(exitOn(NewDate(2024, time.January, 20), 120, 12))

	rt := Resolve(trade)

	if want := INR(220); !rt.RealizedPL.Equal(want) {
		t.Errorf("RealizedPL = %s, want %s", rt.RealizedPL, want)
	}
	if want := Q(15); !rt.EnteredQty.Equal(want) {
		t.Errorf("EnteredQty = %s, want %s", rt.EnteredQty, want)
	}
	if want := Q(12); !rt.ExitedQty.Equal(want) {
		t.Errorf("ExitedQty = %s, want %s", rt.ExitedQty, want)
	}
	if want := Q(3); !rt.OpenQty.Equal(want) {
		t.Errorf("OpenQty = %s, want %s", rt.OpenQty, want)
	}
	if want := INR(120); !rt.AvgExit.Equal(want) {
		t.Errorf("AvgExit = %s, want %s", rt.AvgExit, want)
	}
	if len(rt.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", rt.Warnings)
	}
}

func TestResolve(t *testing.T) {
	jan10 := NewDate(2024, time.January, 10)
	jan20 := NewDate(2024, time.January, 20)
	feb10 := NewDate(2024, time.February, 10)

	testCases := []struct {
		name        string
		trade       Trade
		avgEntry    Money
		openQty     Quantity
		realized    Money
		stockMove   Percent
		holdingDays int
		warnings    int
	}{
		{
			name:     "open single lot",
			trade:    NewTrade(jan10, "T1", "", "TCS", Buy, lot(100, 10)),
			avgEntry: INR(100),
			openQty:  Q(10),
		},
		{
			name:     "pyramided entries average",
			trade:    NewTrade(jan10, "T1", "", "TCS", Buy, lot(100, 10), lot(130, 5)),
			avgEntry: INR(110), // (1000+650)/15
			openQty:  Q(15),
		},
		{
			name: "full exit on the buy side",
			trade: NewTrade(jan10, "T1", "", "TCS", Buy, lot(100, 10)).
				WithExit(exitOn(jan20, 120, 10)),
			avgEntry:    INR(100),
			openQty:     Q(0),
			realized:    INR(200),
			stockMove:   20,
			holdingDays: 10,
		},
		{
			name: "sell side gains when price falls",
			trade: NewTrade(jan10, "T1", "", "TCS", Sell, lot(100, 10)).
				WithExit(exitOn(jan20, 90, 10)),
			avgEntry:    INR(100),
			openQty:     Q(0),
			realized:    INR(100), // 10×(100-90)
			stockMove:   10,
			holdingDays: 10,
		},
		{
			name: "holding days stop at the earliest exit",
			trade: NewTrade(jan10, "T1", "", "TCS", Buy, lot(100, 50)).
				WithExit(exitOn(feb10, 90, 30)).
				WithExit(exitOn(jan20, 110, 20)),
			avgEntry:    INR(100),
			openQty:     Q(0),
			realized:    INR(-100), // 20×10 − 30×10
			stockMove:   -2,        // avg exit 98 vs 100
			holdingDays: 10,
		},
		{
			name: "quantity without price is excluded",
			trade: NewTrade(jan10, "T1", "", "TCS", Buy,
				lot(100, 10), Lot{Quantity: Q(5)}),
			avgEntry: INR(100),
			openQty:  Q(10),
			warnings: 1,
		},
		{
			name: "over-exit floors the open quantity",
			trade: Trade{
				baseRec: baseRec{Record: RecTrade, Date: jan10, ID: "T1"},
				Symbol:  "TCS", Side: Buy, Status: Closed,
				Entries: []Lot{lot(100, 10)},
				Exits:   []Exit{exitOn(jan20, 110, 15)},
			},
			avgEntry:    INR(100),
			openQty:     Q(0),
			realized:    INR(100), // only 10 matched
			stockMove:   10,
			holdingDays: 10,
			warnings:    1,
		},
		{
			name: "status open contradicts exits",
			trade: Trade{
				baseRec: baseRec{Record: RecTrade, Date: jan10, ID: "T1"},
				Symbol:  "TCS", Side: Buy, Status: Open,
				Entries: []Lot{lot(100, 10)},
				Exits:   []Exit{exitOn(jan20, 110, 5)},
			},
			avgEntry:    INR(100),
			openQty:     Q(5),
			realized:    INR(50),
			stockMove:   10,
			holdingDays: 10,
			warnings:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rt := Resolve(tc.trade)
			if !moneyEq(rt.AvgEntry, tc.avgEntry) {
				t.Errorf("AvgEntry = %s, want %s", rt.AvgEntry, tc.avgEntry)
			}
			if !rt.OpenQty.Equal(tc.openQty) {
				t.Errorf("OpenQty = %s, want %s", rt.OpenQty, tc.openQty)
			}
			if !moneyEq(rt.RealizedPL, tc.realized) {
				t.Errorf("RealizedPL = %s, want %s", rt.RealizedPL, tc.realized)
			}
			if !rt.StockMove.Equal(tc.stockMove) {
				t.Errorf("StockMove = %s, want %s", rt.StockMove, tc.stockMove)
			}
			if rt.HoldingDays != tc.holdingDays {
				t.Errorf("HoldingDays = %d, want %d", rt.HoldingDays, tc.holdingDays)
			}
			if len(rt.Warnings) != tc.warnings {
				t.Errorf("got %d warnings %v, want %d", len(rt.Warnings), rt.Warnings, tc.warnings)
			}
		})
	}
}

func TestResolve_ZeroDateExitWarns(t *testing.T) {
	trade := Trade{
		baseRec: baseRec{Record: RecTrade, Date: NewDate(2024, time.January, 10), ID: "T1"},
		Symbol:  "TCS", Side: Buy, Status: Closed,
		Entries: []Lot{lot(100, 10)},
		Exits:   []Exit{{Lot: lot(110, 10)}},
	}
	rt := Resolve(trade)
	if len(rt.Warnings) != 1 {
		t.Fatalf("got %d warnings %v, want 1", len(rt.Warnings), rt.Warnings)
	}
	if !strings.Contains(rt.Warnings[0].Reason, "no date") {
		t.Errorf("warning = %v, want a missing-date reason", rt.Warnings[0])
	}
	// The undated exit still realizes P/L.
	if want := INR(100); !rt.RealizedPL.Equal(want) {
		t.Errorf("RealizedPL = %s, want %s", rt.RealizedPL, want)
	}
	if rt.HoldingDays != 0 {
		t.Errorf("HoldingDays = %d, want 0 without a dated exit", rt.HoldingDays)
	}
}

func TestResolvedTrade_ExitPL(t *testing.T) {
	// Entered 50 @ 100, exited 20 @ 110 then 30 @ 90: per-exit P/L must
	// sum back to the FIFO total.
	trade := NewTrade(NewDate(2024, time.January, 5), "T1", "", "INFY", Buy, lot(100, 50)).
		WithExit(exitOn(NewDate(2024, time.January, 15), 110, 20)).
		WithExit(exitOn(NewDate(2024, time.February, 10), 90, 30))

	rt := Resolve(trade)

	if want := INR(200); !rt.ExitPL(0).Equal(want) {
		t.Errorf("ExitPL(0) = %s, want %s", rt.ExitPL(0), want)
	}
	if want := INR(-300); !rt.ExitPL(1).Equal(want) {
		t.Errorf("ExitPL(1) = %s, want %s", rt.ExitPL(1), want)
	}
	total := rt.ExitPL(0).Add(rt.ExitPL(1))
	if !total.Equal(rt.RealizedPL) {
		t.Errorf("sum of ExitPL = %s, want RealizedPL %s", total, rt.RealizedPL)
	}
}

func TestResolvedTrade_ExitPL_SpansEntryLots(t *testing.T) {
	// One exit consuming two entry lots keeps its whole P/L on that exit.
	trade := NewTrade(NewDate(2024, time.January, 5), "T1", "", "INFY", Buy,
		lot(100, 10), lot(110, 5)).
		WithExit(exitOn(NewDate(2024, time.January, 20), 120, 12))

	rt := Resolve(trade)
	if want := INR(220); !rt.ExitPL(0).Equal(want) {
		t.Errorf("ExitPL(0) = %s, want %s", rt.ExitPL(0), want)
	}
}
