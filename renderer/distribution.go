package renderer

import (
	"github.com/quillfox/tradebook"
)

// DistributionReport is the view model of the weekday and setup breakdowns.
type DistributionReport struct {
	AsOf     string
	Basis    tradebook.AccountingBasis
	Weekdays []tradebook.WeekdayPerf
	Setups   []tradebook.SetupPerf
}

// NewDistributionReport groups the trades' position P/L and builds the view model.
func NewDistributionReport(trades []tradebook.Trade, basis tradebook.AccountingBasis) *DistributionReport {
	return &DistributionReport{
		AsOf:     asOf(),
		Basis:    basis,
		Weekdays: tradebook.WeekdayDistribution(trades, basis),
		Setups:   tradebook.SetupDistribution(trades, basis),
	}
}

// DistributionMarkdown renders both breakdowns to a markdown string.
func DistributionMarkdown(trades []tradebook.Trade, basis tradebook.AccountingBasis) string {
	partials := map[string]string{
		"distribution_title":    "distribution_title.md",
		"distribution_weekdays": "distribution_weekdays.md",
		"distribution_setups":   "distribution_setups.md",
	}
	return renderTemplate("distribution", "distribution.md", partials, NewDistributionReport(trades, basis))
}
