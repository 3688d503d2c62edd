package renderer

import (
	"github.com/quillfox/tradebook"
)

// PositionsReport is the view model of the open positions report.
type PositionsReport struct {
	AsOf   string
	Report *tradebook.PositionReport
}

// NewPositionsReport builds the view model.
func NewPositionsReport(report *tradebook.PositionReport) *PositionsReport {
	return &PositionsReport{AsOf: asOf(), Report: report}
}

// PositionsMarkdown renders the open positions to a markdown string.
func PositionsMarkdown(report *tradebook.PositionReport) string {
	partials := map[string]string{
		"positions_title": "positions_title.md",
		"positions_table": "positions_table.md",
	}
	return renderTemplate("positions", "positions.md", partials, NewPositionsReport(report))
}
