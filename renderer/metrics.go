package renderer

import (
	"fmt"

	"github.com/quillfox/tradebook"
)

// MetricsReport is the view model of the risk metrics report.
type MetricsReport struct {
	AsOf  string
	Basis tradebook.AccountingBasis
	tradebook.RiskMetrics
}

// NewMetricsReport builds the view model from a computed metric set.
func NewMetricsReport(m tradebook.RiskMetrics, basis tradebook.AccountingBasis) *MetricsReport {
	return &MetricsReport{AsOf: asOf(), Basis: basis, RiskMetrics: m}
}

// ProfitFactorString renders the profit factor, or an infinity sign when the
// series has wins and no loss at all.
func (r *MetricsReport) ProfitFactorString() string {
	if r.Capped() {
		return "∞"
	}
	return fmt.Sprintf("%.2f", r.ProfitFactor)
}

// CurrentStreakString renders the running streak with its direction.
func (r *MetricsReport) CurrentStreakString() string {
	switch {
	case r.CurrentStreak > 0:
		return fmt.Sprintf("%d wins", r.CurrentStreak)
	case r.CurrentStreak < 0:
		return fmt.Sprintf("%d losses", -r.CurrentStreak)
	}
	return "none"
}

// MetricsMarkdown renders the metric set to a markdown string.
func MetricsMarkdown(m tradebook.RiskMetrics, basis tradebook.AccountingBasis) string {
	partials := map[string]string{
		"metrics_title":   "metrics_title.md",
		"metrics_ratios":  "metrics_ratios.md",
		"metrics_winloss": "metrics_winloss.md",
		"metrics_series":  "metrics_series.md",
	}
	return renderTemplate("metrics", "metrics.md", partials, NewMetricsReport(m, basis))
}
