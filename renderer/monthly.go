package renderer

import (
	"github.com/quillfox/tradebook"
)

// MonthlyReport is the view model of the monthly capital table.
type MonthlyReport struct {
	AsOf         string
	Basis        tradebook.AccountingBasis
	Months       []MonthRow
	TotalChanges tradebook.Money
	TotalPL      tradebook.Money
	Final        tradebook.Money // the last month's final capital
}

// MonthRow is one rendered month of the series.
type MonthRow struct {
	tradebook.MonthPortfolio
}

// Return is the month's P/L over its starting capital.
func (r MonthRow) Return() tradebook.Percent { return r.PL.PercentOf(r.Starting) }

// NewMonthlyReport builds the view model from a chronological monthly series.
func NewMonthlyReport(months []tradebook.MonthPortfolio, basis tradebook.AccountingBasis) *MonthlyReport {
	r := &MonthlyReport{AsOf: asOf(), Basis: basis}
	for _, m := range months {
		r.Months = append(r.Months, MonthRow{m})
		r.TotalChanges = r.TotalChanges.Add(m.ChangesNet)
		r.TotalPL = r.TotalPL.Add(m.PL)
		r.Final = m.Final
	}
	return r
}

// MonthlyMarkdown renders the monthly capital series to a markdown string.
func MonthlyMarkdown(months []tradebook.MonthPortfolio, basis tradebook.AccountingBasis) string {
	partials := map[string]string{
		"monthly_title": "monthly_title.md",
		"monthly_table": "monthly_table.md",
	}
	return renderTemplate("monthly", "monthly.md", partials, NewMonthlyReport(months, basis))
}
