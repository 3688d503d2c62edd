package agent

import (
	"context"
	"fmt"

	"github.com/quillfox/tradebook"
	"github.com/quillfox/tradebook/docs"
	"github.com/quillfox/tradebook/renderer"
	"google.golang.org/genai"
)

// NewBookkeeper returns the expert in charge of the user's trading journal.
//
// load is called on every tool invocation, so the expert always works on
// the journal as it currently is on disk.
func NewBookkeeper(load func() (*tradebook.Journal, error)) *Expert {
	lib := []Function{
		monthlyPortfolios(load),
		riskMetrics(load),
		topPerformers(load),
		openPositions(load),
	}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's trading journal.
		He can compute the monthly capital, the risk metrics, the best and worst symbols, and the
		open positions.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's trading journal.
				You know how to use the Tools to extract the relevant figures about the user's trading.
				You are part of a team of experts, yours is everything recorded in the journal. They might
				ask you questions in approximative language, pardon them and figure out what they meant.

				Use the available tools to get information about the user's trading
				  - monthly capital, month by month
				  - risk and win/loss metrics
				  - best and worst symbols
				  - open positions on a date
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// basisDescription documents the optional accounting basis argument shared
// by the bookkeeper tools.
var basisDescription = `The accounting basis to compute under, "accrual" or "cash". Accrual is the default.
Below is the doc about accounting bases:

` + must(docs.GetTopic("basis"))

// dateDescription documents the optional date argument.
var dateDescription = `The report date, today by default.
Below is the doc about the accepted date formats:

` + must(docs.GetTopic("dates"))

func monthlyPortfolios(load func() (*tradebook.Journal, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "MonthlyPortfolios",
			Description: `MonthlyPortfolios reports the capital ledger month by month: starting capital,
			net deposits and withdrawals, realized P/L, monthly return and final capital.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"basis": {
						Type:        genai.TypeString,
						Description: basisDescription,
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the monthly capital, one row per month plus a total row.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			basis, err := parseBasis(args)
			if err != nil {
				return errorResponse(id, "MonthlyPortfolios", err)
			}
			journal, err := load()
			if err != nil {
				return errorResponse(id, "MonthlyPortfolios", err)
			}
			tp := journal.TruePortfolio(basis)
			return outputResponse(id, "MonthlyPortfolios", renderer.MonthlyMarkdown(tp.AllMonthlyPortfolios(), basis))
		},
	}
}

func riskMetrics(load func() (*tradebook.Journal, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "RiskMetrics",
			Description: `RiskMetrics reports the risk and win/loss figures of the journal: annualized
			return, volatility, max drawdown, Sharpe, Sortino and Calmar ratios, win rate, profit
			factor, expectancy and streaks, plus the monthly return series.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"basis": {
						Type:        genai.TypeString,
						Description: basisDescription,
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report with a ratio table, a win/loss table and the monthly series.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			basis, err := parseBasis(args)
			if err != nil {
				return errorResponse(id, "RiskMetrics", err)
			}
			journal, err := load()
			if err != nil {
				return errorResponse(id, "RiskMetrics", err)
			}
			tp := journal.TruePortfolio(basis)
			return outputResponse(id, "RiskMetrics", renderer.MetricsMarkdown(tp.RiskMetrics(), basis))
		},
	}
}

func topPerformers(load func() (*tradebook.Journal, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "TopPerformers",
			Description: `TopPerformers ranks the symbols of the journal by realized P/L and reports
			the best and the worst ones.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"basis": {
						Type:        genai.TypeString,
						Description: basisDescription,
					},
					"limit": {
						Type:        genai.TypeInteger,
						Description: "How many symbols to report on each side. Default is 5.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report with a gainers table and a losers table.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			basis, err := parseBasis(args)
			if err != nil {
				return errorResponse(id, "TopPerformers", err)
			}
			limit, err := parseLimit(args, 5)
			if err != nil {
				return errorResponse(id, "TopPerformers", err)
			}
			journal, err := load()
			if err != nil {
				return errorResponse(id, "TopPerformers", err)
			}
			return outputResponse(id, "TopPerformers", renderer.TopMarkdown(journal.Trades(), basis, limit))
		},
	}
}

func openPositions(load func() (*tradebook.Journal, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "OpenPositions",
			Description: `OpenPositions lists the positions still open on a date, marked at their
			recorded market price, with their unrealized P/L and the risk at stop.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: dateDescription,
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report with one row per open position and the total market value.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args)
			if err != nil {
				return errorResponse(id, "OpenPositions", err)
			}
			journal, err := load()
			if err != nil {
				return errorResponse(id, "OpenPositions", err)
			}
			report, err := tradebook.OpenPositions(journal.Trades(), on, nil)
			if err != nil {
				return errorResponse(id, "OpenPositions", err)
			}
			return outputResponse(id, "OpenPositions", renderer.PositionsMarkdown(report))
		},
	}
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func outputResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func parseBasis(args map[string]any) (tradebook.AccountingBasis, error) {
	ibasis, hasBasis := args["basis"]
	if !hasBasis {
		return tradebook.Accrual, nil
	}
	sbasis, ok := ibasis.(string)
	if !ok {
		return tradebook.Accrual, fmt.Errorf("argument 'basis' is not a string as expected but %T", ibasis)
	}
	basis, err := tradebook.ParseBasis(sbasis)
	if err != nil {
		return tradebook.Accrual, fmt.Errorf("argument 'basis' must be %q or %q, got %q", tradebook.Accrual, tradebook.Cash, sbasis)
	}
	return basis, nil
}

func parseDate(args map[string]any) (tradebook.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return tradebook.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return tradebook.Date{}, fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	on, err := tradebook.ParseDate(sdate)
	if err != nil {
		return tradebook.Date{}, fmt.Errorf("argument 'date' is not a valid date: %w", err)
	}
	return on, nil
}

// parseLimit reads the optional 'limit' argument. JSON numbers arrive as
// float64 in the call arguments.
func parseLimit(args map[string]any, def int) (int, error) {
	ilimit, hasLimit := args["limit"]
	if !hasLimit {
		return def, nil
	}
	flimit, ok := ilimit.(float64)
	if !ok {
		return def, fmt.Errorf("argument 'limit' is not a number as expected but %T", ilimit)
	}
	if flimit < 1 {
		return def, fmt.Errorf("argument 'limit' must be at least 1, got %v", flimit)
	}
	return int(flimit), nil
}
