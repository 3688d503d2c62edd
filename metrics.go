package tradebook

import "math"

// Default annualization inputs. The journal is INR-denominated, so the
// risk-free default follows the Indian short rate.
const (
	DefaultRiskFreeRate = 6.0 // percent, annual
	defaultTradingDays  = 252
)

// Ratio bounds: degenerate series clamp here instead of propagating NaN or
// infinities to callers.
const (
	sharpeBound       = 10.0
	calmarBound       = 100.0
	profitFactorBound = 100.0
)

// MetricPoint is one month of the drawdown series.
type MetricPoint struct {
	Month      Month
	Return     Percent // month P/L over its starting capital
	CummPF     Percent // cumulative profit factor: running sum of monthly returns
	Drawdown   Percent // distance below the running peak, never negative
	NewPeak    bool    // the cumulative series strictly exceeded its previous peak
	Volatility Percent // population stddev of returns over the trailing 3 months
}

// RiskMetrics summarizes risk and consistency over a monthly capital series.
// Every ratio is finite: division by zero resolves to 0 and absurd values
// clamp to their bound.
type RiskMetrics struct {
	Points      []MetricPoint
	MaxDrawdown Percent

	AnnualReturn Percent
	AnnualVol    Percent
	RiskFreeRate Percent // annual rate the ratios were computed against
	Sharpe       float64 // in [-10, 10]
	Sortino      float64 // in [-10, 10]
	Calmar       float64 // in [-100, 100]

	Wins, Losses  int
	WinRate       Percent
	ProfitFactor  float64 // gross win over gross loss, capped at 100
	GrossWin      Money
	GrossLoss     Money // stored positive
	AvgWin        Money
	AvgLoss       Money // stored positive
	Expectancy    Money // net P/L per position
	MaxWinStreak  int
	MaxLossStreak int
	CurrentStreak int // >0 consecutive wins, <0 consecutive losses
}

// Capped reports whether the profit factor hit its bound because the series
// has wins and no loss at all. Display layers render it as infinite.
func (m RiskMetrics) Capped() bool {
	return m.Wins > 0 && m.Losses == 0 && m.GrossLoss.IsZero()
}

type metricsConfig struct {
	riskFree    float64 // annual, percent
	tradingDays int
	positions   []PositionPL
	curve       []EquityPoint
}

// MetricsOption customizes ComputeRiskMetrics.
type MetricsOption func(*metricsConfig)

// WithRiskFreeRate sets the annual risk-free rate, in percent, used by the
// Sharpe and Sortino ratios. The default is DefaultRiskFreeRate.
func WithRiskFreeRate(annualPct float64) MetricsOption {
	return func(c *metricsConfig) { c.riskFree = annualPct }
}

// WithTradingDays sets the number of periods per year used to annualize
// daily statistics. The default is 252.
func WithTradingDays(n int) MetricsOption {
	return func(c *metricsConfig) {
		if n > 0 {
			c.tradingDays = n
		}
	}
}

// WithPositions supplies chronologically ordered per-position P/L rows for
// the win/loss statistics and streaks.
func WithPositions(rows []PositionPL) MetricsOption {
	return func(c *metricsConfig) { c.positions = rows }
}

// WithEquityCurve supplies a bootstrapped daily equity curve for the
// annualized ratio inputs. Without one, the ratios annualize the monthly
// series instead.
func WithEquityCurve(curve []EquityPoint) MetricsOption {
	return func(c *metricsConfig) { c.curve = curve }
}

// ComputeRiskMetrics derives the full metric set from a chronological
// monthly capital series. It never fails: empty, single-point and all-zero
// series yield zeroed metrics, not NaNs.
func ComputeRiskMetrics(series []MonthPortfolio, opts ...MetricsOption) RiskMetrics {
	cfg := metricsConfig{riskFree: DefaultRiskFreeRate, tradingDays: defaultTradingDays}
	for _, opt := range opts {
		opt(&cfg)
	}

	var m RiskMetrics
	m.RiskFreeRate = Percent(cfg.riskFree)

	// Monthly drawdown series. The running peak starts at the zero
	// baseline the cumulative series itself starts from, so the first
	// profitable month is already a new peak.
	var cumm, peak, maxDD float64
	monthly := make([]float64, 0, len(series))
	for _, mp := range series {
		ret := float64(mp.PL.PercentOf(mp.Starting))
		cumm += ret
		newPeak := cumm > peak
		if newPeak {
			peak = cumm
		}
		dd := peak - cumm
		if dd > maxDD {
			maxDD = dd
		}
		monthly = append(monthly, ret)
		var vol float64
		if len(monthly) >= 3 {
			vol = popStddev(monthly[len(monthly)-3:])
		}
		m.Points = append(m.Points, MetricPoint{
			Month:      mp.Month,
			Return:     Percent(ret),
			CummPF:     Percent(cumm),
			Drawdown:   Percent(dd),
			NewPeak:    newPeak,
			Volatility: Percent(vol),
		})
	}
	m.MaxDrawdown = Percent(maxDD)

	// Annualized ratios, from the daily curve when one is supplied,
	// otherwise from the monthly returns.
	rets, periods := dailyReturns(cfg.curve), float64(cfg.tradingDays)
	if len(rets) == 0 {
		periods = 12
		for _, r := range monthly {
			rets = append(rets, r/100)
		}
	}
	annRet := mean(rets) * periods * 100
	annVol := popStddev(rets) * math.Sqrt(periods) * 100
	target := cfg.riskFree / 100 / periods
	var downSS float64
	for _, r := range rets {
		if r < target {
			d := r - target
			downSS += d * d
		}
	}
	var downside float64
	if len(rets) > 0 {
		downside = math.Sqrt(downSS/float64(len(rets))) * math.Sqrt(periods) * 100
	}
	m.AnnualReturn = Percent(annRet)
	m.AnnualVol = Percent(annVol)
	if annVol > 0 {
		m.Sharpe = clamp((annRet-cfg.riskFree)/annVol, sharpeBound)
	}
	if downside > 0 {
		m.Sortino = clamp((annRet-cfg.riskFree)/downside, sharpeBound)
	}
	if maxDD > 0 {
		m.Calmar = clamp(annRet/maxDD, calmarBound)
	}

	// Win/loss statistics over per-position rows. A zero-P/L position
	// breaks both streaks without extending either.
	var curWin, curLoss int
	for _, p := range cfg.positions {
		switch {
		case p.PL.IsPositive():
			m.Wins++
			m.GrossWin = m.GrossWin.Add(p.PL)
			m.Expectancy = m.Expectancy.Add(p.PL)
			curWin, curLoss = curWin+1, 0
		case p.PL.IsNegative():
			m.Losses++
			m.GrossLoss = m.GrossLoss.Add(p.PL.Neg())
			m.Expectancy = m.Expectancy.Add(p.PL)
			curWin, curLoss = 0, curLoss+1
		default:
			curWin, curLoss = 0, 0
		}
		if curWin > m.MaxWinStreak {
			m.MaxWinStreak = curWin
		}
		if curLoss > m.MaxLossStreak {
			m.MaxLossStreak = curLoss
		}
	}
	switch {
	case curWin > 0:
		m.CurrentStreak = curWin
	case curLoss > 0:
		m.CurrentStreak = -curLoss
	}
	if n := len(cfg.positions); n > 0 {
		m.WinRate = Percent(float64(m.Wins) / float64(n) * 100)
		m.Expectancy = m.Expectancy.Div(Q(n))
	}
	if m.Wins > 0 {
		m.AvgWin = m.GrossWin.Div(Q(m.Wins))
	}
	if m.Losses > 0 {
		m.AvgLoss = m.GrossLoss.Div(Q(m.Losses))
	}
	switch {
	case !m.GrossLoss.IsZero():
		m.ProfitFactor = clamp(m.GrossWin.AsFloat()/m.GrossLoss.AsFloat(), profitFactorBound)
	case m.Wins > 0:
		// No loss at all: the true ratio is infinite, callers get the
		// bound and Capped() reports it.
		m.ProfitFactor = profitFactorBound
	}

	return m
}

// dailyReturns converts an equity curve into day-over-day trading returns,
// excluding external flows from the numerator.
func dailyReturns(curve []EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	rets := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if !prev.IsPositive() {
			rets = append(rets, 0)
			continue
		}
		rets = append(rets, curve[i].PL.AsFloat()/prev.AsFloat())
	}
	return rets
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

// popStddev is the population standard deviation.
func popStddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// clamp bounds a ratio, resolving NaN to 0 and infinities to the bound.
func clamp(v, bound float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > bound:
		return bound
	case v < -bound:
		return -bound
	}
	return v
}

// RiskMetrics computes the full metric set over the engine's own data:
// monthly points from AllMonthlyPortfolios, annualized ratios from the
// bootstrapped daily equity curve, win/loss statistics from the journal's
// per-position rows. Options are applied last and may override any of it.
func (tp *TruePortfolio) RiskMetrics(opts ...MetricsOption) RiskMetrics {
	all := []MetricsOption{WithPositions(tp.positions)}
	if !tp.empty {
		all = append(all, WithEquityCurve(tp.EquityCurve(tp.equityThrough())))
	}
	all = append(all, opts...)
	return ComputeRiskMetrics(tp.AllMonthlyPortfolios(), all...)
}
