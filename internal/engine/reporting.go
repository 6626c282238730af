package engine

import (
	"fmt"
	"io"
	"math"
	"time"

	"wealthlab/types"

	"github.com/shopspring/decimal"
)

// Report is the outcome of one strategy backtest. Percent fields are already
// multiplied by 100.
type Report struct {
	Symbol   string                `json:"symbol,omitempty"`
	Strategy types.StrategyVariant `json:"strategy"`
	MAPeriod int                   `json:"ma_period"`
	Leverage decimal.Decimal       `json:"leverage"`

	// Meta / period info
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	DurationDays int       `json:"duration_days"`
	TotalTrades  int       `json:"total_trades"`

	// Absolute performance
	InitialCapital decimal.Decimal `json:"initial_capital"`
	FinalEquity    decimal.Decimal `json:"final_equity"`
	CAGR           decimal.Decimal `json:"cagr_percent"`

	// Risk
	MaxDrawdownPercent decimal.Decimal `json:"mdd_percent"`
	WinRate            decimal.Decimal `json:"win_rate"`

	// Benchmark, zero when no dates overlap
	BenchmarkCAGR decimal.Decimal `json:"benchmark_cagr"`
	BenchmarkMDD  decimal.Decimal `json:"benchmark_mdd"`

	EquityCurve []types.EquityPoint `json:"equity_curve"`
	Trades      []types.Trade       `json:"trades"`
	YearlyStats []types.YearlyStat  `json:"yearly_stats"`
}

// Backtest replays the strategy over series and reports its performance.
// benchmark may be nil.
func Backtest(series, benchmark []types.Candle, cfg *BacktestConfig) (*Report, error) {
	if cfg == nil {
		cfg = DefaultBacktestConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	strat, err := newStrategy(cfg.strategy)
	if err != nil {
		return nil, err
	}
	minBars := 2
	if strat.RequiresMA() {
		minBars = max(minBars, cfg.maPeriod)
	}
	if err := validateSeries(series, minBars); err != nil {
		return nil, err
	}

	closes := types.Closes(series)
	signals, err := generateSignals(closes, strat, cfg.maPeriod)
	if err != nil {
		return nil, err
	}

	capital := cfg.initialCapital.InexactFloat64()
	leverage := cfg.leverage.InexactFloat64()
	bars := simulateEquity(series, closes, signals, leverage, capital)
	trades := reconstructTrades(series, closes, signals, leverage)

	first, last := bars[0], bars[len(bars)-1]
	equity := equityValues(bars)
	benchCAGR, benchMDD := benchmarkStats(alignBenchmark(series, benchmark), capital)

	report := &Report{
		Strategy:           strat.Variant(),
		MAPeriod:           cfg.maPeriod,
		Leverage:           cfg.leverage,
		StartDate:          first.Date,
		EndDate:            last.Date,
		DurationDays:       calendarDays(first.Date, last.Date),
		TotalTrades:        len(trades),
		InitialCapital:     cfg.initialCapital,
		FinalEquity:        round2(last.Equity),
		CAGR:               round2(cagr(capital, last.Equity, len(bars)) * 100),
		MaxDrawdownPercent: round2(maxDrawdown(equity) * 100),
		WinRate:            round2(winRate(trades)),
		BenchmarkCAGR:      round2(benchCAGR * 100),
		BenchmarkMDD:       round2(benchMDD * 100),
		EquityCurve:        tailCurve(bars, equityCurvePoints),
		Trades:             trades,
		YearlyStats:        yearlyStats(bars),
	}
	return report, nil
}

func tailCurve(bars []bar, n int) []types.EquityPoint {
	if len(bars) > n {
		bars = bars[len(bars)-n:]
	}
	out := make([]types.EquityPoint, len(bars))
	for i, b := range bars {
		out[i] = types.EquityPoint{Date: b.Date, Equity: round2(b.Equity)}
	}
	return out
}

// round2 converts a computed figure to a two decimal place amount. Non-finite
// values collapse to zero.
func round2(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}

func PrintReport(w io.Writer, report *Report) {
	fmt.Fprintln(w, "===== Backtest Report =====")
	if report.Symbol != "" {
		fmt.Fprintf(w, "Symbol:                %s\n", report.Symbol)
	}
	fmt.Fprintf(w, "Strategy:              %s (MA%d, %sx)\n", report.Strategy, report.MAPeriod, report.Leverage)
	fmt.Fprintf(w, "Period:                %s -> %s (%d days)\n",
		report.StartDate.Format(dateLayout), report.EndDate.Format(dateLayout), report.DurationDays)
	fmt.Fprintf(w, "Total Trades:          %d\n", report.TotalTrades)

	fmt.Fprintln(w, "\n-- Absolute Performance --")
	fmt.Fprintf(w, "Initial Capital:       %s\n", report.InitialCapital)
	fmt.Fprintf(w, "Final Equity:          %s\n", report.FinalEquity)
	fmt.Fprintf(w, "CAGR %%:                %s\n", report.CAGR)

	fmt.Fprintln(w, "\n-- Risk --")
	fmt.Fprintf(w, "Max Drawdown %%:        %s\n", report.MaxDrawdownPercent)
	fmt.Fprintf(w, "Win Rate %%:            %s\n", report.WinRate)

	fmt.Fprintln(w, "\n-- Benchmark --")
	fmt.Fprintf(w, "Benchmark CAGR %%:      %s\n", report.BenchmarkCAGR)
	fmt.Fprintf(w, "Benchmark MDD %%:       %s\n", report.BenchmarkMDD)

	if len(report.YearlyStats) > 0 {
		fmt.Fprintln(w, "\n-- Yearly --")
		for _, y := range report.YearlyStats {
			fmt.Fprintf(w, "%d  return %6s%%  mdd %6s%%  profit %s\n", y.Year, y.ReturnPct, y.MDDPct, y.Profit)
		}
	}
	fmt.Fprintln(w, "===========================")
}
