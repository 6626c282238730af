package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wealthlab/internal/recorder"
	"wealthlab/types"

	"github.com/rs/zerolog/log"
)

// Look-back requested from the price source per operation.
const (
	AnalyzePeriod  = types.SixMonths
	BacktestPeriod = types.FiveYears
	OptionsPeriod  = types.FiveYears
	HedgePeriod    = types.ThreeMonths
)

type priceSource interface {
	FetchPriceSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error)
}

type runRecorder interface {
	RecordBacktest(run *recorder.BacktestRun) error
	RecordStatus(snap *recorder.StatusSnapshot) error
}

// Engine fetches price series and runs the analytics over them. The analytics
// themselves are pure; Engine only adds data access and run history.
type Engine struct {
	source    priceSource
	recorder  runRecorder
	benchmark string
}

func NewEngine(source priceSource, rec runRecorder, benchmark string) *Engine {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Engine{
		source:    source,
		recorder:  rec,
		benchmark: benchmark,
	}
}

func (e *Engine) loadSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error) {
	series, err := e.source.FetchPriceSeries(ctx, symbol, period)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s: %w", symbol, period, err)
	}
	return series, nil
}

func (e *Engine) AnalyzeSymbol(ctx context.Context, symbol string, cfg *AnalyzeConfig) (*StatusReport, error) {
	symbol = strings.ToUpper(symbol)
	series, err := e.loadSeries(ctx, symbol, AnalyzePeriod)
	if err != nil {
		return nil, err
	}
	report, err := Analyze(series, cfg)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}
	report.Symbol = symbol

	if err := e.recorder.RecordStatus(&recorder.StatusSnapshot{
		Symbol:    symbol,
		Status:    string(report.Status),
		Price:     report.Price.InexactFloat64(),
		MAShort:   report.MAShort.InexactFloat64(),
		MALong:    report.MALong.InexactFloat64(),
		RSI:       report.RSI.InexactFloat64(),
		BarTime:   report.Timestamp,
		CreatedAt: time.Now(),
	}); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("record status failed")
	}
	return report, nil
}

// BacktestSymbol backtests symbol against the configured benchmark. A
// benchmark that cannot be fetched leaves the benchmark figures at zero.
func (e *Engine) BacktestSymbol(ctx context.Context, symbol string, cfg *BacktestConfig) (*Report, error) {
	symbol = strings.ToUpper(symbol)
	series, err := e.loadSeries(ctx, symbol, BacktestPeriod)
	if err != nil {
		return nil, err
	}

	var benchmark []types.Candle
	if e.benchmark != "" {
		benchmark, err = e.loadSeries(ctx, e.benchmark, BacktestPeriod)
		if err != nil {
			log.Warn().Err(err).Str("benchmark", e.benchmark).Msg("benchmark unavailable")
			benchmark = nil
		}
	}

	report, err := Backtest(series, benchmark, cfg)
	if err != nil {
		return nil, fmt.Errorf("backtest %s: %w", symbol, err)
	}
	report.Symbol = symbol

	log.Debug().
		Str("symbol", symbol).
		Str("strategy", string(report.Strategy)).
		Int("bars", len(series)).
		Int("trades", report.TotalTrades).
		Str("cagr", report.CAGR.String()).
		Msg("backtest finished")

	if err := e.recorder.RecordBacktest(toBacktestRun(report)); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("record backtest failed")
	}
	return report, nil
}

func (e *Engine) OptionsSymbol(ctx context.Context, symbol string, cfg *OptionsConfig) (*OptionsReport, error) {
	symbol = strings.ToUpper(symbol)
	series, err := e.loadSeries(ctx, symbol, OptionsPeriod)
	if err != nil {
		return nil, err
	}
	report, err := OptionsBacktest(series, cfg)
	if err != nil {
		return nil, fmt.Errorf("options backtest %s: %w", symbol, err)
	}
	report.Symbol = symbol
	return report, nil
}

func (e *Engine) HedgeSymbol(ctx context.Context, symbol string, cfg *HedgeConfig) (*HedgeReport, error) {
	symbol = strings.ToUpper(symbol)
	series, err := e.loadSeries(ctx, symbol, HedgePeriod)
	if err != nil {
		return nil, err
	}
	report, err := Hedge(series, cfg)
	if err != nil {
		return nil, fmt.Errorf("hedge %s: %w", symbol, err)
	}
	report.Symbol = symbol
	return report, nil
}

func toBacktestRun(r *Report) *recorder.BacktestRun {
	return &recorder.BacktestRun{
		Symbol:         r.Symbol,
		Strategy:       string(r.Strategy),
		MAPeriod:       r.MAPeriod,
		Leverage:       r.Leverage.InexactFloat64(),
		InitialCapital: r.InitialCapital.InexactFloat64(),
		FinalEquity:    r.FinalEquity.InexactFloat64(),
		CAGR:           r.CAGR.InexactFloat64(),
		MDD:            r.MaxDrawdownPercent.InexactFloat64(),
		WinRate:        r.WinRate.InexactFloat64(),
		TotalTrades:    r.TotalTrades,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		CreatedAt:      time.Now(),
	}
}
