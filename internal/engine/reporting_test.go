package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"wealthlab/types"

	"github.com/shopspring/decimal"
)

func TestBacktestInsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		series []types.Candle
		cfg    *BacktestConfig
	}{
		{
			name:   "empty series",
			series: nil,
			cfg:    DefaultBacktestConfig(),
		},
		{
			name:   "shorter than ma period",
			series: newSeries(seriesStart, linearCloses(100, 59)...),
			cfg:    DefaultBacktestConfig(),
		},
		{
			name:   "single bar buy and hold",
			series: newSeries(seriesStart, 100),
			cfg:    NewBacktestConfig(DefaultInitialCapital, types.StrategyBuyHold, 60, decimal.NewFromInt(1)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Backtest(tt.series, nil, tt.cfg)
			if !errors.Is(err, ErrInsufficientData) {
				t.Errorf("Backtest() error = %v, want %v", err, ErrInsufficientData)
			}
		})
	}
}

func TestBacktestBuyHoldIgnoresMAPeriod(t *testing.T) {
	series := newSeries(seriesStart, 100, 101, 102, 103, 104)
	cfg := NewBacktestConfig(decimal.NewFromInt(100000), types.StrategyBuyHold, 60, decimal.NewFromInt(1))

	report, err := Backtest(series, nil, cfg)
	if err != nil {
		t.Fatalf("Backtest() error = %v", err)
	}
	if !report.FinalEquity.Equal(decimal.NewFromInt(104000)) {
		t.Errorf("FinalEquity = %s, want 104000", report.FinalEquity)
	}

	cfg = NewBacktestConfig(decimal.NewFromInt(100000), types.StrategyMALong, 60, decimal.NewFromInt(1))
	if _, err := Backtest(series, nil, cfg); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Backtest(ma_long) error = %v, want %v", err, ErrInsufficientData)
	}
}

func TestBacktestInvalidParameters(t *testing.T) {
	series := newSeries(seriesStart, linearCloses(100, 80)...)
	tests := []struct {
		name string
		cfg  *BacktestConfig
	}{
		{"negative capital", NewBacktestConfig(decimal.NewFromInt(-1), types.StrategyMATrend, 60, decimal.NewFromInt(1))},
		{"negative leverage", NewBacktestConfig(DefaultInitialCapital, types.StrategyMATrend, 60, decimal.NewFromInt(-2))},
		{"unknown strategy", NewBacktestConfig(DefaultInitialCapital, types.StrategyVariant("grid"), 60, decimal.NewFromInt(1))},
		{"zero ma period", NewBacktestConfig(DefaultInitialCapital, types.StrategyMATrend, 0, decimal.NewFromInt(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Backtest(series, nil, tt.cfg)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Backtest() error = %v, want %v", err, ErrInvalidParameter)
			}
		})
	}

	unordered := newSeries(seriesStart, linearCloses(100, 80)...)
	unordered[10].Timestamp = unordered[9].Timestamp
	if _, err := Backtest(unordered, nil, DefaultBacktestConfig()); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Backtest() on duplicate timestamps error = %v, want %v", err, ErrInvalidParameter)
	}
}

func TestBacktestSpikeRoundTrip(t *testing.T) {
	closes := constantCloses(100, 100)
	closes[50] = 150
	cfg := NewBacktestConfig(DefaultInitialCapital, types.StrategyBuyHold, 60, decimal.NewFromInt(1))

	report, err := Backtest(newSeries(seriesStart, closes...), nil, cfg)
	if err != nil {
		t.Fatalf("Backtest() error = %v", err)
	}
	if !report.FinalEquity.Equal(decimal.RequireFromString("100000")) {
		t.Errorf("FinalEquity = %s, want 100000", report.FinalEquity)
	}
	if !report.MaxDrawdownPercent.Equal(decimal.RequireFromString("-33.33")) {
		t.Errorf("MaxDrawdownPercent = %s, want -33.33", report.MaxDrawdownPercent)
	}
	if report.TotalTrades != 0 {
		t.Errorf("TotalTrades = %d, want 0", report.TotalTrades)
	}
	if len(report.EquityCurve) != equityCurvePoints {
		t.Errorf("len(EquityCurve) = %d, want %d", len(report.EquityCurve), equityCurvePoints)
	}
}

func TestBacktestMALongOnRisingSeries(t *testing.T) {
	closes := linearCloses(100, 100)
	cfg := NewBacktestConfig(DefaultInitialCapital, types.StrategyMALong, 10, decimal.NewFromInt(1))

	strat, _ := newStrategy(types.StrategyMALong)
	signals, err := generateSignals(closes, strat, 10)
	if err != nil {
		t.Fatalf("generateSignals() error = %v", err)
	}
	for i, sig := range signals {
		want := types.Flat
		if i >= 9 {
			want = types.Long
		}
		if sig != want {
			t.Fatalf("signal[%d] = %d, want %d", i, sig, want)
		}
	}

	report, err := Backtest(newSeries(seriesStart, closes...), nil, cfg)
	if err != nil {
		t.Fatalf("Backtest() error = %v", err)
	}
	if report.TotalTrades != 0 || len(report.Trades) != 0 {
		t.Errorf("TotalTrades = %d, want 0 closed trades", report.TotalTrades)
	}
	if !report.WinRate.IsZero() {
		t.Errorf("WinRate = %s, want 0", report.WinRate)
	}
	if !report.MaxDrawdownPercent.IsZero() {
		t.Errorf("MaxDrawdownPercent = %s, want 0 on a rising curve", report.MaxDrawdownPercent)
	}
	if !report.CAGR.IsPositive() {
		t.Errorf("CAGR = %s, want positive", report.CAGR)
	}
}

func TestBacktestNoLookAhead(t *testing.T) {
	closes := zigzagCloses(100, 3, 7, 120)
	strat, _ := newStrategy(types.StrategyMATrend)

	run := func(closes []float64) []bar {
		signals, err := generateSignals(closes, strat, 20)
		if err != nil {
			t.Fatalf("generateSignals() error = %v", err)
		}
		return simulateEquity(newSeries(seriesStart, closes...), closes, signals, 2, 100000)
	}
	base := run(closes)

	for _, tt := range []int{30, 60, 100} {
		mutated := append([]float64(nil), closes...)
		mutated[tt+1] *= 3
		got := run(mutated)
		for i := 0; i <= tt; i++ {
			if got[i].Return != base[i].Return || got[i].Equity != base[i].Equity {
				t.Fatalf("changing bar %d altered bar %d: return %v -> %v", tt+1, i, base[i].Return, got[i].Return)
			}
		}
	}

	for i := 1; i < len(base); i++ {
		if base[i].PrevPosition != base[i-1].Position {
			t.Fatalf("bar %d PrevPosition = %d, want %d", i, base[i].PrevPosition, base[i-1].Position)
		}
	}
}

func TestBacktestTradeLogConsistency(t *testing.T) {
	closes := zigzagCloses(100, 2, 9, 200)
	series := newSeries(seriesStart, closes...)

	for _, variant := range []types.StrategyVariant{types.StrategyMATrend, types.StrategyMALong} {
		t.Run(string(variant), func(t *testing.T) {
			strat, _ := newStrategy(variant)
			signals, _ := generateSignals(closes, strat, 12)

			transitions := 0
			held := types.Flat
			for _, sig := range signals {
				if held != types.Flat && sig != held {
					transitions++
				}
				held = sig
			}

			cfg := NewBacktestConfig(DefaultInitialCapital, variant, 12, decimal.NewFromInt(1))
			report, err := Backtest(series, nil, cfg)
			if err != nil {
				t.Fatalf("Backtest() error = %v", err)
			}
			if report.TotalTrades != transitions {
				t.Errorf("TotalTrades = %d, want %d", report.TotalTrades, transitions)
			}
			if transitions == 0 {
				t.Fatalf("zigzag should produce trades")
			}

			total := 0
			for _, tr := range report.Trades {
				total += tr.DurationDays
			}
			if total > len(series) {
				t.Errorf("sum(duration) = %d exceeds %d bars", total, len(series))
			}
			for i := 1; i < len(report.Trades); i++ {
				if report.Trades[i].EntryDate.After(report.Trades[i-1].EntryDate) {
					t.Fatalf("trades not ordered most recent first at %d", i)
				}
			}
			if report.MaxDrawdownPercent.IsPositive() {
				t.Errorf("MaxDrawdownPercent = %s, want <= 0", report.MaxDrawdownPercent)
			}
		})
	}
}

func TestBacktestBenchmark(t *testing.T) {
	series := newSeries(seriesStart, linearCloses(100, 80)...)

	tests := []struct {
		name      string
		benchmark []types.Candle
		wantZero  bool
	}{
		{"absent", nil, true},
		{"disjoint dates", newSeries(seriesStart.AddDate(-5, 0, 0), linearCloses(50, 80)...), true},
		{"same dates", newSeries(seriesStart, linearCloses(50, 80)...), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Backtest(series, tt.benchmark, DefaultBacktestConfig())
			if err != nil {
				t.Fatalf("Backtest() error = %v", err)
			}
			if tt.wantZero {
				if !report.BenchmarkCAGR.IsZero() || !report.BenchmarkMDD.IsZero() {
					t.Errorf("benchmark = %s/%s, want 0/0", report.BenchmarkCAGR, report.BenchmarkMDD)
				}
				return
			}
			if !report.BenchmarkCAGR.IsPositive() {
				t.Errorf("BenchmarkCAGR = %s, want positive", report.BenchmarkCAGR)
			}
			if !report.BenchmarkMDD.IsZero() {
				t.Errorf("BenchmarkMDD = %s, want 0 on a rising benchmark", report.BenchmarkMDD)
			}
		})
	}
}

func TestAlignBenchmarkIgnoresTimeOfDay(t *testing.T) {
	primary := newSeries(seriesStart, 1, 2, 3)
	benchmark := newSeries(seriesStart.Add(5*time.Hour), 10, 11, 12, 13)

	aligned := alignBenchmark(primary, benchmark)
	if len(aligned) != 3 {
		t.Fatalf("len(aligned) = %d, want 3", len(aligned))
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		equity []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"non decreasing", []float64{1, 1, 2, 3}, 0},
		{"single dip", []float64{100, 50, 100}, -0.5},
		{"deepest of two", []float64{100, 90, 120, 60, 130}, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxDrawdown(tt.equity); got != tt.want {
				t.Errorf("maxDrawdown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCAGR(t *testing.T) {
	if got := cagr(100, 200, 0); got != 0 {
		t.Errorf("cagr() over zero bars = %v, want 0", got)
	}
	got := cagr(100, 110, 365)
	if diff := got - 0.10; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("cagr() over 365 bars = %v, want 0.10", got)
	}
}

func TestBacktestCAGRCountsBars(t *testing.T) {
	// 252 weekday bars doubling from 100 to 200 span 351 calendar days
	var series []types.Candle
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for len(series) < 252 {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			price := 100 * math.Pow(2, float64(len(series))/251)
			if len(series) == 251 {
				price = 200
			}
			series = append(series, newSeries(day, price)...)
		}
		day = day.AddDate(0, 0, 1)
	}
	cfg := NewBacktestConfig(decimal.NewFromInt(100000), types.StrategyBuyHold, 60, decimal.NewFromInt(1))

	report, err := Backtest(series, series, cfg)
	if err != nil {
		t.Fatalf("Backtest() error = %v", err)
	}
	if report.DurationDays != 351 {
		t.Errorf("DurationDays = %d, want 351", report.DurationDays)
	}
	if !report.FinalEquity.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("FinalEquity = %s, want 200000", report.FinalEquity)
	}
	want := (math.Pow(2, 365.0/252) - 1) * 100
	if got := report.CAGR.InexactFloat64(); math.Abs(got-want) > 0.01 {
		t.Errorf("CAGR = %v, want %.2f", got, want)
	}
	if got := report.BenchmarkCAGR.InexactFloat64(); math.Abs(got-want) > 0.01 {
		t.Errorf("BenchmarkCAGR = %v, want %.2f", got, want)
	}
}

func TestYearlyStats(t *testing.T) {
	// five bars in 2020 are dropped, 35 bars in 2021 are kept
	start := seriesStart.AddDate(0, 11, 26)
	closes := linearCloses(100, 40)
	bars := simulateEquity(newSeries(start, closes...), closes, constantPositions(types.Long, 40), 1, 1000)

	stats := yearlyStats(bars)
	if len(stats) != 1 {
		t.Fatalf("len(yearlyStats) = %d, want 1", len(stats))
	}
	if stats[0].Year != 2021 {
		t.Errorf("Year = %d, want 2021", stats[0].Year)
	}
	if !stats[0].MDDPct.IsZero() || !stats[0].ReturnPct.IsPositive() {
		t.Errorf("stats = %+v, want positive return and zero drawdown", stats[0])
	}
}

func TestYearlyStatsMostRecentFirst(t *testing.T) {
	closes := linearCloses(100, 800)
	bars := simulateEquity(newSeries(seriesStart, closes...), closes, constantPositions(types.Long, 800), 1, 1000)

	stats := yearlyStats(bars)
	want := []int{2022, 2021, 2020}
	if len(stats) != len(want) {
		t.Fatalf("len(yearlyStats) = %d, want %d", len(stats), len(want))
	}
	for i, y := range want {
		if stats[i].Year != y {
			t.Errorf("stats[%d].Year = %d, want %d", i, stats[i].Year, y)
		}
	}
}

func constantPositions(p types.Position, n int) []types.Position {
	out := make([]types.Position, n)
	for i := range out {
		out[i] = p
	}
	return out
}
