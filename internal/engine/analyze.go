package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"wealthlab/internal/indicators"
	"wealthlab/types"

	"github.com/shopspring/decimal"
)

// StatusReport is the monitor-mode reading of the latest bar.
type StatusReport struct {
	Symbol          string             `json:"symbol,omitempty"`
	Price           decimal.Decimal    `json:"price"`
	MAShort         decimal.Decimal    `json:"ma_short"`
	MALong          decimal.Decimal    `json:"ma_long"`
	ShortPeriod     int                `json:"short_period"`
	LongPeriod      int                `json:"long_period"`
	Status          types.MarketStatus `json:"status"`
	UIColor         string             `json:"ui_color"`
	SuggestedAction string             `json:"suggested_action"`
	Timestamp       time.Time          `json:"timestamp"`
	RSI             decimal.Decimal    `json:"rsi"`
	MACD            decimal.Decimal    `json:"macd"`
	MACDSignal      decimal.Decimal    `json:"macd_signal"`
	HV20            *decimal.Decimal   `json:"hv20"`
	DirectChange    *decimal.Decimal   `json:"direct_change"`
	Rationale       string             `json:"ai_report"`
	ChartData       []types.ChartPoint `json:"chart_data"`
}

type classification struct {
	status types.MarketStatus
	color  string
	action string
}

var classifications = map[types.MarketStatus]classification{
	types.StatusBull:    {types.StatusBull, "neon-green", "HOLD / ADD"},
	types.StatusWarning: {types.StatusWarning, "neon-yellow", "WATCH"},
	types.StatusBear:    {types.StatusBear, "neon-red", "HEDGE / SELL"},
}

// Classify places price against the short and long moving averages.
func Classify(price, maShort, maLong float64) types.MarketStatus {
	switch {
	case price > maShort:
		return types.StatusBull
	case price > maLong:
		return types.StatusWarning
	}
	return types.StatusBear
}

// Analyze classifies the latest bar of series and prepares its chart data.
func Analyze(series []types.Candle, cfg *AnalyzeConfig) (*StatusReport, error) {
	if cfg == nil {
		cfg = DefaultAnalyzeConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := validateSeries(series, cfg.minBars()); err != nil {
		return nil, err
	}

	closes := types.Closes(series)
	sets, err := indicators.Compute(closes, cfg.shortPeriod, cfg.longPeriod)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	last := len(series) - 1
	latest := sets[last]
	price := closes[last]
	status := Classify(price, latest.MAShort.Float64, latest.MALong.Float64)
	class := classifications[status]

	report := &StatusReport{
		Price:           round2(price),
		MAShort:         round2(latest.MAShort.Float64),
		MALong:          round2(latest.MALong.Float64),
		ShortPeriod:     cfg.shortPeriod,
		LongPeriod:      cfg.longPeriod,
		Status:          class.status,
		UIColor:         class.color,
		SuggestedAction: class.action,
		Timestamp:       series[last].Timestamp,
		RSI:             round2(latest.RSI.Float64),
		MACD:            round2(latest.MACD.Float64),
		MACDSignal:      round2(latest.MACDSignal.Float64),
		Rationale:       rationale(price, cfg.shortPeriod, latest),
		ChartData:       chartData(series, sets, chartPoints),
		DirectChange:    series[last].DayChange,
	}
	if latest.HV20.Valid {
		hv := round2(latest.HV20.Float64)
		report.HV20 = &hv
	}
	return report, nil
}

func rationale(price float64, shortPeriod int, set indicators.Set) string {
	var parts []string

	side := "BELOW"
	if price > set.MAShort.Float64 {
		side = "ABOVE"
	}
	parts = append(parts, fmt.Sprintf("Price is %s MA%d.", side, shortPeriod))

	rsi := set.RSI.Float64
	band := "Neutral"
	switch {
	case rsi > 70:
		band = "Overbought"
	case rsi < 30:
		band = "Oversold"
	}
	parts = append(parts, fmt.Sprintf("RSI is %.1f (%s).", rsi, band))

	if set.MACD.Float64 > set.MACDSignal.Float64 {
		parts = append(parts, "MACD bullish crossover.")
	} else {
		parts = append(parts, "MACD bearish divergence.")
	}
	return strings.Join(parts, " ")
}

func chartData(series []types.Candle, sets []indicators.Set, n int) []types.ChartPoint {
	start := max(len(series)-n, 0)
	out := make([]types.ChartPoint, 0, len(series)-start)
	for i := start; i < len(series); i++ {
		c := series[i]
		out = append(out, types.ChartPoint{
			Date:         c.Timestamp.Format(dateLayout),
			Open:         roundFloat(c.Open.InexactFloat64()),
			High:         roundFloat(c.High.InexactFloat64()),
			Low:          roundFloat(c.Low.InexactFloat64()),
			Close:        roundFloat(c.Close.InexactFloat64()),
			MAUltraShort: roundPtr(sets[i].MAUltraShort),
			MAShort:      roundPtr(sets[i].MAShort),
			MALong:       roundPtr(sets[i].MALong),
		})
	}
	return out
}

func roundFloat(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v indicators.Value) *float64 {
	if !v.Valid {
		return nil
	}
	return indicators.Some(roundFloat(v.Float64)).Ptr()
}
