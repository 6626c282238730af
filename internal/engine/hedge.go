package engine

import (
	"fmt"
	"math"
	"time"

	"wealthlab/internal/indicators"
	"wealthlab/internal/pricing"
	"wealthlab/types"

	"github.com/shopspring/decimal"
)

type HedgeQuote struct {
	Label  string           `json:"label"`
	Strike decimal.Decimal  `json:"strike"`
	Kind   types.OptionKind `json:"kind"`
	Days   int              `json:"days"`
	Price  decimal.Decimal  `json:"price"`
	IV     decimal.Decimal  `json:"iv"`
}

// HedgeReport lists protective puts below the latest index level.
type HedgeReport struct {
	Symbol     string          `json:"symbol,omitempty"`
	IndexPrice decimal.Decimal `json:"index_price"`
	BaseStrike decimal.Decimal `json:"base_strike"`
	HV20       decimal.Decimal `json:"hv20"`
	Timestamp  time.Time       `json:"timestamp"`
	Quotes     []HedgeQuote    `json:"quotes"`
}

// Hedge prices each configured put leg off the latest close, using HV20 as
// the volatility input. Legs whose strike would not be positive are skipped.
func Hedge(series []types.Candle, cfg *HedgeConfig) (*HedgeReport, error) {
	if cfg == nil {
		cfg = DefaultHedgeConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := validateSeries(series, indicators.HVWindow+1); err != nil {
		return nil, err
	}

	closes := types.Closes(series)
	hv, err := indicators.HistoricalVolatility(closes, indicators.HVWindow)
	if err != nil {
		return nil, err
	}
	last := len(series) - 1
	S := closes[last]
	vol := hv[last].Float64
	base := math.RoundToEven(S/cfg.strikeStep) * cfg.strikeStep

	report := &HedgeReport{
		IndexPrice: series[last].Close,
		BaseStrike: decimal.NewFromFloat(base),
		HV20:       round2(vol),
		Timestamp:  series[last].Timestamp,
	}
	for _, leg := range cfg.legs {
		strike := base - leg.OffsetPoints
		if strike <= 0 {
			continue
		}
		price, err := pricing.Price(S, strike, float64(leg.Days)/365, cfg.riskFreeRate, vol/100, types.Put)
		if err != nil {
			return nil, fmt.Errorf("price %s put: %w", leg.Label, pricingErr(err))
		}
		report.Quotes = append(report.Quotes, HedgeQuote{
			Label:  leg.Label,
			Strike: decimal.NewFromFloat(strike),
			Kind:   types.Put,
			Days:   leg.Days,
			Price:  decimal.NewFromFloat(price).Round(1),
			IV:     round2(vol),
		})
	}
	return report, nil
}
