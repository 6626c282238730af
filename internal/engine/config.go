package engine

import (
	"fmt"

	"wealthlab/internal/indicators"
	"wealthlab/types"

	"github.com/shopspring/decimal"
)

const (
	DefaultShortPeriod    = 20
	DefaultLongPeriod     = 60
	DefaultMAPeriod       = 60
	DefaultStrategyDays   = 7
	DefaultRiskFreeRate   = 0.015
	DefaultBenchmark      = "0050.TW"
	chartPoints           = 90
	equityCurvePoints     = 100
	optionsTradesReported = 50
	minYearBars           = 10
	dateLayout            = "2006-01-02"
)

var DefaultInitialCapital = decimal.NewFromInt(100000)

type AnalyzeConfig struct {
	shortPeriod int
	longPeriod  int
}

func NewAnalyzeConfig(shortPeriod, longPeriod int) *AnalyzeConfig {
	return &AnalyzeConfig{
		shortPeriod: shortPeriod,
		longPeriod:  longPeriod,
	}
}

func DefaultAnalyzeConfig() *AnalyzeConfig {
	return NewAnalyzeConfig(DefaultShortPeriod, DefaultLongPeriod)
}

func (c *AnalyzeConfig) validate() error {
	if c.shortPeriod <= 0 || c.longPeriod <= 0 {
		return fmt.Errorf("moving average periods %d/%d must be positive: %w", c.shortPeriod, c.longPeriod, ErrInvalidParameter)
	}
	return nil
}

// minBars is the longest look-back among the indicators the report reads.
func (c *AnalyzeConfig) minBars() int {
	return max(c.shortPeriod, c.longPeriod, indicators.UltraShortWindow, indicators.RSIWindow, indicators.MACDSlow)
}

type BacktestConfig struct {
	initialCapital decimal.Decimal
	strategy       types.StrategyVariant
	maPeriod       int
	leverage       decimal.Decimal
}

func NewBacktestConfig(initialCapital decimal.Decimal, strategy types.StrategyVariant, maPeriod int, leverage decimal.Decimal) *BacktestConfig {
	return &BacktestConfig{
		initialCapital: initialCapital,
		strategy:       strategy,
		maPeriod:       maPeriod,
		leverage:       leverage,
	}
}

func DefaultBacktestConfig() *BacktestConfig {
	return NewBacktestConfig(DefaultInitialCapital, types.StrategyMATrend, DefaultMAPeriod, decimal.NewFromInt(1))
}

func (c *BacktestConfig) validate() error {
	if !c.initialCapital.IsPositive() {
		return fmt.Errorf("initial capital %s must be positive: %w", c.initialCapital, ErrInvalidParameter)
	}
	if c.leverage.IsNegative() {
		return fmt.Errorf("leverage %s must not be negative: %w", c.leverage, ErrInvalidParameter)
	}
	if c.maPeriod <= 0 {
		return fmt.Errorf("ma period %d must be positive: %w", c.maPeriod, ErrInvalidParameter)
	}
	return nil
}

type OptionsConfig struct {
	initialCapital decimal.Decimal
	strategyDays   int
	riskFreeRate   float64
	strikeStep     float64
	wingWidth      float64
	multiplier     float64
	lowVol         float64
	highVol        float64
}

func NewOptionsConfig(initialCapital decimal.Decimal, strategyDays int, riskFreeRate float64) *OptionsConfig {
	return &OptionsConfig{
		initialCapital: initialCapital,
		strategyDays:   strategyDays,
		riskFreeRate:   riskFreeRate,
		strikeStep:     50,
		wingWidth:      200,
		multiplier:     50,
		lowVol:         15,
		highVol:        25,
	}
}

func DefaultOptionsConfig() *OptionsConfig {
	return NewOptionsConfig(DefaultInitialCapital, DefaultStrategyDays, DefaultRiskFreeRate)
}

// WithContract overrides the strike grid, strangle wing width and contract multiplier.
func (c *OptionsConfig) WithContract(strikeStep, wingWidth, multiplier float64) *OptionsConfig {
	c.strikeStep = strikeStep
	c.wingWidth = wingWidth
	c.multiplier = multiplier
	return c
}

// WithThresholds overrides the HV20 levels (in percent) that trigger entries.
func (c *OptionsConfig) WithThresholds(lowVol, highVol float64) *OptionsConfig {
	c.lowVol = lowVol
	c.highVol = highVol
	return c
}

func (c *OptionsConfig) validate() error {
	if !c.initialCapital.IsPositive() {
		return fmt.Errorf("initial capital %s must be positive: %w", c.initialCapital, ErrInvalidParameter)
	}
	if c.strategyDays <= 0 {
		return fmt.Errorf("strategy days %d must be positive: %w", c.strategyDays, ErrInvalidParameter)
	}
	if c.strikeStep <= 0 || c.wingWidth < 0 || c.multiplier <= 0 {
		return fmt.Errorf("contract step=%v wing=%v multiplier=%v: %w", c.strikeStep, c.wingWidth, c.multiplier, ErrInvalidParameter)
	}
	if c.lowVol > c.highVol {
		return fmt.Errorf("low vol threshold %v above high %v: %w", c.lowVol, c.highVol, ErrInvalidParameter)
	}
	return nil
}

// HedgeLeg is one protective put target, OffsetPoints below the base strike.
type HedgeLeg struct {
	Label        string
	OffsetPoints float64
	Days         int
}

type HedgeConfig struct {
	riskFreeRate float64
	strikeStep   float64
	legs         []HedgeLeg
}

func NewHedgeConfig(riskFreeRate, strikeStep float64, legs ...HedgeLeg) *HedgeConfig {
	return &HedgeConfig{
		riskFreeRate: riskFreeRate,
		strikeStep:   strikeStep,
		legs:         legs,
	}
}

// DefaultHedgeLegs are the weekly and monthly protective puts quoted for the index.
var DefaultHedgeLegs = []HedgeLeg{
	{Label: "weekly", OffsetPoints: 200, Days: 7},
	{Label: "monthly_500", OffsetPoints: 500, Days: 30},
	{Label: "monthly_1000", OffsetPoints: 1000, Days: 30},
}

const DefaultHedgeStrikeStep = 100

func DefaultHedgeConfig() *HedgeConfig {
	return NewHedgeConfig(DefaultRiskFreeRate, DefaultHedgeStrikeStep, DefaultHedgeLegs...)
}

func (c *HedgeConfig) validate() error {
	if c.strikeStep <= 0 {
		return fmt.Errorf("strike step %v must be positive: %w", c.strikeStep, ErrInvalidParameter)
	}
	for _, leg := range c.legs {
		if leg.Days <= 0 {
			return fmt.Errorf("hedge leg %q days %d must be positive: %w", leg.Label, leg.Days, ErrInvalidParameter)
		}
	}
	return nil
}
