package engine

import (
	"fmt"
	"math"

	"wealthlab/internal/indicators"
	"wealthlab/internal/pricing"
	"wealthlab/types"

	"github.com/shopspring/decimal"
)

type OptionsReport struct {
	Symbol         string               `json:"symbol,omitempty"`
	StrategyDays   int                  `json:"strategy_days"`
	InitialCapital decimal.Decimal      `json:"initial_capital"`
	FinalEquity    decimal.Decimal      `json:"final_equity"`
	TotalTrades    int                  `json:"total_trades"`
	WinRate        decimal.Decimal      `json:"win_rate"`
	EquityCurve    []types.EquityPoint  `json:"equity_curve"`
	Trades         []types.OptionsTrade `json:"trades"`
}

// activeOptions is the single open volatility position.
type activeOptions struct {
	trade      types.OptionsTrade
	callStrike float64
	putStrike  float64
	premium    float64
	exitIndex  int
}

type optionsSimulator struct {
	cfg    *OptionsConfig
	series []types.Candle
	closes []float64
	hv     []indicators.Value
	active *activeOptions
	equity float64
	trades []types.OptionsTrade
	wins   int
}

// OptionsBacktest runs the HV20 volatility strategy: buy an at-the-money
// straddle when realized volatility is low, sell an out-of-the-money strangle
// when it is high, and settle each position strategyDays bars later at
// intrinsic value. Realized volatility stands in for implied volatility.
func OptionsBacktest(series []types.Candle, cfg *OptionsConfig) (*OptionsReport, error) {
	if cfg == nil {
		cfg = DefaultOptionsConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := validateSeries(series, indicators.HVWindow+cfg.strategyDays+1); err != nil {
		return nil, err
	}

	closes := types.Closes(series)
	hv, err := indicators.HistoricalVolatility(closes, indicators.HVWindow)
	if err != nil {
		return nil, err
	}

	sim := &optionsSimulator{
		cfg:    cfg,
		series: series,
		closes: closes,
		hv:     hv,
		equity: cfg.initialCapital.InexactFloat64(),
	}
	curve, err := sim.run()
	if err != nil {
		return nil, err
	}

	winRate := 0.0
	if len(sim.trades) > 0 {
		winRate = float64(sim.wins) / float64(len(sim.trades)) * 100
	}

	trades := sim.trades
	if len(trades) > optionsTradesReported {
		trades = trades[len(trades)-optionsTradesReported:]
	}
	reversed := make([]types.OptionsTrade, len(trades))
	for i, t := range trades {
		reversed[len(trades)-1-i] = t
	}

	return &OptionsReport{
		StrategyDays:   cfg.strategyDays,
		InitialCapital: cfg.initialCapital,
		FinalEquity:    round2(sim.equity),
		TotalTrades:    len(sim.trades),
		WinRate:        round2(winRate),
		EquityCurve:    curve,
		Trades:         reversed,
	}, nil
}

// run steps from the first bar with a valid HV20 to the end of the series.
// Entries stop strategyDays before the end so every position settles.
func (s *optionsSimulator) run() ([]types.EquityPoint, error) {
	lastEntry := len(s.series) - s.cfg.strategyDays
	curve := make([]types.EquityPoint, 0, len(s.series)-indicators.HVWindow)

	for i := indicators.HVWindow; i < len(s.series); i++ {
		switch {
		case s.active != nil && i == s.active.exitIndex:
			if err := s.settle(i); err != nil {
				return nil, err
			}
		case s.active == nil && i < lastEntry:
			if err := s.enter(i); err != nil {
				return nil, err
			}
		}
		curve = append(curve, types.EquityPoint{Date: s.series[i].Timestamp, Equity: round2(s.equity)})
	}
	return curve, nil
}

func (s *optionsSimulator) enter(i int) error {
	if !s.hv[i].Valid {
		return nil
	}
	hv := s.hv[i].Float64
	var kind types.OptionsTradeType
	switch {
	case hv < s.cfg.lowVol:
		kind = types.LongStraddle
	case hv > s.cfg.highVol:
		kind = types.ShortStrangle
	default:
		return nil
	}

	S := s.closes[i]
	strike := math.RoundToEven(S/s.cfg.strikeStep) * s.cfg.strikeStep
	callStrike, putStrike := strike, strike
	if kind == types.ShortStrangle {
		callStrike = strike + s.cfg.wingWidth
		putStrike = strike - s.cfg.wingWidth
	}
	if putStrike <= 0 {
		return nil
	}

	T := float64(s.cfg.strategyDays) / 365
	sigma := hv / 100
	call, err := pricing.Price(S, callStrike, T, s.cfg.riskFreeRate, sigma, types.Call)
	if err != nil {
		return fmt.Errorf("price call at bar %d: %w", i, pricingErr(err))
	}
	put, err := pricing.Price(S, putStrike, T, s.cfg.riskFreeRate, sigma, types.Put)
	if err != nil {
		return fmt.Errorf("price put at bar %d: %w", i, pricingErr(err))
	}
	premium := call + put

	trade := types.OptionsTrade{
		EntryDate:  s.series[i].Timestamp,
		Type:       kind,
		Strike:     decimal.NewFromFloat(strike),
		CallStrike: decimal.NewFromFloat(callStrike),
		PutStrike:  decimal.NewFromFloat(putStrike),
		EntryS:     s.series[i].Close,
		EntryVol:   round2(hv),
	}
	if kind == types.LongStraddle {
		trade.EntryCost = round2(premium)
	} else {
		trade.CreditReceived = round2(premium)
	}

	s.active = &activeOptions{
		trade:      trade,
		callStrike: callStrike,
		putStrike:  putStrike,
		premium:    premium,
		exitIndex:  i + s.cfg.strategyDays,
	}
	return nil
}

// settle values both legs at expiry, using the exit bar's HV20 as the
// volatility input.
func (s *optionsSimulator) settle(i int) error {
	a := s.active
	S := s.closes[i]
	sigma := s.hv[i].Float64 / 100

	call, err := pricing.Price(S, a.callStrike, 0, s.cfg.riskFreeRate, sigma, types.Call)
	if err != nil {
		return fmt.Errorf("settle call at bar %d: %w", i, pricingErr(err))
	}
	put, err := pricing.Price(S, a.putStrike, 0, s.cfg.riskFreeRate, sigma, types.Put)
	if err != nil {
		return fmt.Errorf("settle put at bar %d: %w", i, pricingErr(err))
	}
	exitValue := call + put

	var pnl float64
	if a.trade.Type == types.LongStraddle {
		pnl = (exitValue - a.premium) * s.cfg.multiplier
	} else {
		pnl = (a.premium - exitValue) * s.cfg.multiplier
	}

	trade := a.trade
	trade.ExitDate = s.series[i].Timestamp
	trade.ExitPrice = s.series[i].Close
	trade.ExitValue = round2(exitValue)
	trade.PnL = round2(pnl)

	s.trades = append(s.trades, trade)
	if pnl > 0 {
		s.wins++
	}
	s.equity += pnl
	s.active = nil
	return nil
}
