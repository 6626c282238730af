package trend

import (
	"errors"
	"fmt"

	"wealthlab/internal/indicators"
	"wealthlab/types"
)

var ErrUnknownStrategy = errors.New("unknown strategy variant")

// Strategy maps one bar's close and reference moving average to a position.
// There is no hysteresis: the position may flip every bar.
type Strategy struct {
	variant types.StrategyVariant
}

func New(variant types.StrategyVariant) (*Strategy, error) {
	switch variant {
	case types.StrategyMATrend, types.StrategyMALong, types.StrategyBuyHold:
		return &Strategy{variant: variant}, nil
	}
	return nil, fmt.Errorf("%q: %w", variant, ErrUnknownStrategy)
}

func (s *Strategy) Variant() types.StrategyVariant {
	return s.variant
}

// RequiresMA reports whether the reference moving average drives the signal.
func (s *Strategy) RequiresMA() bool {
	return s.variant != types.StrategyBuyHold
}

func (s *Strategy) Position(close float64, ma indicators.Value) types.Position {
	if s.variant == types.StrategyBuyHold {
		return types.Long
	}
	// Not enough history for the average yet.
	if !ma.Valid {
		return types.Flat
	}

	switch {
	case close > ma.Float64:
		return types.Long
	case close < ma.Float64 && s.variant == types.StrategyMATrend:
		return types.Short
	}
	return types.Flat
}

// Signals evaluates the strategy over the whole series.
func (s *Strategy) Signals(closes []float64, ma []indicators.Value) []types.Position {
	out := make([]types.Position, len(closes))
	for i, c := range closes {
		var v indicators.Value
		if i < len(ma) {
			v = ma[i]
		}
		out[i] = s.Position(c, v)
	}
	return out
}
