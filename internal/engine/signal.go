package engine

import (
	"fmt"

	"wealthlab/internal/indicators"
	"wealthlab/strategies/trend"
	"wealthlab/types"
)

type strategy interface {
	Variant() types.StrategyVariant
	RequiresMA() bool
	Signals(closes []float64, ma []indicators.Value) []types.Position
}

func newStrategy(variant types.StrategyVariant) (strategy, error) {
	s, err := trend.New(variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return s, nil
}

// generateSignals evaluates the strategy against the reference moving average
// of maPeriod bars. Bars where the average is not yet defined are flat.
func generateSignals(closes []float64, strat strategy, maPeriod int) ([]types.Position, error) {
	ma, err := indicators.SMA(closes, maPeriod)
	if err != nil {
		return nil, fmt.Errorf("reference ma(%d): %w", maPeriod, ErrInvalidParameter)
	}
	return strat.Signals(closes, ma), nil
}
