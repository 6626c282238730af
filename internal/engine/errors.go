package engine

import (
	"errors"
	"fmt"

	"wealthlab/internal/pricing"
	"wealthlab/types"
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidParameter = errors.New("invalid parameter")
	// Shared with the pricer so errors.Is matches either way.
	ErrNumericIndeterminate = pricing.ErrNumericIndeterminate
)

// validateSeries checks that the series is long enough and well formed.
func validateSeries(series []types.Candle, minBars int) error {
	if len(series) == 0 {
		return fmt.Errorf("empty price series: %w", ErrInsufficientData)
	}
	if len(series) < minBars {
		return fmt.Errorf("need at least %d bars, got %d: %w", minBars, len(series), ErrInsufficientData)
	}
	for i, c := range series {
		if !c.Close.IsPositive() {
			return fmt.Errorf("bar %d has non-positive close %s: %w", i, c.Close, ErrInvalidParameter)
		}
		if i > 0 && !c.Timestamp.After(series[i-1].Timestamp) {
			return fmt.Errorf("bar %d timestamp %s is not after %s: %w",
				i, c.Timestamp.Format(dateLayout), series[i-1].Timestamp.Format(dateLayout), ErrInvalidParameter)
		}
	}
	return nil
}

func pricingErr(err error) error {
	if errors.Is(err, pricing.ErrInvalidParameter) {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return err
}
