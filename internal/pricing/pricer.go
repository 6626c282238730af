// Package pricing values European options with the Black-Scholes closed form.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"wealthlab/types"
)

var (
	ErrInvalidParameter     = errors.New("invalid pricing parameter")
	ErrNumericIndeterminate = errors.New("option price is not a finite number")
)

// Price returns the theoretical value of a European call or put.
// T is in years, r and sigma are decimals (0.015, 0.2). An expired contract or a
// non-positive volatility is worth its intrinsic value.
func Price(S, K, T, r, sigma float64, kind types.OptionKind) (float64, error) {
	if kind != types.Call && kind != types.Put {
		return 0, fmt.Errorf("unknown option kind %q: %w", kind, ErrInvalidParameter)
	}
	for _, v := range []float64{S, K, T, r, sigma} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("non-finite input: %w", ErrInvalidParameter)
		}
	}
	if S <= 0 || K <= 0 {
		return 0, fmt.Errorf("spot %v and strike %v must be positive: %w", S, K, ErrInvalidParameter)
	}

	if T <= 0 || sigma <= 0 {
		return intrinsic(S, K, kind), nil
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+sigma*sigma/2)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	discount := K * math.Exp(-r*T)

	var price float64
	switch kind {
	case types.Call:
		price = S*normCDF(d1) - discount*normCDF(d2)
	case types.Put:
		price = discount*normCDF(-d2) - S*normCDF(-d1)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrNumericIndeterminate
	}
	return math.Max(price, 0), nil
}

// Intrinsic is the exercise value of the option right now.
func Intrinsic(S, K float64, kind types.OptionKind) float64 {
	return intrinsic(S, K, kind)
}

func intrinsic(S, K float64, kind types.OptionKind) float64 {
	if kind == types.Call {
		return math.Max(0, S-K)
	}
	return math.Max(0, K-S)
}

func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
