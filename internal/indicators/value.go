// Package indicators computes per-bar technical indicators over a closing
// price series. Every function is pure and works on the whole series.
package indicators

import "errors"

var ErrInvalidWindow = errors.New("indicator window must be positive")

// Value is an indicator reading that may not exist yet because its look-back
// window is not satisfied.
type Value struct {
	Float64 float64
	Valid   bool
}

func Some(v float64) Value {
	return Value{Float64: v, Valid: true}
}

// Ptr returns nil for an undefined value.
func (v Value) Ptr() *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
