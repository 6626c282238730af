package indicators

import (
	"github.com/markcheno/go-talib"
)

// SMA returns the trailing simple moving average. The first window-1 points
// are undefined.
func SMA(series []float64, window int) ([]Value, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	out := make([]Value, len(series))
	if len(series) < window {
		return out, nil
	}
	raw := talib.Sma(series, window)
	for i := window - 1; i < len(series); i++ {
		out[i] = Some(raw[i])
	}
	return out, nil
}

// EMA returns the exponential moving average with smoothing factor
// 2/(span+1), seeded from the first value with no bias adjustment.
func EMA(series []float64, span int) ([]Value, error) {
	if span <= 0 {
		return nil, ErrInvalidWindow
	}
	out := make([]Value, len(series))
	if len(series) == 0 {
		return out, nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	prev := series[0]
	out[0] = Some(prev)
	for i := 1; i < len(series); i++ {
		prev = alpha*series[i] + (1-alpha)*prev
		out[i] = Some(prev)
	}
	return out, nil
}

// MACD returns the fast-minus-slow EMA line and its signal line.
func MACD(series []float64, fast, slow, signal int) (macd []Value, signalLine []Value, err error) {
	fastEMA, err := EMA(series, fast)
	if err != nil {
		return nil, nil, err
	}
	slowEMA, err := EMA(series, slow)
	if err != nil {
		return nil, nil, err
	}
	if signal <= 0 {
		return nil, nil, ErrInvalidWindow
	}

	macd = make([]Value, len(series))
	line := make([]float64, len(series))
	for i := range series {
		line[i] = fastEMA[i].Float64 - slowEMA[i].Float64
		macd[i] = Some(line[i])
	}
	signalLine, err = EMA(line, signal)
	if err != nil {
		return nil, nil, err
	}
	return macd, signalLine, nil
}
