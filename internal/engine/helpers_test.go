package engine

import (
	"time"

	"wealthlab/types"

	"github.com/shopspring/decimal"
)

var seriesStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// newSeries builds one daily candle per close starting at start.
func newSeries(start time.Time, closes ...float64) []types.Candle {
	out := make([]types.Candle, len(closes))
	for i, c := range closes {
		price := decimal.NewFromFloat(c)
		out[i] = types.Candle{
			Ticker:    "TEST",
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
			Volume:    decimal.NewFromInt(1000),
			Timestamp: start.AddDate(0, 0, i),
		}
	}
	return out
}

func linearCloses(start float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

func constantCloses(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func alternatingCloses(low, high float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = low
		} else {
			out[i] = high
		}
	}
	return out
}

// zigzagCloses oscillates around base with the given amplitude and period.
func zigzagCloses(base, amplitude float64, period, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		phase := i % (2 * period)
		if phase < period {
			out[i] = base + amplitude*float64(phase)
		} else {
			out[i] = base + amplitude*float64(2*period-phase)
		}
	}
	return out
}
