package indicators

import "math"

const TradingDaysPerYear = 252

// HistoricalVolatility is the sample standard deviation of log returns over
// the trailing window, annualized by sqrt(252) and expressed in percent.
// The first window bars are undefined.
func HistoricalVolatility(series []float64, window int) ([]Value, error) {
	if window <= 1 {
		return nil, ErrInvalidWindow
	}
	out := make([]Value, len(series))
	if len(series) <= window {
		return out, nil
	}

	logRets := make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		logRets[i] = math.Log(series[i] / series[i-1])
	}

	annualize := math.Sqrt(TradingDaysPerYear) * 100
	for i := window; i < len(series); i++ {
		rets := logRets[i-window+1 : i+1]
		var sum float64
		for _, r := range rets {
			sum += r
		}
		mean := sum / float64(window)
		var varianceSum float64
		for _, r := range rets {
			diff := r - mean
			varianceSum += diff * diff
		}
		std := math.Sqrt(varianceSum / float64(window-1))
		out[i] = Some(std * annualize)
	}
	return out, nil
}
