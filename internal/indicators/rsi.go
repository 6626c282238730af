package indicators

// RSI computes the relative strength index from simple rolling averages of
// gains and losses over window price changes. The first bar has no prior
// close and counts as an unchanged bar, so the first window-1 bars are
// undefined. A window with no losses reads exactly 100.
func RSI(series []float64, window int) ([]Value, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	out := make([]Value, len(series))
	for i := window - 1; i < len(series); i++ {
		var gains, losses float64
		for j := max(1, i-window+1); j <= i; j++ {
			change := series[j] - series[j-1]
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
		}
		avgGain := gains / float64(window)
		avgLoss := losses / float64(window)
		if avgLoss == 0 {
			out[i] = Some(100)
			continue
		}
		rs := avgGain / avgLoss
		out[i] = Some(100 - 100/(1+rs))
	}
	return out, nil
}
