package engine

import (
	"math"
	"time"

	"wealthlab/types"
)

// bar is one backtest step. PrevPosition is the position carried into the bar,
// decided on the previous close; it alone drives the bar's return.
type bar struct {
	Date         time.Time
	Close        float64
	Position     types.Position
	PrevPosition types.Position
	Return       float64
	Equity       float64
}

func simulateEquity(series []types.Candle, closes []float64, positions []types.Position, leverage, capital float64) []bar {
	bars := make([]bar, len(series))
	equity := capital
	for i := range series {
		b := bar{
			Date:     series[i].Timestamp,
			Close:    closes[i],
			Position: positions[i],
		}
		if i > 0 {
			b.PrevPosition = positions[i-1]
			pctChange := closes[i]/closes[i-1] - 1
			b.Return = pctChange * float64(b.PrevPosition) * leverage
		}
		equity *= 1 + b.Return
		b.Equity = equity
		bars[i] = b
	}
	return bars
}

func equityValues(bars []bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Equity
	}
	return out
}

// compound grows capital through the close-to-close changes of an unlevered
// long position.
func compound(closes []float64, capital float64) []float64 {
	out := make([]float64, len(closes))
	equity := capital
	for i := range closes {
		if i > 0 {
			equity *= closes[i] / closes[i-1]
		}
		out[i] = equity
	}
	return out
}

// maxDrawdown is the deepest fall from a running peak, as a fraction <= 0.
func maxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}
	peak := equity[0]
	mdd := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak <= 0 {
			continue
		}
		if dd := (v - peak) / peak; dd < mdd {
			mdd = dd
		}
	}
	return mdd
}

// cagr annualizes the growth from initial to final as a fraction, counting
// one day per bar.
func cagr(initial, final float64, bars int) float64 {
	if bars <= 0 || initial <= 0 || final <= 0 {
		return 0
	}
	return math.Pow(final/initial, 365/float64(bars)) - 1
}

func calendarDays(start, end time.Time) int {
	s := types.NewDateKey(start)
	e := types.NewDateKey(end)
	from := time.Date(s.Year, s.Month, s.Day, 0, 0, 0, 0, time.UTC)
	to := time.Date(e.Year, e.Month, e.Day, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// yearlyStats buckets the equity curve by calendar year, most recent first.
// Years with fewer than minYearBars bars are dropped.
func yearlyStats(bars []bar) []types.YearlyStat {
	var stats []types.YearlyStat
	for start := 0; start < len(bars); {
		year := bars[start].Date.Year()
		end := start
		for end < len(bars) && bars[end].Date.Year() == year {
			end++
		}
		if end-start >= minYearBars {
			slice := equityValues(bars[start:end])
			first, last := slice[0], slice[len(slice)-1]
			ret := 0.0
			if first != 0 {
				ret = (last - first) / first
			}
			stats = append(stats, types.YearlyStat{
				Year:      year,
				ReturnPct: round2(ret * 100),
				MDDPct:    round2(maxDrawdown(slice) * 100),
				Profit:    round2(last - first),
			})
		}
		start = end
	}
	for i, j := 0, len(stats)-1; i < j; i, j = i+1, j-1 {
		stats[i], stats[j] = stats[j], stats[i]
	}
	return stats
}

// alignBenchmark keeps the benchmark bars whose calendar date also appears in
// the primary series.
func alignBenchmark(primary, benchmark []types.Candle) []types.Candle {
	if len(benchmark) == 0 {
		return nil
	}
	dates := make(map[types.DateKey]struct{}, len(primary))
	for _, c := range primary {
		dates[types.NewDateKey(c.Timestamp)] = struct{}{}
	}
	var aligned []types.Candle
	for _, c := range benchmark {
		if !c.Close.IsPositive() {
			continue
		}
		if _, ok := dates[types.NewDateKey(c.Timestamp)]; ok {
			aligned = append(aligned, c)
		}
	}
	return aligned
}

// benchmarkStats returns CAGR and MDD fractions of buy and hold on the aligned
// benchmark, zero when nothing aligned.
func benchmarkStats(aligned []types.Candle, capital float64) (float64, float64) {
	if len(aligned) == 0 {
		return 0, 0
	}
	equity := compound(types.Closes(aligned), capital)
	growth := cagr(capital, equity[len(equity)-1], len(aligned))
	return growth, maxDrawdown(equity)
}
