package engine

import (
	"wealthlab/types"
)

// openPosition is the only state of the trade reconstructor. A nil
// *openPosition means flat.
type openPosition struct {
	side  types.Position
	index int
}

type tradeBook struct {
	series   []types.Candle
	closes   []float64
	leverage float64
	open     *openPosition
	trades   []types.Trade
}

// reconstructTrades walks the signals once and returns the closed trades,
// most recent first. A position still open on the last bar is not reported.
func reconstructTrades(series []types.Candle, closes []float64, signals []types.Position, leverage float64) []types.Trade {
	book := &tradeBook{
		series:   series,
		closes:   closes,
		leverage: leverage,
	}
	for i, sig := range signals {
		book.step(i, sig)
	}

	trades := book.trades
	for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
		trades[i], trades[j] = trades[j], trades[i]
	}
	return trades
}

func (b *tradeBook) step(i int, sig types.Position) {
	if b.open != nil {
		if sig == b.open.side {
			return
		}
		b.close(i)
	}
	if sig != types.Flat {
		b.open = &openPosition{side: sig, index: i}
	}
}

func (b *tradeBook) close(i int) {
	entry, exit := b.closes[b.open.index], b.closes[i]
	pnl := (exit - entry) / entry * float64(b.open.side) * b.leverage * 100

	b.trades = append(b.trades, types.Trade{
		EntryDate:    b.series[b.open.index].Timestamp,
		EntryPrice:   b.series[b.open.index].Close,
		Side:         b.open.side.Side(),
		ExitDate:     b.series[i].Timestamp,
		ExitPrice:    b.series[i].Close,
		PnLPct:       round2(pnl),
		DurationDays: i - b.open.index,
	})
	b.open = nil
}

// winRate is the share of closed trades with a positive return, in percent.
func winRate(trades []types.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.PnLPct.IsPositive() {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}
