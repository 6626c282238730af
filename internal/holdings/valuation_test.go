package holdings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wealthlab/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mu     sync.Mutex
	closes map[string][]float64
	calls  []string
}

func (m *mockSource) FetchPriceSeries(_ context.Context, symbol string, period types.Period) ([]types.Candle, error) {
	m.mu.Lock()
	m.calls = append(m.calls, symbol+"/"+string(period))
	m.mu.Unlock()

	closes, ok := m.closes[symbol]
	if !ok {
		return nil, errors.New("no data")
	}
	series := make([]types.Candle, len(closes))
	for i, c := range closes {
		series[i] = types.Candle{
			Close:     decimal.NewFromFloat(c),
			Timestamp: time.Date(2024, 1, 2+i, 0, 0, 0, 0, time.UTC),
		}
	}
	return series, nil
}

func pos(symbol string, shares, avg float64) types.Holding {
	return types.Holding{ID: symbol, Symbol: symbol, Shares: decimal.NewFromFloat(shares), AvgCost: decimal.NewFromFloat(avg)}
}

func TestValuate(t *testing.T) {
	src := &mockSource{closes: map[string][]float64{
		"0050": {100, 110},
		"MTX":  {17000, 17100},
		"TQQQ": {50},
	}}

	tests := []struct {
		name      string
		position  types.Holding
		wantPrice string
		wantChg   string
		wantMV    string
		wantPnL   string
		wantPct   string
	}{
		{"stock", pos("0050", 1000, 100), "110", "10", "110000", "10000", "10"},
		{"futures short", pos("MTX", -2, 17200), "17100", "0.59", "10000", "10000", "0.58"},
		{"cash", pos("CASH", 50000.4, 1), "1", "0", "50000", "0", "0"},
		{"single bar", pos("TQQQ", 10, 40), "0", "0", "0", "0", "0"},
		{"fetch error", pos("NOPE", 10, 40), "0", "0", "0", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Valuate(context.Background(), src, []types.Holding{tt.position})
			require.Len(t, summary.Positions, 1)
			v := summary.Positions[0]
			assert.Equal(t, tt.wantPrice, v.CurrentPrice.String(), "price")
			assert.Equal(t, tt.wantChg, v.DailyChangePct.String(), "change")
			assert.Equal(t, tt.wantMV, v.MarketValue.String(), "market value")
			assert.Equal(t, tt.wantPnL, v.PnL.String(), "pnl")
			assert.Equal(t, tt.wantPct, v.PnLPct.String(), "pnl pct")
		})
	}
}

func TestValuate_TotalsAndOrder(t *testing.T) {
	src := &mockSource{closes: map[string][]float64{
		"0050": {100, 110},
		"TQQQ": {40, 50},
	}}
	positions := []types.Holding{pos("0050", 10, 100), pos("CASH", 500, 1), pos("TQQQ", 2, 60)}

	summary := Valuate(context.Background(), src, positions)
	require.Len(t, summary.Positions, 3)
	assert.Equal(t, "0050", summary.Positions[0].Symbol)
	assert.Equal(t, "TQQQ", summary.Positions[2].Symbol)
	assert.Equal(t, "1700", summary.TotalValue.String())
	assert.Equal(t, "80", summary.TotalPnL.String())

	for _, c := range src.calls {
		assert.Contains(t, c, "/5d")
	}
	assert.NotContains(t, src.calls, "CASH/5d")
}
