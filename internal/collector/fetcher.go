package collector

import (
	"context"
	"errors"
	"strings"

	"wealthlab/types"
)

var ErrDataUnavailable = errors.New("price data unavailable")

// Fetcher loads an ordered daily price series for a symbol.
type Fetcher interface {
	FetchPriceSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error)
	Name() string
}

// DefaultSymbolMap maps friendly names to provider tickers.
var DefaultSymbolMap = map[string]string{
	"00631L": "00631L.TW",
	"0050":   "0050.TW",
	"BTC":    "BTC-USD",
	"ETH":    "ETH-USD",
	"TQQQ":   "TQQQ",
	"TSM":    "2330.TW",
	"MTX":    "^TWII",
	"TAIEX":  "^TWII",
}

// SymbolMap resolves friendly names, falling back to the symbol itself.
type SymbolMap map[string]string

func NewSymbolMap(aliases map[string]string) SymbolMap {
	m := make(SymbolMap, len(DefaultSymbolMap)+len(aliases))
	for k, v := range DefaultSymbolMap {
		m[k] = v
	}
	for k, v := range aliases {
		m[strings.ToUpper(k)] = v
	}
	return m
}

func (m SymbolMap) Resolve(symbol string) string {
	if mapped, ok := m[strings.ToUpper(symbol)]; ok {
		return mapped
	}
	return symbol
}
