package collector

import (
	"context"
	"errors"
	"strings"

	"wealthlab/types"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type quoteSource interface {
	FetchQuote(ctx context.Context, ticker string) (*Quote, error)
}

// DefaultLiveTickers maps symbols to the quote page that carries their
// extended session price.
var DefaultLiveTickers = map[string]string{
	"MTX": "WTX&",
}

// OverlayFetcher patches the last daily bar of selected symbols with a live
// quote, and falls back to a one-bar series from the quote page when history
// fails for a Taiwan listed symbol.
type OverlayFetcher struct {
	history Fetcher
	quotes  quoteSource
	symbols SymbolMap
	live    map[string]string
}

func NewOverlayFetcher(history Fetcher, quotes quoteSource, symbols SymbolMap, live map[string]string) *OverlayFetcher {
	return &OverlayFetcher{
		history: history,
		quotes:  quotes,
		symbols: symbols,
		live:    live,
	}
}

func (f *OverlayFetcher) Name() string { return f.history.Name() + "+live" }

func (f *OverlayFetcher) FetchPriceSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error) {
	key := strings.ToUpper(symbol)
	if ticker, ok := f.live[key]; ok {
		return f.fetchLive(ctx, key, ticker, period)
	}

	series, err := f.history.FetchPriceSeries(ctx, symbol, period)
	if err == nil {
		return series, nil
	}
	ticker := f.symbols.Resolve(symbol)
	if !strings.HasSuffix(ticker, ".TW") {
		return nil, err
	}

	log.Warn().Err(err).Str("symbol", symbol).Msg("history failed, trying quote page")
	quote, qerr := f.quotes.FetchQuote(ctx, ticker)
	if qerr != nil {
		return nil, errors.Join(err, qerr)
	}
	return []types.Candle{quoteCandle(key, quote)}, nil
}

func (f *OverlayFetcher) fetchLive(ctx context.Context, symbol, ticker string, period types.Period) ([]types.Candle, error) {
	series, herr := f.history.FetchPriceSeries(ctx, symbol, period)
	quote, qerr := f.quotes.FetchQuote(ctx, ticker)

	switch {
	case herr == nil && qerr == nil:
		return overlayQuote(series, quote), nil
	case herr == nil:
		log.Warn().Err(qerr).Str("symbol", symbol).Msg("live quote unavailable")
		return series, nil
	case qerr == nil:
		log.Warn().Err(herr).Str("symbol", symbol).Msg("history unavailable, using live quote only")
		return []types.Candle{quoteCandle(symbol, quote)}, nil
	}
	return nil, errors.Join(herr, qerr)
}

// overlayQuote returns a copy of series with the last close replaced by the
// live price and its day change, widening the bar's range when needed.
func overlayQuote(series []types.Candle, quote *Quote) []types.Candle {
	if len(series) == 0 {
		return series
	}
	out := append([]types.Candle(nil), series...)
	last := &out[len(out)-1]
	price := decimal.NewFromFloat(quote.Price)
	last.Close = price
	last.High = decimal.Max(last.High, price)
	last.Low = decimal.Min(last.Low, price)
	last.DayChange = quoteChange(quote)
	return out
}

func quoteCandle(symbol string, quote *Quote) types.Candle {
	price := decimal.NewFromFloat(quote.Price)
	return types.Candle{
		Ticker:    symbol,
		Open:      price,
		High:      price,
		Low:       price,
		Close:     price,
		Volume:    decimal.Zero,
		Timestamp: quote.Time,
		DayChange: quoteChange(quote),
	}
}

func quoteChange(quote *Quote) *decimal.Decimal {
	change := decimal.NewFromFloat(quote.Change)
	return &change
}
