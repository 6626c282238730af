package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"wealthlab/types"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap SymbolMap
}

// NewHTTPClient builds a client with an optional proxy.
func NewHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func NewYahooFetcher(client *http.Client, baseURL string, symbols SymbolMap) *YahooFetcher {
	return &YahooFetcher{
		Client:    client,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		SymbolMap: symbols,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) FetchPriceSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error) {
	ticker := f.SymbolMap.Resolve(symbol)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s", f.BaseURL, url.PathEscape(ticker), period)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w: %w", ticker, ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo %s: status %d: %w", ticker, resp.StatusCode, ErrDataUnavailable)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error %s: %w", chart.Chart.Error.Description, ErrDataUnavailable)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: no data returned: %w", ticker, ErrDataUnavailable)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	candles := make([]types.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c == nil || *c <= 0 {
			continue // null bars (holidays etc.)
		}
		candles = append(candles, types.Candle{
			Ticker:    strings.ToUpper(symbol),
			Open:      decimalOr(at(quote.Open, i), *c),
			High:      decimalOr(at(quote.High, i), *c),
			Low:       decimalOr(at(quote.Low, i), *c),
			Close:     decimal.NewFromFloat(*c),
			Volume:    decimalOr(at(quote.Volume, i), 0),
			Timestamp: time.Unix(ts, 0).UTC(),
		})
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("yahoo %s: empty series: %w", ticker, ErrDataUnavailable)
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].Timestamp.Before(candles[j].Timestamp) })
	candles = dedupeDays(candles)

	log.Debug().
		Str("symbol", symbol).
		Str("ticker", ticker).
		Str("period", string(period)).
		Int("bars", len(candles)).
		Msg("fetched price series")
	return candles, nil
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func decimalOr(v *float64, fallback float64) decimal.Decimal {
	if v == nil {
		return decimal.NewFromFloat(fallback)
	}
	return decimal.NewFromFloat(*v)
}

// dedupeDays keeps the last bar of each calendar day. The chart API appends a
// live bar that can share a date with the final daily bar.
func dedupeDays(candles []types.Candle) []types.Candle {
	out := candles[:0]
	for _, c := range candles {
		if n := len(out); n > 0 && types.NewDateKey(out[n-1].Timestamp) == types.NewDateKey(c.Timestamp) {
			out[n-1] = c
			continue
		}
		out = append(out, c)
	}
	return out
}
