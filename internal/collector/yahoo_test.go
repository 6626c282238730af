package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wealthlab/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartJSON = `{"chart":{"result":[{"timestamp":[1704157200,1704070800,1704243600,1704245400],
"indicators":{"quote":[{"open":[101,100,null,103],"high":[102,101,null,104],"low":[99,98,null,102],
"close":[101.5,100.5,null,103.5],"volume":[1000,900,null,1100]}]}}],"error":null}}`

func TestYahooFetcher_FetchPriceSeries(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(chartJSON))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.Client(), srv.URL, NewSymbolMap(nil))
	series, err := f.FetchPriceSeries(context.Background(), "tsm", types.SixMonths)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/2330.TW", gotPath)
	assert.Equal(t, "interval=1d&range=6mo", gotQuery)

	// null bar skipped, sorted ascending, same-day live bar replaces the daily bar
	require.Len(t, series, 2)
	assert.Equal(t, "100.5", series[0].Close.String())
	assert.Equal(t, "103.5", series[1].Close.String())
	assert.Equal(t, "TSM", series[1].Ticker)
	assert.True(t, series[0].Timestamp.Before(series[1].Timestamp))
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusNotFound, `{}`},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"all null", http.StatusOK, `{"chart":{"result":[{"timestamp":[1704157200],"indicators":{"quote":[{"close":[null]}]}}],"error":null}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewYahooFetcher(srv.Client(), srv.URL, NewSymbolMap(nil))
			_, err := f.FetchPriceSeries(context.Background(), "XYZ", types.OneYear)
			assert.True(t, errors.Is(err, ErrDataUnavailable), "got %v", err)
		})
	}
}

func TestSymbolMap_Resolve(t *testing.T) {
	m := NewSymbolMap(map[string]string{"spy": "SPY"})
	assert.Equal(t, "^TWII", m.Resolve("taiex"))
	assert.Equal(t, "BTC-USD", m.Resolve("BTC"))
	assert.Equal(t, "SPY", m.Resolve("SPY"))
	assert.Equal(t, "AAPL", m.Resolve("AAPL"))
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:3128", 3*time.Second)
	assert.Equal(t, 3*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	proxy, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(proxy.String(), "http://127.0.0.1:3128"))
}
