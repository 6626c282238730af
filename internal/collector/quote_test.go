package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteScraper_FetchQuote(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantPrice  float64
		wantChange float64
	}{
		{
			name:       "32px down",
			html:       `<div><span class="Fz(32px) Fw(b)">22,315.00</span><span>▼ 120.50 (0.54%)</span></div>`,
			wantPrice:  22315,
			wantChange: -120.5,
		},
		{
			name:       "42px up",
			html:       `<div><span class="Fz(42px)">185.5</span><span>▲3.5 (1.92%)</span></div>`,
			wantPrice:  185.5,
			wantChange: 3.5,
		},
		{
			name:      "no change text",
			html:      `<div><span class="Fz(32px)">99</span></div>`,
			wantPrice: 99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html><body>" + tt.html + "</body></html>"))
			}))
			defer srv.Close()

			s := NewQuoteScraper(srv.Client(), srv.URL)
			q, err := s.FetchQuote(context.Background(), "0050.TW")
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPrice, q.Price, 1e-9)
			assert.InDelta(t, tt.wantChange, q.Change, 1e-9)
		})
	}
}

func TestQuoteScraper_EscapesTicker(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.EscapedPath()
		w.Write([]byte(`<span class="Fz(32px)">1</span>`))
	}))
	defer srv.Close()

	_, err := NewQuoteScraper(srv.Client(), srv.URL).FetchQuote(context.Background(), "WTX&")
	require.NoError(t, err)
	assert.Equal(t, "/quote/WTX%26", raw)
}

func TestQuoteScraper_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer srv.Close()

	_, err := NewQuoteScraper(srv.Client(), srv.URL).FetchQuote(context.Background(), "0050.TW")
	assert.True(t, errors.Is(err, ErrDataUnavailable))
}

func TestParseChange(t *testing.T) {
	assert.Equal(t, 0.0, parseChange("flat"))
	assert.InDelta(t, -12.0, parseChange("-12 (0.1%)"), 1e-9)
	assert.InDelta(t, 1234.5, parseChange("+1,234.5 (2.0%)"), 1e-9)
}
