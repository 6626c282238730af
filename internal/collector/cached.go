package collector

import (
	"context"
	"strings"
	"sync"
	"time"

	"wealthlab/types"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	series  []types.Candle
	expires time.Time
}

// CachedFetcher memoizes series per symbol and period for ttl and collapses
// concurrent identical requests into one upstream call.
type CachedFetcher struct {
	next  Fetcher
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewCachedFetcher(next Fetcher, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (f *CachedFetcher) Name() string { return f.next.Name() }

func (f *CachedFetcher) FetchPriceSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error) {
	key := strings.ToUpper(symbol) + "|" + string(period)

	f.mu.RLock()
	entry, ok := f.entries[key]
	f.mu.RUnlock()
	if ok && f.now().Before(entry.expires) {
		return clone(entry.series), nil
	}

	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		series, err := f.next.FetchPriceSeries(ctx, symbol, period)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		f.entries[key] = cacheEntry{series: series, expires: f.now().Add(f.ttl)}
		f.mu.Unlock()
		return series, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v.([]types.Candle)), nil
}

// Invalidate drops every cached series.
func (f *CachedFetcher) Invalidate() {
	f.mu.Lock()
	f.entries = make(map[string]cacheEntry)
	f.mu.Unlock()
}

func clone(series []types.Candle) []types.Candle {
	return append([]types.Candle(nil), series...)
}
