// Package monitor periodically analyzes a watchlist and reports regime changes.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"wealthlab/internal/engine"
	"wealthlab/types"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type analyzer interface {
	AnalyzeSymbol(ctx context.Context, symbol string, cfg *engine.AnalyzeConfig) (*engine.StatusReport, error)
}

// Transition is a change of market status between two runs.
type Transition struct {
	Symbol string
	From   types.MarketStatus
	To     types.MarketStatus
	Report *engine.StatusReport
}

// Result is the outcome for one watchlist symbol.
type Result struct {
	Symbol string
	Report *engine.StatusReport
	Err    error
}

// Monitor manages the watchlist cron task.
type Monitor struct {
	cron      *cron.Cron
	analyzer  analyzer
	watchlist []string
	cfg       *engine.AnalyzeConfig
	ctx       context.Context

	mu       sync.Mutex
	last     map[string]types.MarketStatus
	onChange func(Transition)
}

func New(a analyzer, watchlist []string, cfg *engine.AnalyzeConfig) *Monitor {
	if cfg == nil {
		cfg = engine.DefaultAnalyzeConfig()
	}
	symbols := make([]string, 0, len(watchlist))
	for _, s := range watchlist {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	return &Monitor{
		cron:      cron.New(cron.WithSeconds()),
		analyzer:  a,
		watchlist: symbols,
		cfg:       cfg,
		ctx:       context.Background(),
		last:      make(map[string]types.MarketStatus),
	}
}

// OnChange registers a callback invoked for every status transition.
func (m *Monitor) OnChange(fn func(Transition)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Register schedules the watchlist run on a six-field cron spec.
func (m *Monitor) Register(spec string) error {
	if _, err := m.cron.AddFunc(spec, func() { m.RunNow(m.ctx) }); err != nil {
		return fmt.Errorf("register monitor task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler. Scheduled runs use ctx.
func (m *Monitor) Start(ctx context.Context) {
	m.ctx = ctx
	m.cron.Start()
	log.Info().Strs("watchlist", m.watchlist).Msg("monitor started")
}

// Stop stops the scheduler and waits for a running task to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	log.Info().Msg("monitor stopped")
}

// RunNow analyzes every watchlist symbol once.
func (m *Monitor) RunNow(ctx context.Context) []Result {
	results := make([]Result, 0, len(m.watchlist))
	for _, symbol := range m.watchlist {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Symbol: symbol, Err: err})
			continue
		}
		report, err := m.analyzer.AnalyzeSymbol(ctx, symbol, m.cfg)
		if err != nil {
			log.Error().Err(err).Str("symbol", symbol).Msg("monitor analyze failed")
			results = append(results, Result{Symbol: symbol, Err: err})
			continue
		}
		m.observe(symbol, report)
		results = append(results, Result{Symbol: symbol, Report: report})
	}
	return results
}

func (m *Monitor) observe(symbol string, report *engine.StatusReport) {
	m.mu.Lock()
	prev, seen := m.last[symbol]
	m.last[symbol] = report.Status
	onChange := m.onChange
	m.mu.Unlock()

	log.Debug().
		Str("symbol", symbol).
		Str("status", string(report.Status)).
		Str("price", report.Price.String()).
		Msg("monitor reading")

	if !seen || prev == report.Status {
		return
	}
	log.Info().
		Str("symbol", symbol).
		Str("from", string(prev)).
		Str("to", string(report.Status)).
		Str("action", report.SuggestedAction).
		Msg("market status changed")
	if onChange != nil {
		onChange(Transition{Symbol: symbol, From: prev, To: report.Status, Report: report})
	}
}

// Statuses returns the last observed status per symbol.
func (m *Monitor) Statuses() map[string]types.MarketStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]types.MarketStatus, len(m.last))
	for k, v := range m.last {
		out[k] = v
	}
	return out
}
