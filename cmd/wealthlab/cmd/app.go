package cmd

import (
	"context"
	"fmt"
	"strings"

	"wealthlab/internal/collector"
	"wealthlab/internal/engine"
	"wealthlab/internal/pkg/config"
	"wealthlab/internal/pkg/logger"
	"wealthlab/internal/recorder"
	"wealthlab/internal/repository"

	"github.com/rs/zerolog/log"
)

// app bundles the services every command builds from the config.
type app struct {
	source   collector.Fetcher
	recorder recorder.Recorder
	engine   *engine.Engine
	closers  []func()
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	source, err := a.newPriceSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.source = collector.NewCachedFetcher(source, cfg.DataSource.CacheTTL)

	a.recorder = recorder.NewNoopRecorder()
	if cfg.Recorder.SQLitePath != "" {
		rec, err := recorder.NewSQLiteRecorder(cfg.Recorder.SQLitePath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open recorder: %w", err)
		}
		a.recorder = rec
	}
	a.closers = append(a.closers, func() { _ = a.recorder.Close() })

	a.engine = engine.NewEngine(a.source, a.recorder, cfg.Backtest.Benchmark)
	log.Debug().
		Str("source", a.source.Name()).
		Str("benchmark", cfg.Backtest.Benchmark).
		Msg("app ready")
	return a, nil
}

func (a *app) newPriceSource(ctx context.Context, cfg *config.Config) (collector.Fetcher, error) {
	if cfg.DataSource.Kind == "postgres" {
		queryLogger := log.Logger
		if cfg.Logging.FileEnabled {
			queryLogger = logger.NewQueryLogger(cfg.Logging.FilePath, cfg.Logging.RotationSize, cfg.Logging.RetentionDays)
		}
		db, err := repository.NewDatabase(ctx, cfg.Database, &queryLogger)
		if err != nil {
			return nil, fmt.Errorf("connect price database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return db, nil
	}

	client := collector.NewHTTPClient(cfg.DataSource.Proxy, cfg.DataSource.Timeout)
	symbols := collector.NewSymbolMap(cfg.DataSource.Aliases)
	yahoo := collector.NewYahooFetcher(client, cfg.DataSource.BaseURL, symbols)
	quotes := collector.NewQuoteScraper(client, cfg.DataSource.QuoteURL)
	return collector.NewOverlayFetcher(yahoo, quotes, symbols, liveTickers(cfg.DataSource.LiveQuotes, symbols)), nil
}

// liveTickers maps each live-quoted symbol to its quote page ticker.
func liveTickers(symbols []string, m collector.SymbolMap) map[string]string {
	out := make(map[string]string, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(s)
		if t, ok := collector.DefaultLiveTickers[s]; ok {
			out[s] = t
			continue
		}
		out[s] = m.Resolve(s)
	}
	return out
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
