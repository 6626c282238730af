package engine

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

type BatchResult struct {
	Symbol string
	Report *Report
	Err    error
}

// RunBatch backtests each symbol in turn with the same configuration. A
// failing symbol is reported in its result and does not stop the batch.
// Once ctx is cancelled the remaining symbols fail with its error.
func (e *Engine) RunBatch(ctx context.Context, symbols []string, cfg *BacktestConfig, showProgress bool) []BatchResult {
	var bar *progressbar.ProgressBar
	if showProgress {
		bar = initProgressBar(len(symbols))
	}

	results := make([]BatchResult, 0, len(symbols))
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			results = append(results, BatchResult{Symbol: symbol, Err: err})
			continue
		}
		report, err := e.BacktestSymbol(ctx, symbol, cfg)
		if err != nil {
			log.Error().Err(err).Str("symbol", symbol).Msg("batch backtest failed")
		}
		results = append(results, BatchResult{Symbol: symbol, Report: report, Err: err})
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return results
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backtesting symbols..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
