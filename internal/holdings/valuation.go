package holdings

import (
	"context"

	"wealthlab/types"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	FuturesSymbol = "MTX"

	valuationPeriod  = types.FiveDays
	valuationWorkers = 4
)

// Multipliers holds contract multipliers per symbol; the default is 1.
var Multipliers = map[string]int64{
	FuturesSymbol: 50,
}

type priceSource interface {
	FetchPriceSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error)
}

// Summary totals a set of valuations.
type Summary struct {
	Positions  []types.HoldingView `json:"positions"`
	TotalValue decimal.Decimal     `json:"total_value"`
	TotalPnL   decimal.Decimal     `json:"total_pnl"`
}

// Valuate marks every position to market. A position whose prices cannot be
// fetched is reported with zero values rather than failing the whole summary.
func Valuate(ctx context.Context, source priceSource, positions []types.Holding) *Summary {
	out := make([]types.HoldingView, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(valuationWorkers)
	for i, p := range positions {
		g.Go(func() error {
			out[i] = valuate(gctx, source, p)
			return nil
		})
	}
	_ = g.Wait()

	summary := &Summary{
		Positions:  out,
		TotalValue: decimal.Zero,
		TotalPnL:   decimal.Zero,
	}
	for _, v := range out {
		summary.TotalValue = summary.TotalValue.Add(v.MarketValue)
		summary.TotalPnL = summary.TotalPnL.Add(v.PnL)
	}
	return summary
}

func valuate(ctx context.Context, source priceSource, p types.Holding) types.HoldingView {
	v := types.HoldingView{
		Holding:        p,
		CurrentPrice:   decimal.Zero,
		DailyChangePct: decimal.Zero,
		MarketValue:    decimal.Zero,
		PnL:            decimal.Zero,
		PnLPct:         decimal.Zero,
	}

	if p.Symbol == types.CashSymbol {
		v.CurrentPrice = decimal.NewFromInt(1)
		v.MarketValue = p.Shares.Round(0)
		return v
	}

	series, err := source.FetchPriceSeries(ctx, p.Symbol, valuationPeriod)
	if err != nil || len(series) < 2 {
		log.Warn().Err(err).Str("symbol", p.Symbol).Int("bars", len(series)).Msg("cannot value position")
		return v
	}

	price := series[len(series)-1].Close
	prev := series[len(series)-2].Close
	if !prev.IsZero() {
		v.DailyChangePct = price.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
	}

	mult := decimal.NewFromInt(multiplier(p.Symbol))
	var pnl, marketValue decimal.Decimal
	if p.Symbol == FuturesSymbol {
		// futures count only their open P&L toward net worth
		pnl = price.Sub(p.AvgCost).Mul(p.Shares).Mul(mult)
		marketValue = pnl
	} else {
		marketValue = price.Mul(p.Shares).Mul(mult)
		pnl = marketValue.Sub(p.AvgCost.Mul(p.Shares).Mul(mult))
	}

	v.CurrentPrice = price.Round(2)
	v.MarketValue = marketValue.Round(0)
	v.PnL = pnl.Round(0)
	if basis := p.AvgCost.Mul(p.Shares.Abs()).Mul(mult); !basis.IsZero() {
		v.PnLPct = pnl.Div(basis).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return v
}

func multiplier(symbol string) int64 {
	if m, ok := Multipliers[symbol]; ok {
		return m
	}
	return 1
}
