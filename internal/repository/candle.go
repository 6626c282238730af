package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wealthlab/types"

	"github.com/jackc/pgx/v5"
)

// GetCandles returns the daily bars of an asset between start and end inclusive.
func (db *Database) GetCandles(ctx context.Context, assetId int, ticker string, start, end time.Time) ([]types.Candle, error) {
	args := dailyCandlesParams{
		AssetID:   int32(assetId),
		StartTime: start,
		EndTime:   end,
	}
	candles, err := db.candles.GetDailyCandles(ctx, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoCandles
		}
		return nil, err
	}
	if len(candles) == 0 {
		return nil, ErrNoCandles
	}
	return convertCandles(candles, ticker), nil
}

// FetchPriceSeries serves a look-back period ending now from the candle store.
func (db *Database) FetchPriceSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error) {
	span, ok := types.PeriodToDuration[period]
	if !ok {
		return nil, fmt.Errorf("%s: %w", period, ErrPeriodNotSupported)
	}
	ticker := strings.ToUpper(symbol)
	asset, err := db.GetAssetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	end := time.Now().UTC()
	candles, err := db.GetCandles(ctx, asset.Id, ticker, end.Add(-span), end)
	if err != nil {
		return nil, fmt.Errorf("ticker %s: %w", ticker, err)
	}
	return candles, nil
}

func convertCandles(candleDAOs []candleRow, ticker string) []types.Candle {
	candles := make([]types.Candle, 0, len(candleDAOs))
	for _, dao := range candleDAOs {
		candles = append(candles, types.Candle{
			Ticker:    ticker,
			Open:      dao.Open,
			Close:     dao.Close,
			High:      dao.High,
			Low:       dao.Low,
			Volume:    dao.Volume,
			Timestamp: dao.Ts,
		})
	}
	return candles
}
