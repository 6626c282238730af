package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type assetRow struct {
	ID         int32
	Ticker     string
	Name       string
	Type       string
	CreatedAt  *time.Time
	ModifiedAt *time.Time
}

type candleRow struct {
	AssetID int32
	Ts      time.Time
	Open    decimal.Decimal
	High    decimal.Decimal
	Low     decimal.Decimal
	Close   decimal.Decimal
	Volume  decimal.Decimal
}

type dailyCandlesParams struct {
	AssetID   int32
	StartTime time.Time
	EndTime   time.Time
}

type queries struct {
	db dbtx
}

const getAssetByTicker = `
SELECT id, ticker, name, type, created_at, modified_at
FROM assets
WHERE ticker = $1
LIMIT 1`

func (q *queries) GetAssetByTicker(ctx context.Context, ticker string) (assetRow, error) {
	var a assetRow
	err := q.db.QueryRow(ctx, getAssetByTicker, ticker).Scan(
		&a.ID,
		&a.Ticker,
		&a.Name,
		&a.Type,
		&a.CreatedAt,
		&a.ModifiedAt,
	)
	return a, err
}

const getDailyCandles = `
SELECT asset_id, ts, open, high, low, close, volume
FROM daily_candles
WHERE asset_id = $1 AND ts >= $2 AND ts <= $3
ORDER BY ts`

func (q *queries) GetDailyCandles(ctx context.Context, arg dailyCandlesParams) ([]candleRow, error) {
	rows, err := q.db.Query(ctx, getDailyCandles, arg.AssetID, arg.StartTime, arg.EndTime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []candleRow
	for rows.Next() {
		var c candleRow
		if err := rows.Scan(&c.AssetID, &c.Ts, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS assets (
		id          SERIAL PRIMARY KEY,
		ticker      TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL DEFAULT 'STOCK',
		created_at  TIMESTAMPTZ DEFAULT now(),
		modified_at TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS daily_candles (
		asset_id INTEGER NOT NULL REFERENCES assets(id),
		ts       TIMESTAMPTZ NOT NULL,
		open     NUMERIC NOT NULL,
		high     NUMERIC NOT NULL,
		low      NUMERIC NOT NULL,
		close    NUMERIC NOT NULL,
		volume   NUMERIC NOT NULL DEFAULT 0,
		PRIMARY KEY (asset_id, ts)
	)`,
}

func (q *queries) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := q.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
