package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the API read history while the monitor writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id              TEXT PRIMARY KEY,
			created_at      INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			strategy        TEXT NOT NULL,
			ma_period       INTEGER,
			leverage        REAL,
			initial_capital REAL,
			final_equity    REAL,
			cagr            REAL,
			mdd             REAL,
			win_rate        REAL,
			total_trades    INTEGER,
			start_date      INTEGER,
			end_date        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_symbol_ts ON backtest_runs(symbol, created_at)`,

		`CREATE TABLE IF NOT EXISTS status_snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			bar_time   INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			status     TEXT NOT NULL,
			price      REAL,
			ma_short   REAL,
			ma_long    REAL,
			rsi        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_status_symbol_ts ON status_snapshots(symbol, created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordBacktest(run *BacktestRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO backtest_runs
		(id, created_at, symbol, strategy, ma_period, leverage, initial_capital,
		 final_equity, cagr, mdd, win_rate, total_trades, start_date, end_date)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.CreatedAt.UnixMilli(), run.Symbol, run.Strategy, run.MAPeriod, run.Leverage,
		run.InitialCapital, run.FinalEquity, run.CAGR, run.MDD, run.WinRate, run.TotalTrades,
		run.StartDate.Unix(), run.EndDate.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) RecordStatus(snap *StatusSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := snap.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO status_snapshots
		(created_at, bar_time, symbol, status, price, ma_short, ma_long, rsi)
		VALUES (?,?,?,?,?,?,?,?)`,
		created.UnixMilli(), snap.BarTime.Unix(), snap.Symbol, snap.Status,
		snap.Price, snap.MAShort, snap.MALong, snap.RSI,
	)
	return err
}

func (r *SQLiteRecorder) ListBacktests(symbol string, limit int) ([]BacktestRun, error) {
	if limit <= 0 {
		limit = 50
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, created_at, symbol, strategy, ma_period, leverage,
		initial_capital, final_equity, cagr, mdd, win_rate, total_trades, start_date, end_date
		FROM backtest_runs
		WHERE (? = '' OR symbol = ?)
		ORDER BY created_at DESC
		LIMIT ?`, symbol, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query backtests: %w", err)
	}
	defer rows.Close()

	var runs []BacktestRun
	for rows.Next() {
		var (
			run                   BacktestRun
			createdMs, start, end int64
		)
		if err := rows.Scan(&run.ID, &createdMs, &run.Symbol, &run.Strategy, &run.MAPeriod, &run.Leverage,
			&run.InitialCapital, &run.FinalEquity, &run.CAGR, &run.MDD, &run.WinRate, &run.TotalTrades,
			&start, &end); err != nil {
			return nil, fmt.Errorf("scan backtest: %w", err)
		}
		run.CreatedAt = time.UnixMilli(createdMs)
		run.StartDate = time.Unix(start, 0).UTC()
		run.EndDate = time.Unix(end, 0).UTC()
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
