package recorder

import "time"

// BacktestRun is the headline outcome of one backtest. Percent fields are
// already multiplied by 100.
type BacktestRun struct {
	ID             string    `json:"id"`
	Symbol         string    `json:"symbol"`
	Strategy       string    `json:"strategy"`
	MAPeriod       int       `json:"ma_period"`
	Leverage       float64   `json:"leverage"`
	InitialCapital float64   `json:"initial_capital"`
	FinalEquity    float64   `json:"final_equity"`
	CAGR           float64   `json:"cagr_percent"`
	MDD            float64   `json:"mdd_percent"`
	WinRate        float64   `json:"win_rate"`
	TotalTrades    int       `json:"total_trades"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// StatusSnapshot is one monitor classification of a symbol's latest bar.
type StatusSnapshot struct {
	Symbol    string
	Status    string
	Price     float64
	MAShort   float64
	MALong    float64
	RSI       float64
	BarTime   time.Time
	CreatedAt time.Time
}

// Recorder persists run history for later review.
type Recorder interface {
	RecordBacktest(run *BacktestRun) error
	RecordStatus(snap *StatusSnapshot) error
	// ListBacktests returns the most recent runs first. An empty symbol
	// matches every symbol.
	ListBacktests(symbol string, limit int) ([]BacktestRun, error)
	Close() error
}
