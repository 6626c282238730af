package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSymbol is the pseudo-symbol for uninvested cash in the holdings list.
const CashSymbol = "CASH"

type Holding struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Shares    decimal.Decimal `json:"shares"`
	AvgCost   decimal.Decimal `json:"avg_cost"`
	CreatedAt time.Time       `json:"created_at"`
}

// HoldingView is a holding marked to the latest available close.
type HoldingView struct {
	Holding
	CurrentPrice   decimal.Decimal `json:"current_price"`
	DailyChangePct decimal.Decimal `json:"daily_change_pct"`
	MarketValue    decimal.Decimal `json:"market_value"`
	PnL            decimal.Decimal `json:"pnl"`
	PnLPct         decimal.Decimal `json:"pnl_pct"`
}
