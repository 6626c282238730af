package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a closed round trip reconstructed from signal transitions.
type Trade struct {
	EntryDate    time.Time       `json:"entry_date"`
	EntryPrice   decimal.Decimal `json:"entry_price"`
	Side         Side            `json:"side"`
	ExitDate     time.Time       `json:"exit_date"`
	ExitPrice    decimal.Decimal `json:"exit_price"`
	PnLPct       decimal.Decimal `json:"pnl_pct"`
	DurationDays int             `json:"duration_days"`
}

type EquityPoint struct {
	Date   time.Time       `json:"date"`
	Equity decimal.Decimal `json:"equity"`
}

type YearlyStat struct {
	Year      int             `json:"year"`
	ReturnPct decimal.Decimal `json:"return_pct"`
	MDDPct    decimal.Decimal `json:"mdd_pct"`
	Profit    decimal.Decimal `json:"profit"`
}

// OptionsTrade is one fixed-duration volatility position. For a straddle
// CallStrike and PutStrike both equal Strike.
type OptionsTrade struct {
	EntryDate      time.Time        `json:"entry_date"`
	Type           OptionsTradeType `json:"type"`
	Strike         decimal.Decimal  `json:"strike"`
	CallStrike     decimal.Decimal  `json:"call_strike"`
	PutStrike      decimal.Decimal  `json:"put_strike"`
	EntryS         decimal.Decimal  `json:"entry_s"`
	EntryVol       decimal.Decimal  `json:"entry_vol"`
	EntryCost      decimal.Decimal  `json:"entry_cost,omitempty"`
	CreditReceived decimal.Decimal  `json:"credit_received,omitempty"`
	ExitDate       time.Time        `json:"exit_date"`
	ExitPrice      decimal.Decimal  `json:"exit_price"`
	ExitValue      decimal.Decimal  `json:"exit_value"`
	PnL            decimal.Decimal  `json:"pnl"`
}
