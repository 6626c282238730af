package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one daily price bar. Series of candles are ordered by Timestamp,
// strictly increasing, one row per trading day.
type Candle struct {
	Ticker    string          `json:"ticker"`
	Open      decimal.Decimal `json:"open"`
	Close     decimal.Decimal `json:"close"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Volume    decimal.Decimal `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`

	// DayChange is the quoted point change of a bar patched from a live quote.
	DayChange *decimal.Decimal `json:"day_change,omitempty"`
}

// Closes copies the closing prices of the series into a new float slice.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close.InexactFloat64()
	}
	return out
}

// DateKey identifies the calendar day of a bar, independent of time zone offsets
// within that day.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDateKey(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{Year: y, Month: m, Day: d}
}
