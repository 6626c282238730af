package types

// ChartPoint is a chart-ready bar with its moving averages. Averages whose
// lookback is not yet satisfied are nil.
type ChartPoint struct {
	Date         string   `json:"date"`
	Open         float64  `json:"open"`
	High         float64  `json:"high"`
	Low          float64  `json:"low"`
	Close        float64  `json:"close"`
	MAUltraShort *float64 `json:"ma_ultra_short"`
	MAShort      *float64 `json:"ma_short"`
	MALong       *float64 `json:"ma_long"`
}
