package types

import "time"

// Period is the look-back window requested from a price source.
type Period string

const (
	OneDay      Period = "1d"
	FiveDays    Period = "5d"
	OneMonth    Period = "1mo"
	ThreeMonths Period = "3mo"
	SixMonths   Period = "6mo"
	OneYear     Period = "1y"
	TwoYears    Period = "2y"
	FiveYears   Period = "5y"
	TenYears    Period = "10y"
)

var PeriodToDuration = map[Period]time.Duration{
	OneDay:      time.Hour * 24,
	FiveDays:    time.Hour * 24 * 5,
	OneMonth:    time.Hour * 24 * 31,
	ThreeMonths: time.Hour * 24 * 92,
	SixMonths:   time.Hour * 24 * 183,
	OneYear:     time.Hour * 24 * 366,
	TwoYears:    time.Hour * 24 * 731,
	FiveYears:   time.Hour * 24 * 1827,
	TenYears:    time.Hour * 24 * 3653,
}

var ConvertPeriod = map[string]Period{
	"1d":  OneDay,
	"5d":  FiveDays,
	"1mo": OneMonth,
	"3mo": ThreeMonths,
	"6mo": SixMonths,
	"1y":  OneYear,
	"2y":  TwoYears,
	"5y":  FiveYears,
	"10y": TenYears,
}
