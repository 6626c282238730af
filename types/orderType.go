package types

type Side string

type OptionKind string

type OptionsTradeType string

type StrategyVariant string

type MarketStatus string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"

	Call OptionKind = "call"
	Put  OptionKind = "put"

	LongStraddle  OptionsTradeType = "LONG_STRADDLE"
	ShortStrangle OptionsTradeType = "SHORT_STRANGLE"

	StrategyMATrend StrategyVariant = "ma_trend"
	StrategyMALong  StrategyVariant = "ma_long"
	StrategyBuyHold StrategyVariant = "buy_hold"

	StatusBull    MarketStatus = "BULL"
	StatusWarning MarketStatus = "WARNING"
	StatusBear    MarketStatus = "BEAR"
)

var ConvertStrategy = map[string]StrategyVariant{
	"ma_trend": StrategyMATrend,
	"ma_long":  StrategyMALong,
	"buy_hold": StrategyBuyHold,
}

var ConvertOptionKind = map[string]OptionKind{
	"call": Call,
	"put":  Put,
}
