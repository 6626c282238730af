package indicators

const (
	UltraShortWindow = 10
	RSIWindow        = 14
	MACDFast         = 12
	MACDSlow         = 26
	MACDSignalSpan   = 9
	HVWindow         = 20
)

// Set holds every indicator reading for one bar.
type Set struct {
	MAUltraShort Value
	MAShort      Value
	MALong       Value
	RSI          Value
	MACD         Value
	MACDSignal   Value
	HV20         Value
}

// Compute evaluates the full indicator set, one Set per input bar.
func Compute(closes []float64, shortPeriod, longPeriod int) ([]Set, error) {
	ultra, err := SMA(closes, UltraShortWindow)
	if err != nil {
		return nil, err
	}
	short, err := SMA(closes, shortPeriod)
	if err != nil {
		return nil, err
	}
	long, err := SMA(closes, longPeriod)
	if err != nil {
		return nil, err
	}
	rsi, err := RSI(closes, RSIWindow)
	if err != nil {
		return nil, err
	}
	macd, signal, err := MACD(closes, MACDFast, MACDSlow, MACDSignalSpan)
	if err != nil {
		return nil, err
	}
	hv, err := HistoricalVolatility(closes, HVWindow)
	if err != nil {
		return nil, err
	}

	sets := make([]Set, len(closes))
	for i := range closes {
		sets[i] = Set{
			MAUltraShort: ultra[i],
			MAShort:      short[i],
			MALong:       long[i],
			RSI:          rsi[i],
			MACD:         macd[i],
			MACDSignal:   signal[i],
			HV20:         hv[i],
		}
	}
	return sets, nil
}
