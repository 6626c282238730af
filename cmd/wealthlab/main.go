// Command wealthlab runs the market monitor, backtesting lab and hedge advisor.
//
//	wealthlab serve
//	wealthlab analyze 0050
//	wealthlab backtest 0050 00631L --strategy ma_trend --csv out/
package main

import (
	"os"

	"wealthlab/cmd/wealthlab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
