package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"wealthlab/internal/engine"
	"wealthlab/types"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	btStrategy string
	btCapital  float64
	btMAPeriod int
	btLeverage float64
	btCSVDir   string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest SYMBOL...",
	Short: "Backtest a trend strategy on one or more symbols",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&btStrategy, "strategy", string(types.StrategyMATrend), "ma_trend, ma_long or buy_hold")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", 0, "initial capital (default from config)")
	backtestCmd.Flags().IntVar(&btMAPeriod, "ma-period", engine.DefaultMAPeriod, "moving average window")
	backtestCmd.Flags().Float64Var(&btLeverage, "leverage", 1, "return multiplier")
	backtestCmd.Flags().StringVar(&btCSVDir, "csv", "", "write each symbol's trade log to DIR/<symbol>_trades.csv")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	capital := btCapital
	if capital == 0 {
		capital = cfg.Backtest.InitialCapital
	}
	bc := engine.NewBacktestConfig(decimal.NewFromFloat(capital), types.StrategyVariant(btStrategy), btMAPeriod, decimal.NewFromFloat(btLeverage))

	results := a.engine.RunBatch(cmd.Context(), args, bc, len(args) > 1)

	out := cmd.OutOrStdout()
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "%s: %v\n", res.Symbol, res.Err)
			errs = append(errs, res.Err)
			continue
		}
		engine.PrintReport(out, res.Report)
		if btCSVDir != "" {
			if err := os.MkdirAll(btCSVDir, 0755); err != nil {
				return err
			}
			path := filepath.Join(btCSVDir, res.Report.Symbol+"_trades.csv")
			if err := engine.WriteTradesCSVFile(path, res.Report.Trades); err != nil {
				return err
			}
			fmt.Fprintf(out, "trades written to %s\n", path)
		}
	}
	return errors.Join(errs...)
}
