package cmd

import (
	"fmt"

	"wealthlab/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	optDays    int
	optCapital float64
	optCSV     string
)

var optionsCmd = &cobra.Command{
	Use:   "options SYMBOL",
	Short: "Backtest the volatility straddle/strangle strategy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		days := optDays
		if days == 0 {
			days = cfg.Backtest.StrategyDays
		}
		capital := optCapital
		if capital == 0 {
			capital = cfg.Backtest.InitialCapital
		}
		oc := engine.NewOptionsConfig(decimal.NewFromFloat(capital), days, cfg.Backtest.RiskFreeRate)
		r, err := a.engine.OptionsSymbol(cmd.Context(), args[0], oc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %d-day options strategy\n", r.Symbol, r.StrategyDays)
		fmt.Fprintf(out, "capital %s -> %s  trades %d  win rate %s%%\n", r.InitialCapital, r.FinalEquity, r.TotalTrades, r.WinRate)
		for _, t := range r.Trades {
			fmt.Fprintf(out, "%s  %-14s  S=%s  vol=%s  pnl=%s\n",
				t.EntryDate.Format("2006-01-02"), t.Type, t.EntryS, t.EntryVol, t.PnL)
		}
		if optCSV != "" {
			if err := engine.WriteOptionsTradesCSVFile(optCSV, r.Trades); err != nil {
				return err
			}
			fmt.Fprintf(out, "trades written to %s\n", optCSV)
		}
		return nil
	},
}

var hedgeCmd = &cobra.Command{
	Use:   "hedge [SYMBOL]",
	Short: "Quote protective puts below the latest index level",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		symbol := cfg.Backtest.HedgeSymbol
		if len(args) == 1 {
			symbol = args[0]
		}
		hc := engine.NewHedgeConfig(cfg.Backtest.RiskFreeRate, engine.DefaultHedgeStrikeStep, engine.DefaultHedgeLegs...)
		r, err := a.engine.HedgeSymbol(cmd.Context(), symbol, hc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s  base %s  HV20 %s%%\n", r.Symbol, r.IndexPrice, r.BaseStrike, r.HV20)
		for _, q := range r.Quotes {
			fmt.Fprintf(out, "%-13s %s %s  %2dd  %s\n", q.Label, q.Strike, q.Kind, q.Days, q.Price)
		}
		return nil
	},
}

func init() {
	optionsCmd.Flags().IntVar(&optDays, "days", 0, "holding period in bars (default from config)")
	optionsCmd.Flags().Float64Var(&optCapital, "capital", 0, "initial capital (default from config)")
	optionsCmd.Flags().StringVar(&optCSV, "csv", "", "write the trade log to this file")
}
