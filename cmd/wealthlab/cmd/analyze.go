package cmd

import (
	"fmt"

	"wealthlab/internal/engine"

	"github.com/spf13/cobra"
)

var analyzeShort, analyzeLong int

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Show the market status of a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.engine.AnalyzeSymbol(cmd.Context(), args[0], engine.NewAnalyzeConfig(analyzeShort, analyzeLong))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s  %s\n", r.Symbol, r.Status, r.SuggestedAction)
		fmt.Fprintf(out, "price %s  MA%d %s  MA%d %s\n", r.Price, r.ShortPeriod, r.MAShort, r.LongPeriod, r.MALong)
		fmt.Fprintf(out, "RSI %s  MACD %s / %s", r.RSI, r.MACD, r.MACDSignal)
		if r.HV20 != nil {
			fmt.Fprintf(out, "  HV20 %s%%", r.HV20)
		}
		fmt.Fprintf(out, "\n%s\n", r.Rationale)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeShort, "ma-short", engine.DefaultShortPeriod, "short moving average window")
	analyzeCmd.Flags().IntVar(&analyzeLong, "ma-long", engine.DefaultLongPeriod, "long moving average window")
}
