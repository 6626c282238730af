package cmd

import (
	"fmt"

	"wealthlab/internal/engine"
	"wealthlab/internal/monitor"

	"github.com/spf13/cobra"
)

var monitorOnce bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Analyze the watchlist on the configured cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		m := monitor.New(a.engine, cfg.Monitor.Watchlist, engine.DefaultAnalyzeConfig())
		out := cmd.OutOrStdout()
		m.OnChange(func(t monitor.Transition) {
			fmt.Fprintf(out, "%s: %s -> %s (%s)\n", t.Symbol, t.From, t.To, t.Report.SuggestedAction)
		})

		for _, r := range m.RunNow(ctx) {
			if r.Err != nil {
				fmt.Fprintf(out, "%-8s error: %v\n", r.Symbol, r.Err)
				continue
			}
			fmt.Fprintf(out, "%-8s %-8s %s\n", r.Symbol, r.Report.Status, r.Report.Price)
		}
		if monitorOnce {
			return nil
		}

		if err := m.Register(cfg.Monitor.Cron); err != nil {
			return err
		}
		m.Start(ctx)
		<-ctx.Done()
		m.Stop()
		return nil
	},
}

func init() {
	monitorCmd.Flags().BoolVar(&monitorOnce, "once", false, "run the watchlist once and exit")
}
