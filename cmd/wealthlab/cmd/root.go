// Package cmd holds the wealthlab CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"wealthlab/internal/pkg/config"
	"wealthlab/internal/pkg/logger"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wealthlab",
	Short: "Trend monitor, strategy backtester and options lab",
	Long: `wealthlab analyzes daily price series.

Commands:
    serve       HTTP API (monitor, lab, advisor, portfolio)
    analyze     market status of one symbol
    backtest    trend strategy backtest of one or more symbols
    options     volatility options backtest
    hedge       protective put quotes on the index
    price       price a single European option
    monitor     run the watchlist monitor`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(hedgeCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(monitorCmd)
}

func initConfig() error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logger.Init(logger.Config{
		Level:          level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    "wealthlab",
		ServiceVersion: version,
	})
}
