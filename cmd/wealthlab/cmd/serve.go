package cmd

import (
	"wealthlab/internal/api"
	"wealthlab/internal/engine"
	"wealthlab/internal/holdings"
	"wealthlab/internal/monitor"
	"wealthlab/internal/settings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveWithMonitor bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithMonitor, "monitor", true, "run the watchlist monitor alongside the API")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if serveWithMonitor {
		m := monitor.New(a.engine, cfg.Monitor.Watchlist, engine.DefaultAnalyzeConfig())
		if err := m.Register(cfg.Monitor.Cron); err != nil {
			return err
		}
		m.Start(ctx)
		defer m.Stop()
	}

	router := api.NewRouter(cfg, api.Deps{
		Engine:   a.engine,
		Source:   a.source,
		Holdings: holdings.NewStore(cfg.Holdings.File),
		Settings: settings.NewStore(cfg.Settings.File),
		Recorder: a.recorder,
		Version:  version,
	})
	log.Info().Str("port", cfg.Server.Port).Str("source", a.source.Name()).Msg("starting wealthlab API")
	return router.Run(ctx)
}
