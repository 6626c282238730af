package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wealthlab/internal/api/handlers"
	"wealthlab/internal/api/middleware"
	"wealthlab/internal/engine"
	"wealthlab/internal/holdings"
	"wealthlab/internal/pkg/config"
	"wealthlab/internal/pkg/logger"
	"wealthlab/internal/recorder"
	"wealthlab/internal/settings"
	"wealthlab/types"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type priceSource interface {
	FetchPriceSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error)
	Name() string
}

// Deps are the services the HTTP surface exposes.
type Deps struct {
	Engine   *engine.Engine
	Source   priceSource
	Holdings *holdings.Store
	Settings *settings.Store
	Recorder recorder.Recorder
	Version  string
}

// Router holds all dependencies for API routing
type Router struct {
	engine *gin.Engine
	config *config.Config

	healthHandler    *handlers.HealthHandler
	analysisHandler  *handlers.AnalysisHandler
	portfolioHandler *handlers.PortfolioHandler
	settingsHandler  *handlers.SettingsHandler
	backtestsHandler *handlers.BacktestsHandler
}

// NewRouter creates a new API router with all dependencies
func NewRouter(cfg *config.Config, deps Deps) *Router {
	gin.SetMode(cfg.Server.Mode)

	rec := deps.Recorder
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}

	r := &Router{
		engine:           gin.New(),
		config:           cfg,
		healthHandler:    handlers.NewHealthHandler(deps.Version, deps.Source.Name()),
		analysisHandler:  handlers.NewAnalysisHandler(deps.Engine, cfg.Backtest),
		portfolioHandler: handlers.NewPortfolioHandler(deps.Holdings, deps.Source),
		settingsHandler:  handlers.NewSettingsHandler(deps.Settings),
		backtestsHandler: handlers.NewBacktestsHandler(rec),
	}
	r.setupMiddlewares()
	r.setupRoutes()
	return r
}

func (r *Router) setupMiddlewares() {
	// Recovery middleware (must be first)
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	accessLogger := log.Logger
	if r.config.Logging.FileEnabled {
		accessLogger = logger.NewAccessLogger(
			r.config.Logging.FilePath,
			r.config.Logging.RotationSize,
			r.config.Logging.RetentionDays,
		)
	}
	r.engine.Use(middleware.Logging(middleware.LoggingConfig{
		AccessLogger: &accessLogger,
		SkipPaths:    []string{"/health"},
	}))
	r.engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
}

func (r *Router) setupRoutes() {
	r.engine.GET("/", r.healthHandler.Health)
	r.engine.GET("/health", r.healthHandler.Health)

	api := r.engine.Group("/api")
	{
		api.GET("/analyze/:symbol", r.analysisHandler.Analyze)
		api.GET("/simulate/:symbol", r.analysisHandler.Simulate)
		api.GET("/simulate/:symbol/options", r.analysisHandler.SimulateOptions)
		api.GET("/options", r.analysisHandler.Hedge)
		api.GET("/price-option", r.analysisHandler.PriceOption)

		api.GET("/portfolio", r.portfolioHandler.List)
		api.POST("/portfolio", r.portfolioHandler.Add)
		api.DELETE("/portfolio/:id", r.portfolioHandler.Delete)

		api.GET("/settings", r.settingsHandler.Get)
		api.POST("/settings", r.settingsHandler.Save)

		api.GET("/backtests", r.backtestsHandler.List)
	}
}

// Handler returns the http.Handler for the router
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (r *Router) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + r.config.Server.Port,
		Handler:      r.engine,
		ReadTimeout:  r.config.Server.ReadTimeout,
		WriteTimeout: r.config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
