package handlers

import (
	"wealthlab/internal/api/response"
	"wealthlab/internal/engine"
	"wealthlab/internal/pkg/config"
	"wealthlab/internal/pricing"
	"wealthlab/types"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AnalysisHandler serves the monitor, lab and advisor endpoints.
type AnalysisHandler struct {
	engine   *engine.Engine
	defaults config.BacktestConfig
}

func NewAnalysisHandler(e *engine.Engine, defaults config.BacktestConfig) *AnalysisHandler {
	return &AnalysisHandler{engine: e, defaults: defaults}
}

// Analyze returns the market status of a symbol
// GET /api/analyze/:symbol?ma_short=20&ma_long=60
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	short, err := intQuery(c, "ma_short", engine.DefaultShortPeriod)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	long, err := intQuery(c, "ma_long", engine.DefaultLongPeriod)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.engine.AnalyzeSymbol(c.Request.Context(), c.Param("symbol"), engine.NewAnalyzeConfig(short, long))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// Simulate backtests a trend strategy against the benchmark
// GET /api/simulate/:symbol?strategy=ma_trend&capital=1000000&ma_period=60&leverage=1
func (h *AnalysisHandler) Simulate(c *gin.Context) {
	capital, err := floatQuery(c, "capital", h.defaults.InitialCapital)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	maPeriod, err := intQuery(c, "ma_period", engine.DefaultMAPeriod)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	leverage, err := floatQuery(c, "leverage", 1)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	strategy := types.StrategyVariant(c.DefaultQuery("strategy", string(types.StrategyMATrend)))

	cfg := engine.NewBacktestConfig(decimal.NewFromFloat(capital), strategy, maPeriod, decimal.NewFromFloat(leverage))
	report, err := h.engine.BacktestSymbol(c.Request.Context(), c.Param("symbol"), cfg)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// SimulateOptions backtests the volatility options strategy
// GET /api/simulate/:symbol/options?strategy_days=7&capital=100000
func (h *AnalysisHandler) SimulateOptions(c *gin.Context) {
	days, err := intQuery(c, "strategy_days", h.defaults.StrategyDays)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	capital, err := floatQuery(c, "capital", h.defaults.InitialCapital)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cfg := engine.NewOptionsConfig(decimal.NewFromFloat(capital), days, h.defaults.RiskFreeRate)
	report, err := h.engine.OptionsSymbol(c.Request.Context(), c.Param("symbol"), cfg)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

// Hedge quotes protective puts on the index
// GET /api/options?symbol=MTX
func (h *AnalysisHandler) Hedge(c *gin.Context) {
	symbol := c.DefaultQuery("symbol", h.defaults.HedgeSymbol)
	cfg := engine.NewHedgeConfig(h.defaults.RiskFreeRate, engine.DefaultHedgeStrikeStep, engine.DefaultHedgeLegs...)

	report, err := h.engine.HedgeSymbol(c.Request.Context(), symbol, cfg)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

type optionPrice struct {
	Spot      float64          `json:"spot"`
	Strike    float64          `json:"strike"`
	Years     float64          `json:"years"`
	Rate      float64          `json:"rate"`
	Sigma     float64          `json:"sigma"`
	Kind      types.OptionKind `json:"kind"`
	Price     float64          `json:"price"`
	Intrinsic float64          `json:"intrinsic"`
}

// PriceOption prices a single European option
// GET /api/price-option?S=100&K=100&T=1&r=0.05&sigma=0.2&kind=call
func (h *AnalysisHandler) PriceOption(c *gin.Context) {
	var q optionPrice
	var err error
	for _, p := range []struct {
		key string
		dst *float64
	}{{"S", &q.Spot}, {"K", &q.Strike}, {"T", &q.Years}, {"sigma", &q.Sigma}} {
		if *p.dst, err = requiredFloat(c, p.key); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	if q.Rate, err = floatQuery(c, "r", h.defaults.RiskFreeRate); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	q.Kind = types.OptionKind(c.DefaultQuery("kind", string(types.Call)))

	if q.Price, err = pricing.Price(q.Spot, q.Strike, q.Years, q.Rate, q.Sigma, q.Kind); err != nil {
		response.FromError(c, err)
		return
	}
	q.Intrinsic = pricing.Intrinsic(q.Spot, q.Strike, q.Kind)
	response.Success(c, q)
}
