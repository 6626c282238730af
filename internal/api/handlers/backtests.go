package handlers

import (
	"strings"

	"wealthlab/internal/api/response"
	"wealthlab/internal/recorder"

	"github.com/gin-gonic/gin"
)

type runLister interface {
	ListBacktests(symbol string, limit int) ([]recorder.BacktestRun, error)
}

type BacktestsHandler struct {
	runs runLister
}

func NewBacktestsHandler(runs runLister) *BacktestsHandler {
	return &BacktestsHandler{runs: runs}
}

// List returns recorded backtest runs, newest first
// GET /api/backtests?symbol=0050&limit=20
func (h *BacktestsHandler) List(c *gin.Context) {
	limit, err := intQuery(c, "limit", 50)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	runs, err := h.runs.ListBacktests(strings.ToUpper(c.Query("symbol")), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessList(c, runs, len(runs))
}
