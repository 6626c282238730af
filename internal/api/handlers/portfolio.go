package handlers

import (
	"context"
	"net/http"

	"wealthlab/internal/api/response"
	"wealthlab/internal/holdings"
	"wealthlab/types"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type priceSource interface {
	FetchPriceSeries(ctx context.Context, symbol string, period types.Period) ([]types.Candle, error)
}

// PortfolioHandler manages the tracked holdings.
type PortfolioHandler struct {
	store  *holdings.Store
	source priceSource
}

func NewPortfolioHandler(store *holdings.Store, source priceSource) *PortfolioHandler {
	return &PortfolioHandler{store: store, source: source}
}

type addPositionRequest struct {
	Symbol  string          `json:"symbol" binding:"required"`
	Shares  decimal.Decimal `json:"shares"`
	AvgCost decimal.Decimal `json:"avg_cost"`
}

// List returns holdings marked to market
// GET /api/portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	positions, err := h.store.List()
	if err != nil {
		response.FromError(c, err)
		return
	}
	summary := holdings.Valuate(c.Request.Context(), h.source, positions)
	response.SuccessList(c, summary, len(summary.Positions))
}

// Add records a new holding
// POST /api/portfolio
func (h *PortfolioHandler) Add(c *gin.Context) {
	var req addPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	p, err := h.store.Add(req.Symbol, req.Shares, req.AvgCost)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, p, "position added")
}

// Delete removes a holding
// DELETE /api/portfolio/:id
func (h *PortfolioHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Delete(id); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "id": id})
}
