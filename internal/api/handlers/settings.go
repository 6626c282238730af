package handlers

import (
	"net/http"

	"wealthlab/internal/api/response"
	"wealthlab/internal/settings"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	store *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// Get returns the saved lab settings, or {} when none exist
// GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, doc)
}

// Save replaces the lab settings
// POST /api/settings
func (h *SettingsHandler) Save(c *gin.Context) {
	var doc settings.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.BadRequest(c, "settings must be a JSON object")
		return
	}
	if err := h.store.Save(doc); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
