package handler

import (
	"net/http"

	"weatherlookup/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves search history
type HistoryHandler struct {
	historyService *service.HistoryService
	sessions       Sessions
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *service.HistoryService, sessions Sessions) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		sessions:       sessions,
	}
}

// Page handles GET /history
func (h *HistoryHandler) Page(c *gin.Context) {
	history := h.historyService.History(c.Request.Context(), h.sessions.ID(c))
	c.HTML(http.StatusOK, "history.html", gin.H{"history": history})
}

// Stats handles GET /api/stats
func (h *HistoryHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.historyService.Stats(c.Request.Context()))
}
