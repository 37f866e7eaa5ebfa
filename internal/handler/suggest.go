package handler

import (
	"bytes"
	"net/http"

	"weatherlookup/internal/logger"
	"weatherlookup/internal/model"
	"weatherlookup/internal/service"

	"github.com/gin-gonic/gin"
)

// SuggestHandler serves city suggestions
type SuggestHandler struct {
	suggestService *service.SuggestService
	log            *logger.Logger
}

// NewSuggestHandler creates a new suggest handler
func NewSuggestHandler(suggestService *service.SuggestService, log *logger.Logger) *SuggestHandler {
	return &SuggestHandler{
		suggestService: suggestService,
		log:            log,
	}
}

// List handles GET /api/v1/suggestions?q=
func (h *SuggestHandler) List(c *gin.Context) {
	var req model.SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	suggestions, err := h.suggestService.Suggest(c.Request.Context(), req.Query)
	if err != nil {
		h.log.WithContext(c.Request.Context()).Warn("suggestion lookup failed", "query", req.Query, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SuggestResponse{
		Query:       service.NormalizeQuery(req.Query),
		Suggestions: suggestions,
	})
}

// Fragment handles GET /suggestions?q= and returns the list items as HTML.
// Lookup failures render an empty list so the page shows no suggestions.
func (h *SuggestHandler) Fragment(c *gin.Context) {
	var req model.SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", nil)
		return
	}

	suggestions, err := h.suggestService.Suggest(c.Request.Context(), req.Query)
	if err != nil {
		h.log.WithContext(c.Request.Context()).Warn("suggestion lookup failed", "query", req.Query, "error", err)
		suggestions = nil
	}

	var buf bytes.Buffer
	if err := service.RenderHTML(&buf, suggestions); err != nil {
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
