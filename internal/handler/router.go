package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups the route handlers
type Handlers struct {
	Suggest     *SuggestHandler
	Weather     *WeatherHandler
	History     *HistoryHandler
	RateLimiter *IPRateLimiter
}

// RegisterRoutes mounts the page and API routes
func RegisterRoutes(router *gin.Engine, h Handlers) {
	suggest := router.Group("/")
	if h.RateLimiter != nil {
		suggest.Use(h.RateLimiter.RateLimit())
	}
	suggest.GET("/suggestions", h.Suggest.Fragment)

	router.GET("/", h.Weather.Index)
	router.GET("/weather", h.Weather.Get)
	router.POST("/weather", h.Weather.Post)
	router.GET("/history", h.History.Page)
	router.GET("/api/stats", h.History.Stats)

	apiV1 := router.Group("/api/v1")
	if h.RateLimiter != nil {
		apiV1.Use(h.RateLimiter.RateLimit())
	}
	{
		apiV1.GET("/suggestions", h.Suggest.List)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
}
