package handler

import (
	"errors"
	"net/http"

	"weatherlookup/internal/apperr"
	"weatherlookup/internal/logger"
	"weatherlookup/internal/model"
	"weatherlookup/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgCityNotFound  = "City not found"
	msgWeatherFailed = "Failed to fetch weather"

	// forecastHours is how many hourly rows the page shows.
	forecastHours = 24
)

// WeatherHandler serves the weather form and lookups
type WeatherHandler struct {
	weatherService *service.WeatherService
	historyService *service.HistoryService
	sessions       Sessions
	log            *logger.Logger
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherService *service.WeatherService, historyService *service.HistoryService, sessions Sessions, log *logger.Logger) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		historyService: historyService,
		sessions:       sessions,
		log:            log,
	}
}

// Index handles GET /
func (h *WeatherHandler) Index(c *gin.Context) {
	lastCity := h.historyService.LastCity(c.Request.Context(), h.sessions.ID(c))
	c.HTML(http.StatusOK, "index.html", indexPage(nil, "", "", lastCity))
}

// Post handles POST /weather with the form field city
func (h *WeatherHandler) Post(c *gin.Context) {
	var req model.WeatherRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", indexPage(nil, msgCityNotFound, "", ""))
		return
	}
	h.lookup(c, req.City)
}

// Get handles GET /weather?city=
func (h *WeatherHandler) Get(c *gin.Context) {
	var req model.WeatherRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", indexPage(nil, msgCityNotFound, "", ""))
		return
	}
	h.lookup(c, req.City)
}

func (h *WeatherHandler) lookup(c *gin.Context, city string) {
	log := h.log.WithContext(c.Request.Context())
	log.Info("weather lookup", "method", c.Request.Method, "city", city)

	sessionID, isNew := h.sessions.Ensure(c)
	if isNew {
		log.Info("generated new session", "session_id", sessionID)
	}

	res, err := h.weatherService.Lookup(c.Request.Context(), sessionID, city)
	switch {
	case err == nil:
		h.sessions.Set(c, sessionID)
		c.HTML(http.StatusOK, "index.html", indexPage(res.Forecast, "", res.City, res.City))

	case res != nil:
		// the search is recorded, so the session cookie is issued even though
		// the forecast failed
		log.Error("weather fetch failed", "city", res.City, "error", err)
		h.sessions.Set(c, sessionID)
		c.HTML(http.StatusOK, "index.html", indexPage(nil, msgWeatherFailed, res.City, res.City))

	default:
		if errors.Is(err, service.ErrCityNotFound) {
			log.Warn("city not found", "city", city)
		} else if apperr.KindOf(err) == apperr.KindUpstream {
			log.Error("geocoding failed", "city", city, "error", err)
		}
		c.HTML(http.StatusOK, "index.html", indexPage(nil, msgCityNotFound, city, ""))
	}
}

func indexPage(forecast *model.Forecast, errMsg, city, lastCity string) gin.H {
	return gin.H{
		"weather":   forecast,
		"rows":      forecast.Rows(forecastHours),
		"error":     errMsg,
		"city":      city,
		"last_city": lastCity,
	}
}
