// Package forecast is a client for the open-meteo hourly forecast API.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherlookup/internal/apperr"
	"weatherlookup/internal/logger"
	"weatherlookup/internal/model"
)

// DefaultBaseURL is the public open-meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// DefaultHourly are the hourly variables the weather page shows.
var DefaultHourly = []string{"temperature_2m", "weathercode", "precipitation", "windspeed_10m"}

// Client fetches hourly forecasts for a coordinate.
type Client struct {
	baseURL string
	hourly  []string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a forecast client. Empty or zero arguments use the
// defaults.
func NewClient(baseURL string, hourly []string, timeout time.Duration, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if len(hourly) == 0 {
		hourly = DefaultHourly
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		baseURL: baseURL,
		hourly:  hourly,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Hourly fetches the hourly forecast for a coordinate.
func (c *Client) Hourly(ctx context.Context, lat, lon float64) (*model.Forecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("hourly", strings.Join(c.hourly, ","))

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("forecast", err)
		return nil, apperr.Upstream("forecast request failed", err).WithOp("forecast.Hourly")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		c.log.UpstreamError("forecast", err)
		return nil, apperr.Upstream("forecast request failed", err).WithOp("forecast.Hourly")
	}

	var f model.Forecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		c.log.UpstreamError("forecast", err)
		return nil, apperr.Upstream("malformed forecast response", err).WithOp("forecast.Hourly")
	}

	return &f, nil
}
