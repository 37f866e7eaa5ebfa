// Package geocoding is a client for the open-meteo place search API.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherlookup/internal/apperr"
	"weatherlookup/internal/logger"
	"weatherlookup/internal/model"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public open-meteo search endpoint.
const DefaultBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

var (
	// ErrUpstreamStatus is returned when the service answers with a non-2xx status.
	ErrUpstreamStatus = errors.New("unexpected upstream status")
	// ErrDecode is returned when the response body is not the expected JSON.
	ErrDecode = errors.New("malformed geocoding response")
)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Language   string
	Timeout    time.Duration
	RPS        int
	HTTPClient HTTPDoer
	Logger     *logger.Logger
}

// Client performs place searches. Identical concurrent searches share one
// upstream request, and the request rate is capped at Options.RPS.
type Client struct {
	baseURL  string
	language string
	timeout  time.Duration
	http     HTTPDoer
	limiter  *rate.Limiter
	group    singleflight.Group
	log      *logger.Logger
}

// NewClient creates a geocoding client
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid geocoding base url: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.RPS <= 0 {
		opts.RPS = 10
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	return &Client{
		baseURL:  opts.BaseURL,
		language: opts.Language,
		timeout:  opts.Timeout,
		http:     opts.HTTPClient,
		limiter:  rate.NewLimiter(rate.Limit(opts.RPS), opts.RPS),
		log:      opts.Logger,
	}, nil
}

// Search returns up to count places matching name, in the order the service
// ranks them. An absent results field yields an empty slice and no error.
func (c *Client) Search(ctx context.Context, name string, count int) ([]model.Place, error) {
	reqURL, err := c.buildURL(name, count)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "build geocoding url", err).WithOp("geocoding.Search")
	}

	// Shared calls outlive any single caller, so they run on a detached
	// context bounded by the client timeout.
	ch := c.group.DoChan(reqURL, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, reqURL)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		places := res.Val.([]model.Place)
		out := make([]model.Place, len(places))
		copy(out, places)
		return out, nil
	}
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]model.Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		c.log.UpstreamError("geocoding", err)
		return nil, apperr.Upstream("geocoding rate limited", err).WithOp("geocoding.Search")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "build geocoding request", err).WithOp("geocoding.Search")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("geocoding", err)
		return nil, apperr.Upstream("geocoding request failed", err).WithOp("geocoding.Search")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.log.Debug("geocoding request", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
		c.log.UpstreamError("geocoding", err)
		return nil, apperr.Upstream("geocoding request failed", err).WithOp("geocoding.Search")
	}

	var payload model.GeocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		err = fmt.Errorf("%w: %v", ErrDecode, err)
		c.log.UpstreamError("geocoding", err)
		return nil, apperr.Upstream("geocoding request failed", err).WithOp("geocoding.Search")
	}

	if payload.Results == nil {
		return []model.Place{}, nil
	}
	return payload.Results, nil
}

// buildURL constructs the search url with the query encoded
func (c *Client) buildURL(name string, count int) (string, error) {
	ur, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	query := ur.Query()
	query.Set("name", name)
	query.Set("count", strconv.Itoa(count))
	if c.language != "" {
		query.Set("language", c.language)
	}
	ur.RawQuery = query.Encode()

	return ur.String(), nil
}
