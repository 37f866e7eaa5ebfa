package service

import (
	"context"
	"errors"
	"sync"

	"weatherlookup/internal/model"
)

type searchCall struct {
	name  string
	count int
}

type fakeGeocoder struct {
	mu     sync.Mutex
	calls  []searchCall
	places []model.Place
	err    error
}

func (g *fakeGeocoder) Search(ctx context.Context, name string, count int) ([]model.Place, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, searchCall{name: name, count: count})
	if g.err != nil {
		return nil, g.err
	}
	if count < len(g.places) {
		return g.places[:count], nil
	}
	return g.places, nil
}

type fakeForecast struct {
	lat, lon float64
	result   *model.Forecast
	err      error
}

func (f *fakeForecast) Hourly(ctx context.Context, lat, lon float64) (*model.Forecast, error) {
	f.lat, f.lon = lat, lon
	return f.result, f.err
}

type fakeHistory struct {
	mu       sync.Mutex
	searches map[string][]string
	err      error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{searches: map[string][]string{}}
}

func (h *fakeHistory) AddSearch(ctx context.Context, sessionID, city string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.searches[sessionID] = append(h.searches[sessionID], city)
	return nil
}

func (h *fakeHistory) LastCity(ctx context.Context, sessionID string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return "", h.err
	}
	s := h.searches[sessionID]
	if len(s) == 0 {
		return "", nil
	}
	return s[len(s)-1], nil
}

func (h *fakeHistory) CityCounts(ctx context.Context, sessionID string) ([]model.CityCount, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return nil, h.err
	}
	return countCities(h.searches[sessionID]), nil
}

func (h *fakeHistory) Stats(ctx context.Context) ([]model.CityCount, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return nil, h.err
	}
	var all []string
	for _, s := range h.searches {
		all = append(all, s...)
	}
	return countCities(all), nil
}

func countCities(cities []string) []model.CityCount {
	idx := map[string]int{}
	var out []model.CityCount
	for _, c := range cities {
		if i, ok := idx[c]; ok {
			out[i].Count++
			continue
		}
		idx[c] = len(out)
		out = append(out, model.CityCount{City: c, Count: 1})
	}
	return out
}

var errBoom = errors.New("boom")
