package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"weatherlookup/internal/config"
	"weatherlookup/internal/logger"
)

func testConfig(geoURL, forecastURL string) *config.Config {
	return &config.Config{
		Env: "test",
		Geocoding: config.GeocodingConfig{
			BaseURL:        geoURL,
			SuggestCount:   5,
			MinQueryLength: 2,
			Timeout:        2 * time.Second,
			RPS:            100,
		},
		Forecast: config.ForecastConfig{
			BaseURL: forecastURL,
			Hourly:  []string{"temperature_2m"},
			Timeout: 2 * time.Second,
		},
	}
}

func TestRun_TypeSelectSubmit(t *testing.T) {
	var geoCalls atomic.Int32
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geoCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("count") == "1" {
			_, _ = w.Write([]byte(`{"results":[{"name":"Perth","country":"Australia","latitude":-31.95,"longitude":115.86}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"name":"Paris","country":"France"},{"name":"Perth","country":"Australia"}]}`))
	}))
	defer geo.Close()

	fc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hourly":{"time":["2026-10-14T00:00","2026-10-14T01:00"],"temperature_2m":[18.5,17.9]}}`))
	}))
	defer fc.Close()

	in := strings.NewReader("P\nPa\n:2\n:submit\n:quit\n")
	var out strings.Builder

	err := run(context.Background(), testConfig(geo.URL, fc.URL), logger.Discard(), in, &out, "", 1)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"1. Paris, France",
		"2. Perth, Australia",
		"> Perth, Australia",
		"Perth, Australia (-31.95, 115.86)",
		"2026-10-14T00:00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "2026-10-14T01:00") {
		t.Errorf("expected only one forecast hour:\n%s", got)
	}
	// one suggestion lookup for "Pa", one standardize on submit
	if n := geoCalls.Load(); n != 2 {
		t.Errorf("geocoding calls = %d, want 2", n)
	}
}

func TestRun_PreselectAndBadSelection(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer geo.Close()

	var out strings.Builder
	err := run(context.Background(), testConfig(geo.URL, geo.URL), logger.Discard(), strings.NewReader(":3\n"), &out, "Minsk, Belarus", 1)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "> Minsk, Belarus") {
		t.Errorf("expected preselected city:\n%s", got)
	}
	if !strings.Contains(got, "no suggestion 3") {
		t.Errorf("expected selection miss:\n%s", got)
	}
}
