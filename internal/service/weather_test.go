package service

import (
	"context"
	"errors"
	"testing"

	"weatherlookup/internal/apperr"
	"weatherlookup/internal/model"
)

func TestWeatherLookup(t *testing.T) {
	geo := &fakeGeocoder{places: []model.Place{
		{Name: "Vitebsk", Country: "Belarus", Latitude: 55.19, Longitude: 30.2},
		{Name: "Vitebsk", Country: "Russia"},
	}}
	fc := &fakeForecast{result: &model.Forecast{Timezone: "GMT"}}
	hist := newFakeHistory()
	svc := NewWeatherService(geo, fc, hist, nil)

	res, err := svc.Lookup(context.Background(), "s1", " vitebsk ")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if res.City != "Vitebsk, Belarus" {
		t.Errorf("City = %q", res.City)
	}
	if res.Forecast == nil || res.Forecast.Timezone != "GMT" {
		t.Errorf("forecast not returned: %+v", res.Forecast)
	}
	if fc.lat != 55.19 || fc.lon != 30.2 {
		t.Errorf("forecast fetched for %v,%v", fc.lat, fc.lon)
	}
	if len(geo.calls) != 1 || geo.calls[0] != (searchCall{name: "vitebsk", count: 1}) {
		t.Errorf("unexpected geocoder calls %+v", geo.calls)
	}
	if got := hist.searches["s1"]; len(got) != 1 || got[0] != "Vitebsk, Belarus" {
		t.Errorf("history not recorded: %v", got)
	}
}

func TestWeatherLookup_CityNotFound(t *testing.T) {
	svc := NewWeatherService(&fakeGeocoder{}, &fakeForecast{}, newFakeHistory(), nil)

	_, err := svc.Lookup(context.Background(), "s1", "Nowhereville")
	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected KindNotFound, got %d", apperr.KindOf(err))
	}

	if _, err := svc.Lookup(context.Background(), "s1", "   "); !errors.Is(err, ErrCityNotFound) {
		t.Errorf("blank city should be not found, got %v", err)
	}
}

func TestWeatherLookup_HistoryFailureIsNotFatal(t *testing.T) {
	geo := &fakeGeocoder{places: []model.Place{{Name: "Minsk", Country: "Belarus"}}}
	hist := newFakeHistory()
	hist.err = errBoom
	svc := NewWeatherService(geo, &fakeForecast{result: &model.Forecast{}}, hist, nil)

	res, err := svc.Lookup(context.Background(), "s1", "Minsk")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if res.City != "Minsk, Belarus" {
		t.Errorf("City = %q", res.City)
	}
}

func TestWeatherLookup_ForecastFailure(t *testing.T) {
	geo := &fakeGeocoder{places: []model.Place{{Name: "Minsk", Country: "Belarus"}}}
	fcErr := apperr.Upstream("forecast request failed", errBoom)
	svc := NewWeatherService(geo, &fakeForecast{err: fcErr}, newFakeHistory(), nil)

	res, err := svc.Lookup(context.Background(), "s1", "Minsk")
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected forecast error, got %v", err)
	}
	if res == nil || res.City != "Minsk, Belarus" || res.Forecast != nil {
		t.Errorf("expected partial result with city only, got %+v", res)
	}
}
