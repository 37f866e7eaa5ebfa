package service

import (
	"context"

	"weatherlookup/internal/apperr"
	"weatherlookup/internal/logger"
	"weatherlookup/internal/model"
)

// ForecastFetcher fetches the hourly forecast for a coordinate
type ForecastFetcher interface {
	Hourly(ctx context.Context, lat, lon float64) (*model.Forecast, error)
}

// ErrCityNotFound is returned when geocoding finds no match for a city
var ErrCityNotFound = apperr.NotFound("City not found")

// WeatherService resolves a city and fetches its forecast
type WeatherService struct {
	geocoder PlaceSearcher
	forecast ForecastFetcher
	history  HistoryStore
	log      *logger.Logger
}

// NewWeatherService creates a weather service
func NewWeatherService(geocoder PlaceSearcher, forecast ForecastFetcher, history HistoryStore, log *logger.Logger) *WeatherService {
	if log == nil {
		log = logger.Discard()
	}
	return &WeatherService{
		geocoder: geocoder,
		forecast: forecast,
		history:  history,
		log:      log,
	}
}

// Standardize resolves free text to the best matching place
func (s *WeatherService) Standardize(ctx context.Context, city string) (model.Place, error) {
	log := s.log.WithContext(ctx)
	query := NormalizeQuery(city)
	if query == "" {
		return model.Place{}, ErrCityNotFound
	}

	log.Info("fetching geocoding info", "city", query)
	places, err := s.geocoder.Search(ctx, query, 1)
	if err != nil {
		return model.Place{}, err
	}
	if len(places) == 0 {
		log.Warn("geocoding: city not found", "city", query)
		return model.Place{}, ErrCityNotFound
	}

	log.Info("standardized city name", "city", places[0].Label())
	return places[0], nil
}

// Lookup standardizes city, records it in the session history and fetches
// the forecast. A failure to record history does not fail the lookup.
func (s *WeatherService) Lookup(ctx context.Context, sessionID, city string) (*model.WeatherResult, error) {
	place, err := s.Standardize(ctx, city)
	if err != nil {
		return nil, err
	}
	standardized := place.Label()

	if s.history != nil && sessionID != "" {
		if err := s.history.AddSearch(ctx, sessionID, standardized); err != nil {
			s.log.WithContext(ctx).DatabaseError("add_search", err)
		} else {
			s.log.WithContext(ctx).Info("saved search history", "session_id", sessionID, "city", standardized)
		}
	}

	f, err := s.forecast.Hourly(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return &model.WeatherResult{City: standardized, Place: place}, err
	}

	return &model.WeatherResult{City: standardized, Place: place, Forecast: f}, nil
}
