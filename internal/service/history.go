package service

import (
	"context"

	"weatherlookup/internal/logger"
	"weatherlookup/internal/model"
)

// HistoryStore persists weather lookups per session
type HistoryStore interface {
	AddSearch(ctx context.Context, sessionID, city string) error
	LastCity(ctx context.Context, sessionID string) (string, error)
	CityCounts(ctx context.Context, sessionID string) ([]model.CityCount, error)
	Stats(ctx context.Context) ([]model.CityCount, error)
}

// HistoryService reads search history. Storage failures are logged and
// reported as empty history so pages still render.
type HistoryService struct {
	store HistoryStore
	log   *logger.Logger
}

// NewHistoryService creates a history service
func NewHistoryService(store HistoryStore, log *logger.Logger) *HistoryService {
	if log == nil {
		log = logger.Discard()
	}
	return &HistoryService{store: store, log: log}
}

// LastCity returns the most recent city of a session, or ""
func (s *HistoryService) LastCity(ctx context.Context, sessionID string) string {
	if sessionID == "" {
		return ""
	}
	city, err := s.store.LastCity(ctx, sessionID)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("last_city", err)
		return ""
	}
	return city
}

// History returns per-city counts for a session, most searched first
func (s *HistoryService) History(ctx context.Context, sessionID string) []model.CityCount {
	if sessionID == "" {
		return []model.CityCount{}
	}
	counts, err := s.store.CityCounts(ctx, sessionID)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("history", err)
		return []model.CityCount{}
	}
	s.log.WithContext(ctx).Info("fetched history", "entries", len(counts), "session_id", sessionID)
	return counts
}

// Stats returns per-city counts across all sessions
func (s *HistoryService) Stats(ctx context.Context) []model.CityCount {
	counts, err := s.store.Stats(ctx)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("stats", err)
		return []model.CityCount{}
	}
	return counts
}
