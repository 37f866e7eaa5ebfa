package service

import (
	"context"
	"html/template"
	"io"
	"strings"
	"unicode/utf8"

	"weatherlookup/internal/apperr"
	"weatherlookup/internal/model"
)

const (
	// DefaultSuggestCount is how many places one lookup asks for.
	DefaultSuggestCount = 5
	// DefaultMinQueryLength is the shortest trimmed query that triggers a lookup.
	DefaultMinQueryLength = 2
	// MaxQueryLength is the longest trimmed query accepted, in runes.
	MaxQueryLength = 200
)

// PlaceSearcher searches places by name
type PlaceSearcher interface {
	Search(ctx context.Context, name string, count int) ([]model.Place, error)
}

// SuggestService turns typed text into city suggestions
type SuggestService struct {
	geocoder  PlaceSearcher
	count     int
	minLength int
}

// NewSuggestService creates a suggestion service. Non-positive count or
// minLength use the defaults.
func NewSuggestService(geocoder PlaceSearcher, count, minLength int) *SuggestService {
	if count <= 0 {
		count = DefaultSuggestCount
	}
	if minLength <= 0 {
		minLength = DefaultMinQueryLength
	}
	return &SuggestService{
		geocoder:  geocoder,
		count:     count,
		minLength: minLength,
	}
}

// NormalizeQuery trims surrounding whitespace from typed text
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(raw)
}

// Eligible reports whether a normalized query is long enough to look up
func (s *SuggestService) Eligible(query string) bool {
	return utf8.RuneCountInString(query) >= s.minLength
}

// Suggest looks up suggestions for raw input. Input that is too short after
// trimming returns an empty list without calling the geocoder; input longer
// than MaxQueryLength after trimming is a validation error.
func (s *SuggestService) Suggest(ctx context.Context, raw string) ([]model.Suggestion, error) {
	query := NormalizeQuery(raw)
	if !s.Eligible(query) {
		return []model.Suggestion{}, nil
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, apperr.Validation("query too long").WithOp("suggest")
	}

	places, err := s.geocoder.Search(ctx, query, s.count)
	if err != nil {
		return nil, err
	}
	return RenderSuggestions(places), nil
}

// RenderSuggestions maps places 1:1 to suggestions, keeping their order.
// The result is never nil.
func RenderSuggestions(places []model.Place) []model.Suggestion {
	out := make([]model.Suggestion, 0, len(places))
	for _, p := range places {
		label := p.Label()
		out = append(out, model.Suggestion{Label: label, Value: label})
	}
	return out
}

var suggestionListTmpl = template.Must(template.New("suggestions").Parse(
	`{{range .}}<li class="p-2 hover:bg-gray-200 cursor-pointer" data-full="{{.Value}}">{{.Label}}</li>{{end}}`,
))

// RenderHTML writes suggestions as escaped <li> items for the page's list element
func RenderHTML(w io.Writer, suggestions []model.Suggestion) error {
	return suggestionListTmpl.Execute(w, suggestions)
}
