package service

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"weatherlookup/internal/apperr"
	"weatherlookup/internal/model"
)

func TestSuggest_ShortQueriesSkipLookup(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "P"},
		{"whitespace only", "    "},
		{"single char padded", "  a \t"},
		{"single multibyte rune", " é "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := &fakeGeocoder{places: []model.Place{{Name: "Paris", Country: "France"}}}
			svc := NewSuggestService(geo, 5, 2)

			got, err := svc.Suggest(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Suggest() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected no suggestions, got %v", got)
			}
			if len(geo.calls) != 0 {
				t.Errorf("expected no geocoder call, got %d", len(geo.calls))
			}
		})
	}
}

func TestSuggest_LookupWithTrimmedQuery(t *testing.T) {
	geo := &fakeGeocoder{places: []model.Place{
		{Name: "Paris", Country: "France"},
		{Name: "Perth", Country: "Australia"},
	}}
	svc := NewSuggestService(geo, 5, 2)

	got, err := svc.Suggest(context.Background(), "  Pa ")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}

	if len(geo.calls) != 1 {
		t.Fatalf("expected exactly one geocoder call, got %d", len(geo.calls))
	}
	if geo.calls[0] != (searchCall{name: "Pa", count: 5}) {
		t.Errorf("unexpected call %+v", geo.calls[0])
	}

	want := []model.Suggestion{
		{Label: "Paris, France", Value: "Paris, France"},
		{Label: "Perth, Australia", Value: "Perth, Australia"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggest_LengthCapAppliesAfterTrim(t *testing.T) {
	geo := &fakeGeocoder{places: []model.Place{{Name: "Paris", Country: "France"}}}
	svc := NewSuggestService(geo, 5, 2)

	got, err := svc.Suggest(context.Background(), strings.Repeat(" ", 250)+"Pa")
	if err != nil {
		t.Fatalf("padded query: Suggest() error = %v", err)
	}
	if len(got) != 1 || len(geo.calls) != 1 || geo.calls[0].name != "Pa" {
		t.Errorf("padded query: got %v, calls %+v", got, geo.calls)
	}

	_, err = svc.Suggest(context.Background(), strings.Repeat("é", MaxQueryLength+1))
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected KindValidation, got %v", err)
	}
	if len(geo.calls) != 1 {
		t.Errorf("overlong query must not reach the geocoder, calls %+v", geo.calls)
	}
}

func TestSuggest_PropagatesLookupError(t *testing.T) {
	svc := NewSuggestService(&fakeGeocoder{err: errBoom}, 0, 0)

	if _, err := svc.Suggest(context.Background(), "Paris"); !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
}

func TestRenderSuggestions(t *testing.T) {
	tests := []struct {
		name   string
		places []model.Place
		want   []model.Suggestion
	}{
		{
			name:   "nil results",
			places: nil,
			want:   []model.Suggestion{},
		},
		{
			name:   "missing fields",
			places: []model.Place{{Name: "Atlantis"}, {Country: "Nowhere"}},
			want: []model.Suggestion{
				{Label: "Atlantis, ", Value: "Atlantis, "},
				{Label: ", Nowhere", Value: ", Nowhere"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSuggestions(tt.places); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RenderSuggestions() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRenderSuggestions_Idempotent(t *testing.T) {
	places := []model.Place{{Name: "Paris", Country: "France"}, {Name: "Perth", Country: "Australia"}}

	first := RenderSuggestions(places)
	second := RenderSuggestions(places)
	if !reflect.DeepEqual(first, second) || len(second) != 2 {
		t.Errorf("re-rendering changed the list: %v vs %v", first, second)
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	err := RenderHTML(&buf, []model.Suggestion{
		{Label: "Paris, France", Value: "Paris, France"},
		{Label: `Q"<x>, Y`, Value: `Q"<x>, Y`},
	})
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	want := `<li class="p-2 hover:bg-gray-200 cursor-pointer" data-full="Paris, France">Paris, France</li>` +
		`<li class="p-2 hover:bg-gray-200 cursor-pointer" data-full="Q&#34;&lt;x&gt;, Y">Q&#34;&lt;x&gt;, Y</li>`
	if buf.String() != want {
		t.Errorf("RenderHTML() =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := RenderHTML(&buf, nil); err != nil || buf.Len() != 0 {
		t.Errorf("empty list should render nothing, got %q (%v)", buf.String(), err)
	}
}
