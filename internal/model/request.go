package model

// SuggestRequest represents GET /api/v1/suggestions?q=
type SuggestRequest struct {
	Query string `form:"q"`
}

// SuggestResponse is the JSON suggestion list
type SuggestResponse struct {
	Query       string       `json:"query"`
	Suggestions []Suggestion `json:"suggestions"`
}

// WeatherRequest carries the city from the form or the query string
type WeatherRequest struct {
	City string `form:"city" binding:"required"`
}

// WeatherResult is the outcome of a successful weather lookup
type WeatherResult struct {
	City     string    `json:"city"` // standardized "name, country"
	Place    Place     `json:"place"`
	Forecast *Forecast `json:"forecast"`
}
