package model

// CityCount is an aggregated history row
type CityCount struct {
	City  string `json:"city" db:"city"`
	Count int    `json:"count" db:"count"`
}
