package model

// Place is a location record returned by the geocoding service
type Place struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Elevation   float64 `json:"elevation,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
	Population  int64   `json:"population,omitempty"`
}

// Label returns the "name, country" form used for suggestions and history.
// Missing fields are left empty.
func (p Place) Label() string {
	return p.Name + ", " + p.Country
}

// GeocodingResponse mirrors the open-meteo search payload. Results is nil
// when the service found nothing (the field is omitted upstream).
type GeocodingResponse struct {
	Results []Place `json:"results"`
}

// Suggestion is one selectable autocomplete entry
type Suggestion struct {
	Label string `json:"label"`
	Value string `json:"value"` // written into the input on selection
}
