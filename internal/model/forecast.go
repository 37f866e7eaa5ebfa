package model

// Forecast is the subset of the open-meteo forecast payload the page renders
type Forecast struct {
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Timezone    string            `json:"timezone"`
	HourlyUnits map[string]string `json:"hourly_units"`
	Hourly      HourlyForecast    `json:"hourly"`
}

// HourlyForecast holds parallel per-hour series
type HourlyForecast struct {
	Time          []string  `json:"time"`
	Temperature   []float64 `json:"temperature_2m"`
	WeatherCode   []int     `json:"weathercode"`
	Precipitation []float64 `json:"precipitation"`
	WindSpeed     []float64 `json:"windspeed_10m"`
}

// HourlyRow is one hour of the forecast
type HourlyRow struct {
	Time          string
	Temperature   float64
	WeatherCode   int
	Precipitation float64
	WindSpeed     float64
}

// Rows zips the hourly series. Series shorter than Time leave zero values.
func (f *Forecast) Rows(limit int) []HourlyRow {
	if f == nil {
		return nil
	}
	n := len(f.Hourly.Time)
	if limit > 0 && limit < n {
		n = limit
	}
	rows := make([]HourlyRow, n)
	for i := 0; i < n; i++ {
		rows[i].Time = f.Hourly.Time[i]
		if i < len(f.Hourly.Temperature) {
			rows[i].Temperature = f.Hourly.Temperature[i]
		}
		if i < len(f.Hourly.WeatherCode) {
			rows[i].WeatherCode = f.Hourly.WeatherCode[i]
		}
		if i < len(f.Hourly.Precipitation) {
			rows[i].Precipitation = f.Hourly.Precipitation[i]
		}
		if i < len(f.Hourly.WindSpeed) {
			rows[i].WindSpeed = f.Hourly.WindSpeed[i]
		}
	}
	return rows
}
