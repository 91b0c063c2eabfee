package domain

// AdvisoryQuestion is a farmer's question about one scheme, answered by the
// external AI collaborator.
type AdvisoryQuestion struct {
	Question      string `json:"question"`
	SchemeContext string `json:"scheme_context"`
	Language      string `json:"language,omitempty"`
}

type AdvisoryAnswer struct {
	Answer string `json:"answer"`
}

// WeatherReport mirrors the Open-Meteo current + daily forecast shape the
// presentation layer expects.
type WeatherReport struct {
	Current CurrentConditions `json:"current"`
	Daily   []DailyForecast   `json:"daily"`
}

type CurrentConditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	WeatherCode int     `json:"weather_code"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

type DailyForecast struct {
	Date          string  `json:"date"`
	TempMax       float64 `json:"temp_max"`
	TempMin       float64 `json:"temp_min"`
	Precipitation float64 `json:"precipitation"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
}

// MarketReport lists simulated mandi prices for a state.
type MarketReport struct {
	State       string      `json:"state"`
	Mandis      []string    `json:"mandis"`
	LastUpdated string      `json:"last_updated"`
	Prices      []CropPrice `json:"prices"`
}

type CropPrice struct {
	Crop      string  `json:"crop"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
	Trend     string  `json:"trend"`
	Mandi     string  `json:"mandi"`
}
