package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agrischeme/backend/internal/core/domain"
)

// Client fetches current conditions and a five day forecast from the
// Open-Meteo public API. No API key is needed.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*domain.WeatherReport, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m")
	params.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum")
	params.Set("timezone", "Asia/Kolkata")
	params.Set("forecast_days", "5")

	endpoint := c.baseURL + "/v1/forecast?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUnavailable, "weather forecast", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, domain.WrapError(domain.ErrUnavailable, "weather forecast",
			fmt.Errorf("open-meteo status %s: %s", resp.Status, strings.TrimSpace(string(body))))
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	return payload.toReport(), nil
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weather_code"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func (r forecastResponse) toReport() *domain.WeatherReport {
	description, icon := decodeWMO(r.Current.WeatherCode)
	report := &domain.WeatherReport{
		Current: domain.CurrentConditions{
			Temperature: r.Current.Temperature,
			Humidity:    r.Current.Humidity,
			WindSpeed:   r.Current.WindSpeed,
			WeatherCode: r.Current.WeatherCode,
			Description: description,
			Icon:        icon,
		},
		Daily: make([]domain.DailyForecast, 0, len(r.Daily.Time)),
	}

	at := func(values []float64, i int) float64 {
		if i < len(values) {
			return values[i]
		}
		return 0
	}
	for i, date := range r.Daily.Time {
		code := 0
		if i < len(r.Daily.WeatherCode) {
			code = r.Daily.WeatherCode[i]
		}
		dayDescription, dayIcon := decodeWMO(code)
		report.Daily = append(report.Daily, domain.DailyForecast{
			Date:          date,
			TempMax:       at(r.Daily.TemperatureMax, i),
			TempMin:       at(r.Daily.TemperatureMin, i),
			Precipitation: at(r.Daily.PrecipitationSum, i),
			Description:   dayDescription,
			Icon:          dayIcon,
		})
	}
	return report
}
