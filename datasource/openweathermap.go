package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-widget/models"
)

// DefaultOpenWeatherMapURL is the base URL of the OpenWeatherMap 2.5 API.
const DefaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherMapProvider implements WeatherProvider against the
// OpenWeatherMap current weather endpoint.
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string, opts ...OpenWeatherMapOption) *OpenWeatherMapProvider {
	p := &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherMapURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OpenWeatherMapOption customises an OpenWeatherMapProvider.
type OpenWeatherMapOption func(*OpenWeatherMapProvider)

// WithBaseURL points the provider at a different API root.
func WithBaseURL(baseURL string) OpenWeatherMapOption {
	return func(p *OpenWeatherMapProvider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) OpenWeatherMapOption {
	return func(p *OpenWeatherMapProvider) {
		if timeout > 0 {
			p.httpClient.Timeout = timeout
		}
	}
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// LookupByCity fetches current weather for a city name
func (p *OpenWeatherMapProvider) LookupByCity(ctx context.Context, name string) (models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Add("q", name)
	return p.fetch(ctx, params)
}

// LookupByCoordinates fetches current weather for a position
func (p *OpenWeatherMapProvider) LookupByCoordinates(ctx context.Context, coords models.Coordinates) (models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	return p.fetch(ctx, params)
}

func (p *OpenWeatherMapProvider) fetch(ctx context.Context, params url.Values) (models.WeatherSnapshot, error) {
	endpoint := fmt.Sprintf("%s/weather", p.baseURL)
	params.Add("appid", p.apiKey)
	params.Add("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return models.WeatherSnapshot{}, NewFailure(NetworkOrServerError, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.WeatherSnapshot{}, NewFailure(NetworkOrServerError, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if failure := ClassifyStatus(resp.StatusCode); failure != nil {
		return models.WeatherSnapshot{}, failure
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherSnapshot{}, NewFailure(NetworkOrServerError, fmt.Errorf("failed to read response body: %w", err))
	}

	snapshot, err := decodeCurrentWeather(body)
	if err != nil {
		return models.WeatherSnapshot{}, NewFailure(NetworkOrServerError, err)
	}
	return snapshot, nil
}

// currentWeatherResponse mirrors the fields we read from /weather. Pointers
// let the decoder tell a missing field from a zero value.
type currentWeatherResponse struct {
	Weather []struct {
		Main        *string `json:"main"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
		Pressure  *float64 `json:"pressure"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Visibility *float64 `json:"visibility"`
	Sys        *struct {
		Country *string `json:"country"`
		Sunrise *int64  `json:"sunrise"`
	} `json:"sys"`
	Name     *string `json:"name"`
	Timezone *int    `json:"timezone"`
}

var errIncomplete = errors.New("incomplete weather response")

func decodeCurrentWeather(body []byte) (models.WeatherSnapshot, error) {
	var r currentWeatherResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("failed to parse response: %w", err)
	}

	switch {
	case len(r.Weather) == 0:
		return models.WeatherSnapshot{}, fmt.Errorf("%w: no weather conditions", errIncomplete)
	case r.Weather[0].Main == nil || r.Weather[0].Description == nil || r.Weather[0].Icon == nil:
		return models.WeatherSnapshot{}, fmt.Errorf("%w: weather conditions", errIncomplete)
	case r.Main == nil || r.Main.Temp == nil || r.Main.FeelsLike == nil ||
		r.Main.Humidity == nil || r.Main.Pressure == nil:
		return models.WeatherSnapshot{}, fmt.Errorf("%w: main block", errIncomplete)
	case r.Wind == nil || r.Wind.Speed == nil:
		return models.WeatherSnapshot{}, fmt.Errorf("%w: wind block", errIncomplete)
	case r.Visibility == nil:
		return models.WeatherSnapshot{}, fmt.Errorf("%w: visibility", errIncomplete)
	case r.Sys == nil || r.Sys.Country == nil || r.Sys.Sunrise == nil:
		return models.WeatherSnapshot{}, fmt.Errorf("%w: sys block", errIncomplete)
	case r.Name == nil || r.Timezone == nil:
		return models.WeatherSnapshot{}, fmt.Errorf("%w: name or timezone", errIncomplete)
	}

	condition := r.Weather[0]
	return models.WeatherSnapshot{
		ConditionCode:            *condition.Icon,
		ConditionGroup:           *condition.Main,
		ConditionSummary:         *condition.Description,
		TemperatureCelsius:       *r.Main.Temp,
		FeelsLikeCelsius:         *r.Main.FeelsLike,
		HumidityPercent:          int(*r.Main.Humidity),
		WindSpeedMetersPerSecond: *r.Wind.Speed,
		VisibilityMeters:         *r.Visibility,
		PressureHpa:              *r.Main.Pressure,
		SunriseEpochSeconds:      *r.Sys.Sunrise,
		TimezoneOffsetSeconds:    *r.Timezone,
		LocationLabel:            fmt.Sprintf("%s, %s", *r.Name, *r.Sys.Country),
	}, nil
}

var _ WeatherProvider = (*OpenWeatherMapProvider)(nil)
