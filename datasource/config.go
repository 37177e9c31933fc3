package datasource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey  string `json:"apiKey"`
		BaseURL string `json:"baseURL"`
	} `json:"openWeatherMap"`

	// Geolocation settings. A fixed position wins over IP lookup.
	Location struct {
		Lat   *float64 `json:"lat,omitempty"`
		Lon   *float64 `json:"lon,omitempty"`
		IPURL string   `json:"ipLookupURL"`
	} `json:"location"`

	// City queried when no position is available
	DefaultCity string `json:"defaultCity"`

	// Shortcut cities offered next to the search box
	QuickCities []string `json:"quickCities"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenWeatherMap.BaseURL = DefaultOpenWeatherMapURL
	config.DefaultCity = "Mumbai"
	config.QuickCities = []string{"London", "New York", "Tokyo", "Paris", "Sydney", "Mumbai"}
	return config
}

// LoadConfig loads configuration from a JSON file on top of the defaults,
// then applies environment overrides. A missing file is not an error.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.Open(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer file.Close()
		if err := json.NewDecoder(file).Decode(config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("OWM_API_KEY"); ok && v != "" {
		c.OpenWeatherMap.APIKey = v
	}
	if v, ok := lookup("OWM_BASE_URL"); ok && v != "" {
		c.OpenWeatherMap.BaseURL = v
	}
	if v, ok := lookup("WEATHER_DEFAULT_CITY"); ok && strings.TrimSpace(v) != "" {
		c.DefaultCity = strings.TrimSpace(v)
	}
	if v, ok := lookup("WEATHER_QUICK_CITIES"); ok && v != "" {
		var cities []string
		for _, city := range strings.Split(v, ",") {
			if city = strings.TrimSpace(city); city != "" {
				cities = append(cities, city)
			}
		}
		c.QuickCities = cities
	}
	if v, ok := lookup("WEATHER_GEO_URL"); ok && v != "" {
		c.Location.IPURL = v
	}

	for _, f := range []struct {
		key string
		dst **float64
	}{
		{"WEATHER_LAT", &c.Location.Lat},
		{"WEATHER_LON", &c.Location.Lon},
	} {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", f.key, v, err)
		}
		*f.dst = &n
	}
	return nil
}

// Validate reports configuration the service cannot start without.
func (c *Config) Validate() error {
	if c.OpenWeatherMap.APIKey == "" {
		return errors.New("no OpenWeatherMap API key provided (set OWM_API_KEY)")
	}
	if strings.TrimSpace(c.DefaultCity) == "" {
		return errors.New("default city must not be empty")
	}
	return nil
}

// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
const (
	freeTierRPS   = 1.0
	freeTierBurst = 5
)

// NewProvider builds the OpenWeatherMap provider described by the config,
// optionally wrapped with free-tier rate limiting.
func (c *Config) NewProvider(timeout time.Duration, rateLimit bool) WeatherProvider {
	owm := NewOpenWeatherMapProvider(c.OpenWeatherMap.APIKey,
		WithBaseURL(c.OpenWeatherMap.BaseURL),
		WithTimeout(timeout),
	)
	if !rateLimit {
		return owm
	}
	return NewRateLimitedProvider(owm, freeTierRPS, freeTierBurst)
}
