package datasource

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.DefaultCity != "Mumbai" {
		t.Errorf("expected default city Mumbai, got %q", c.DefaultCity)
	}
	if c.OpenWeatherMap.BaseURL != DefaultOpenWeatherMapURL {
		t.Errorf("unexpected base URL %q", c.OpenWeatherMap.BaseURL)
	}
	if len(c.QuickCities) == 0 {
		t.Error("expected quick cities")
	}
	if err := c.Validate(); err == nil {
		t.Error("expected validation error without API key")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
		"openWeatherMap": {"apiKey": "file-key"},
		"defaultCity": "Almaty",
		"quickCities": ["Astana", "Almaty"],
		"location": {"lat": 43.24, "lon": 76.89}
	}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"OWM_API_KEY", "OWM_BASE_URL", "WEATHER_DEFAULT_CITY", "WEATHER_QUICK_CITIES", "WEATHER_LAT", "WEATHER_LON"} {
		t.Setenv(key, "")
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.OpenWeatherMap.APIKey != "file-key" {
		t.Errorf("expected file key, got %q", c.OpenWeatherMap.APIKey)
	}
	if c.OpenWeatherMap.BaseURL != DefaultOpenWeatherMapURL {
		t.Errorf("expected default base URL to survive, got %q", c.OpenWeatherMap.BaseURL)
	}
	if c.DefaultCity != "Almaty" {
		t.Errorf("expected Almaty, got %q", c.DefaultCity)
	}
	if !reflect.DeepEqual(c.QuickCities, []string{"Astana", "Almaty"}) {
		t.Errorf("unexpected quick cities %v", c.QuickCities)
	}
	if c.Location.Lat == nil || *c.Location.Lat != 43.24 || c.Location.Lon == nil || *c.Location.Lon != 76.89 {
		t.Errorf("unexpected location %+v", c.Location)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("OWM_API_KEY", "env-key")

	c, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if c.OpenWeatherMap.APIKey != "env-key" {
		t.Errorf("expected env key, got %q", c.OpenWeatherMap.APIKey)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	c := DefaultConfig()
	err := c.applyEnv(envMap(map[string]string{
		"OWM_API_KEY":          "k",
		"OWM_BASE_URL":         "http://localhost:9999",
		"WEATHER_DEFAULT_CITY": "  Lisbon ",
		"WEATHER_QUICK_CITIES": "Porto, ,Faro",
		"WEATHER_LAT":          "38.72",
		"WEATHER_LON":          "-9.14",
		"WEATHER_GEO_URL":      "http://geo.local/json",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.OpenWeatherMap.APIKey != "k" || c.OpenWeatherMap.BaseURL != "http://localhost:9999" {
		t.Errorf("unexpected OWM config %+v", c.OpenWeatherMap)
	}
	if c.DefaultCity != "Lisbon" {
		t.Errorf("expected trimmed Lisbon, got %q", c.DefaultCity)
	}
	if !reflect.DeepEqual(c.QuickCities, []string{"Porto", "Faro"}) {
		t.Errorf("unexpected quick cities %v", c.QuickCities)
	}
	if *c.Location.Lat != 38.72 || *c.Location.Lon != -9.14 {
		t.Errorf("unexpected coordinates %v,%v", *c.Location.Lat, *c.Location.Lon)
	}
	if c.Location.IPURL != "http://geo.local/json" {
		t.Errorf("unexpected geo URL %q", c.Location.IPURL)
	}
}

func TestApplyEnvRejectsBadCoordinate(t *testing.T) {
	c := DefaultConfig()
	if err := c.applyEnv(envMap(map[string]string{"WEATHER_LAT": "north"})); err == nil {
		t.Fatal("expected error for non-numeric latitude")
	}
}

func TestNewProvider(t *testing.T) {
	c := DefaultConfig()
	c.OpenWeatherMap.APIKey = "k"

	if _, ok := c.NewProvider(time.Second, false).(*OpenWeatherMapProvider); !ok {
		t.Error("expected bare provider without rate limiting")
	}
	if _, ok := c.NewProvider(time.Second, true).(*RateLimitedProvider); !ok {
		t.Error("expected rate limited provider")
	}
}
