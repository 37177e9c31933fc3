// Package location supplies the user's position to the weather controller.
package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"weather-widget/datasource"
	"weather-widget/models"
)

// ErrUnavailable matches every failure returned by a Source. Denied,
// unsupported and failed lookups are not distinguished.
var ErrUnavailable = datasource.NewFailure(datasource.LocationUnavailable, nil)

// Source resolves the current position once per call.
type Source interface {
	CurrentPosition(ctx context.Context) (models.Coordinates, error)
}

func unavailable(cause error) error {
	return datasource.NewFailure(datasource.LocationUnavailable, cause)
}

// Static always reports the same configured position.
type Static struct {
	coords *models.Coordinates
}

// NewStatic returns a Static source. Nil lat or lon gives a source that is
// always unavailable.
func NewStatic(lat, lon *float64) *Static {
	if lat == nil || lon == nil {
		return &Static{}
	}
	return &Static{coords: &models.Coordinates{Lat: *lat, Lon: *lon}}
}

func (s *Static) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	if s.coords == nil {
		return models.Coordinates{}, unavailable(errors.New("no fixed position configured"))
	}
	return *s.coords, nil
}

// Unavailable is a Source for environments without geolocation.
type Unavailable struct{}

func (Unavailable) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, unavailable(errors.New("geolocation not supported"))
}

// DefaultIPLookupURL is a free IP geolocation endpoint returning
// {"status":"success","lat":..,"lon":..}.
const DefaultIPLookupURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

// IPLookup estimates the position from the caller's public IP address.
type IPLookup struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewIPLookup creates an IP based source. An empty url uses DefaultIPLookupURL.
func NewIPLookup(url string, timeout time.Duration, logger *slog.Logger) *IPLookup {
	if url == "" {
		url = DefaultIPLookupURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IPLookup{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (l *IPLookup) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	coords, err := l.lookup(ctx)
	if err != nil {
		l.logger.Warn("ip geolocation failed", "url", l.url, "error", err)
		return models.Coordinates{}, unavailable(err)
	}
	return coords, nil
}

func (l *IPLookup) lookup(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result struct {
		Status  string   `json:"status"`
		Message string   `json:"message"`
		Lat     *float64 `json:"lat"`
		Lon     *float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Coordinates{}, fmt.Errorf("decode response: %w", err)
	}
	if result.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("lookup status %q: %s", result.Status, result.Message)
	}
	if result.Lat == nil || result.Lon == nil {
		return models.Coordinates{}, errors.New("response missing lat/lon")
	}
	return models.Coordinates{Lat: *result.Lat, Lon: *result.Lon}, nil
}

var (
	_ Source = (*Static)(nil)
	_ Source = Unavailable{}
	_ Source = (*IPLookup)(nil)
)

// FromConfig picks the position source: a configured fixed position first,
// then IP lookup when enabled, otherwise none.
func FromConfig(cfg *datasource.Config, ipLookup bool, logger *slog.Logger) Source {
	if cfg.Location.Lat != nil && cfg.Location.Lon != nil {
		return NewStatic(cfg.Location.Lat, cfg.Location.Lon)
	}
	if ipLookup {
		return NewIPLookup(cfg.Location.IPURL, 5*time.Second, logger)
	}
	return Unavailable{}
}
