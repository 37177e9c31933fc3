package datasource

import (
	"context"
	"sync"
	"testing"

	"weather-widget/models"
)

// countingProvider records calls and returns a fixed snapshot.
type countingProvider struct {
	mu     sync.Mutex
	cities []string
	coords []models.Coordinates
}

func (p *countingProvider) Name() string { return "Counting" }

func (p *countingProvider) LookupByCity(ctx context.Context, name string) (models.WeatherSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cities = append(p.cities, name)
	return models.WeatherSnapshot{LocationLabel: name}, nil
}

func (p *countingProvider) LookupByCoordinates(ctx context.Context, coords models.Coordinates) (models.WeatherSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.coords = append(p.coords, coords)
	return models.WeatherSnapshot{LocationLabel: coords.String()}, nil
}

func TestRateLimitedProviderForwards(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 100, 5)

	if got := p.Name(); got != "Counting [Rate Limited]" {
		t.Errorf("unexpected name %q", got)
	}

	snap, err := p.LookupByCity(context.Background(), "Paris")
	if err != nil || snap.LocationLabel != "Paris" {
		t.Fatalf("city lookup: got %+v, %v", snap, err)
	}
	coords := models.Coordinates{Lat: 1, Lon: 2}
	if _, err := p.LookupByCoordinates(context.Background(), coords); err != nil {
		t.Fatalf("coordinate lookup: %v", err)
	}

	if len(inner.cities) != 1 || inner.cities[0] != "Paris" {
		t.Errorf("expected one city call for Paris, got %v", inner.cities)
	}
	if len(inner.coords) != 1 || inner.coords[0] != coords {
		t.Errorf("expected one coordinate call, got %v", inner.coords)
	}
}

func TestRateLimitedProviderCanceledWait(t *testing.T) {
	inner := &countingProvider{}
	// One token, refilled far slower than the test runs.
	p := NewRateLimitedProvider(inner, 0.001, 1)

	if _, err := p.LookupByCity(context.Background(), "Paris"); err != nil {
		t.Fatalf("first call should use the burst token: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.LookupByCity(ctx, "Paris")
	f := AsFailure(err)
	if f == nil || f.Kind != NetworkOrServerError {
		t.Fatalf("expected NetworkOrServerError, got %v", err)
	}
	if len(inner.cities) != 1 {
		t.Errorf("expected the canceled call not to reach the provider, got %d calls", len(inner.cities))
	}
}
