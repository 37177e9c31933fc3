package datasource

import (
	"context"
	"fmt"

	"weather-widget/models"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a WeatherProvider with a token bucket shared by
// city and coordinate lookups.
type RateLimitedProvider struct {
	provider WeatherProvider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider creates a new rate limited provider.
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedProvider(provider WeatherProvider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// LookupByCity waits for a token, then forwards to the wrapped provider
func (r *RateLimitedProvider) LookupByCity(ctx context.Context, name string) (models.WeatherSnapshot, error) {
	if err := r.wait(ctx); err != nil {
		return models.WeatherSnapshot{}, err
	}
	return r.provider.LookupByCity(ctx, name)
}

// LookupByCoordinates waits for a token, then forwards to the wrapped provider
func (r *RateLimitedProvider) LookupByCoordinates(ctx context.Context, coords models.Coordinates) (models.WeatherSnapshot, error) {
	if err := r.wait(ctx); err != nil {
		return models.WeatherSnapshot{}, err
	}
	return r.provider.LookupByCoordinates(ctx, coords)
}

func (r *RateLimitedProvider) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return NewFailure(NetworkOrServerError, fmt.Errorf("rate limit wait canceled: %w", err))
	}
	return nil
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

var _ WeatherProvider = (*RateLimitedProvider)(nil)
