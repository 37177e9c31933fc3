package datasource

import (
	"context"

	"weather-widget/models"
)

// WeatherProvider looks up current weather by city name or by coordinates.
// Every returned error is a *QueryFailure.
type WeatherProvider interface {
	// Name returns the provider's name
	Name() string

	// LookupByCity fetches current weather for a city name
	LookupByCity(ctx context.Context, name string) (models.WeatherSnapshot, error)

	// LookupByCoordinates fetches current weather for a position
	LookupByCoordinates(ctx context.Context, coords models.Coordinates) (models.WeatherSnapshot, error)
}
