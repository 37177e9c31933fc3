// Package controller sequences weather lookups and owns the widget's query
// state.
//
// Query operations never return errors. Every outcome becomes a state
// transition plus a command to the presentation sink. Overlapping queries are
// not coordinated: each writes Loading when it starts and its outcome when it
// settles, so the query that settles last decides the final state even if it
// was issued first.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"weather-widget/datasource"
	"weather-widget/location"
	"weather-widget/models"
	"weather-widget/presentation"

	"github.com/google/uuid"
)

// DefaultCity is the fallback city used when none is configured.
const DefaultCity = "Mumbai"

// Controller is the weather widget's query state machine.
type Controller struct {
	provider datasource.WeatherProvider
	sink     presentation.Sink
	locator  location.Source
	logger   *slog.Logger

	mu          sync.Mutex
	state       State
	defaultCity string
}

// Option configures a Controller.
type Option func(*Controller)

// WithDefaultCity sets the fallback city.
func WithDefaultCity(city string) Option {
	return func(c *Controller) {
		if city = strings.TrimSpace(city); city != "" {
			c.defaultCity = city
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Controller in the Idle state. A nil locator behaves like a
// platform without geolocation.
func New(provider datasource.WeatherProvider, sink presentation.Sink, locator location.Source, opts ...Option) *Controller {
	if locator == nil {
		locator = location.Unavailable{}
	}
	c := &Controller{
		provider:    provider,
		sink:        sink,
		locator:     locator,
		logger:      slog.Default(),
		defaultCity: DefaultCity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current query state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// DefaultCity returns the current fallback city.
func (c *Controller) DefaultCity() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaultCity
}

// Initialize runs the startup flow: look up weather at the current position,
// or for defaultCity when the position is unavailable. A non-empty
// defaultCity also becomes the fallback for later coordinate lookups.
func (c *Controller) Initialize(ctx context.Context, defaultCity string) {
	ctx = context.WithoutCancel(ctx)

	c.mu.Lock()
	if city := strings.TrimSpace(defaultCity); city != "" {
		c.defaultCity = city
	}
	c.mu.Unlock()

	coords, err := c.locator.CurrentPosition(ctx)
	if err != nil {
		c.logger.Info("location unavailable, using default city", "city", c.DefaultCity(), "error", err)
		c.QueryByCity(ctx, c.DefaultCity())
		return
	}
	c.QueryByCoordinates(ctx, coords.Lat, coords.Lon)
}

// QueryByCity looks up weather for a city name. Blank names are ignored.
func (c *Controller) QueryByCity(ctx context.Context, name string) {
	city := strings.TrimSpace(name)
	if city == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)
	logger := c.logger.With("query_id", uuid.NewString(), "city", city)

	c.begin()
	logger.Info("looking up weather by city")

	snapshot, err := c.lookup(func() (models.WeatherSnapshot, error) {
		return c.provider.LookupByCity(ctx, city)
	})
	if err != nil {
		failure := datasource.AsFailure(err)
		logger.Warn("city lookup failed", "kind", failure.Kind, "error", failure)
		c.fail(failure)
		return
	}

	logger.Info("city lookup succeeded", "location", snapshot.LocationLabel)
	c.succeed(snapshot)
}

// QueryByCoordinates looks up weather for a position. Any failure falls back
// to a query for the default city; the coordinate failure is never rendered.
// Coordinates are passed through unchecked.
func (c *Controller) QueryByCoordinates(ctx context.Context, lat, lon float64) {
	ctx = context.WithoutCancel(ctx)
	coords := models.Coordinates{Lat: lat, Lon: lon}
	logger := c.logger.With("query_id", uuid.NewString(), "coords", coords.String())

	c.begin()
	logger.Info("looking up weather by coordinates")

	snapshot, err := c.lookup(func() (models.WeatherSnapshot, error) {
		return c.provider.LookupByCoordinates(ctx, coords)
	})
	if err != nil {
		city := c.DefaultCity()
		logger.Warn("coordinate lookup failed, falling back", "city", city, "error", err)
		c.QueryByCity(ctx, city)
		return
	}

	logger.Info("coordinate lookup succeeded", "location", snapshot.LocationLabel)
	c.succeed(snapshot)
}

// lookup runs fn, turning a panic into a failure so nothing escapes the
// controller.
func (c *Controller) lookup(fn func() (models.WeatherSnapshot, error)) (snapshot models.WeatherSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = datasource.NewFailure(datasource.NetworkOrServerError, fmt.Errorf("provider panic: %v", r))
		}
	}()
	return fn()
}

func (c *Controller) begin() {
	c.set(State{Phase: Loading})
	c.sink.RenderLoading()
}

func (c *Controller) succeed(snapshot models.WeatherSnapshot) {
	c.set(State{Phase: Success, Snapshot: snapshot})
	c.sink.RenderWeather(snapshot)
}

func (c *Controller) fail(failure *datasource.QueryFailure) {
	c.set(State{Phase: Failed, Failure: failure})
	c.sink.RenderError(failure.Message)
}

func (c *Controller) set(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
