package models

import (
	"fmt"
	"time"
)

// WeatherSnapshot is one parsed current-weather result for a location.
// Values are kept exactly as the provider reported them; rounding and unit
// conversion happen when the snapshot is displayed.
type WeatherSnapshot struct {
	ConditionCode            string  `json:"conditionCode"`    // provider icon code, e.g. "10d"
	ConditionGroup           string  `json:"conditionGroup"`   // e.g. "Rain", "Clouds"
	ConditionSummary         string  `json:"conditionSummary"` // e.g. "light rain"
	TemperatureCelsius       float64 `json:"temperatureCelsius"`
	FeelsLikeCelsius         float64 `json:"feelsLikeCelsius"`
	HumidityPercent          int     `json:"humidityPercent"`
	WindSpeedMetersPerSecond float64 `json:"windSpeedMetersPerSecond"`
	VisibilityMeters         float64 `json:"visibilityMeters"`
	PressureHpa              float64 `json:"pressureHpa"`
	SunriseEpochSeconds      int64   `json:"sunriseEpochSeconds"`
	TimezoneOffsetSeconds    int     `json:"timezoneOffsetSeconds"`
	LocationLabel            string  `json:"locationLabel"` // "City, CC"
}

// Location returns a fixed zone with the snapshot's UTC offset.
func (s WeatherSnapshot) Location() *time.Location {
	return time.FixedZone(s.LocationLabel, s.TimezoneOffsetSeconds)
}

// Sunrise returns the sunrise instant in the queried location's zone.
func (s WeatherSnapshot) Sunrise() time.Time {
	return time.Unix(s.SunriseEpochSeconds, 0).In(s.Location())
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}
