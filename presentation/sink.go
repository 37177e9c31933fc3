// Package presentation turns controller notifications into something a user
// can see. It owns all display formatting, icon and theme selection.
package presentation

import "weather-widget/models"

// Sink receives display commands from the controller.
type Sink interface {
	RenderLoading()
	RenderError(message string)
	RenderWeather(snapshot models.WeatherSnapshot)
}
