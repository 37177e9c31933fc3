package presentation

import "strings"

// DefaultIcon is shown for codes missing from the icon table.
const DefaultIcon = "🌤️"

var icons = map[string]string{
	"01d": "☀️", // clear sky
	"01n": "🌙",
	"02d": "⛅", // few clouds
	"02n": "☁️",
	"03d": "☁️", // scattered clouds
	"03n": "☁️",
	"04d": "☁️", // broken clouds
	"04n": "☁️",
	"09d": "🌧️", // shower rain
	"09n": "🌧️",
	"10d": "🌦️", // rain
	"10n": "🌧️",
	"11d": "⛈️", // thunderstorm
	"11n": "⛈️",
	"13d": "❄️", // snow
	"13n": "❄️",
	"50d": "🌫️", // mist
	"50n": "🌫️",
}

// Icon returns the emoji for an OpenWeatherMap icon code.
func Icon(code string) string {
	if icon, ok := icons[code]; ok {
		return icon
	}
	return DefaultIcon
}

// Page themes. The empty theme keeps the default background.
const (
	ThemeDefault = ""
	ThemeSunny   = "sunny"
	ThemeRainy   = "rainy"
	ThemeCloudy  = "cloudy"
	ThemeSnowy   = "snowy"
	ThemeNight   = "night"
)

var themes = map[string]string{
	"clear":        ThemeSunny,
	"rain":         ThemeRainy,
	"drizzle":      ThemeRainy,
	"thunderstorm": ThemeRainy,
	"clouds":       ThemeCloudy,
	"snow":         ThemeSnowy,
}

// Theme picks the page theme for a condition group and icon code.
// Night codes always use the night theme.
func Theme(group, code string) string {
	if strings.HasSuffix(code, "n") {
		return ThemeNight
	}
	return themes[strings.ToLower(group)]
}
