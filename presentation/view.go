package presentation

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"weather-widget/models"
)

const (
	timeLayout = "3:04 PM"
	dateLayout = "Monday, January 2, 2006"
)

// View is a snapshot formatted for display.
type View struct {
	Icon        string `json:"icon"`
	Theme       string `json:"theme"`
	Temperature string `json:"temperature"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
	FeelsLike   string `json:"feelsLike"`
	Visibility  string `json:"visibility"`
	Pressure    string `json:"pressure"`
	Sunrise     string `json:"sunrise"`
	LocalTime   string `json:"localTime"`
	LocalDate   string `json:"localDate"`
}

// NewView formats s. Sunrise and the local clock are shown at the queried
// location's UTC offset, not the viewer's own zone, so a user in London
// looking up Tokyo sees Tokyo's sunrise time. now supplies the current instant.
func NewView(s models.WeatherSnapshot, now time.Time) View {
	local := now.In(s.Location())
	return View{
		Icon:        Icon(s.ConditionCode),
		Theme:       Theme(s.ConditionGroup, s.ConditionCode),
		Temperature: Degrees(s.TemperatureCelsius),
		Description: s.ConditionSummary,
		Location:    s.LocationLabel,
		Humidity:    fmt.Sprintf("%d%%", s.HumidityPercent),
		Wind:        fmt.Sprintf("%d km/h", round(s.WindSpeedMetersPerSecond*3.6)),
		FeelsLike:   Degrees(s.FeelsLikeCelsius),
		Visibility:  fmt.Sprintf("%.1f km", s.VisibilityMeters/1000),
		Pressure:    strconv.FormatFloat(s.PressureHpa, 'f', -1, 64) + " hPa",
		Sunrise:     s.Sunrise().Format(timeLayout),
		LocalTime:   local.Format(timeLayout),
		LocalDate:   local.Format(dateLayout),
	}
}

// Degrees formats a Celsius value rounded to a whole degree.
func Degrees(celsius float64) string {
	return fmt.Sprintf("%d°", round(celsius))
}

// round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
