package presentation

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"weather-widget/models"
)

// TextSink renders the widget as plain text, for terminals.
type TextSink struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewTextSink creates a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w, now: time.Now}
}

func (t *TextSink) RenderLoading() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, "Loading weather...")
}

func (t *TextSink) RenderError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "⚠️  %s\n", message)
}

func (t *TextSink) RenderWeather(snapshot models.WeatherSnapshot) {
	v := NewView(snapshot, t.now())

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.w, "\n%s  %s  %s\n", v.Icon, v.Temperature, v.Location)
	fmt.Fprintf(t.w, "%s | %s\n", v.LocalDate, v.LocalTime)
	fmt.Fprintln(t.w, "─────────────────────────────────")

	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Condition:\t%s\n", v.Description)
	fmt.Fprintf(tw, "Feels like:\t%s\n", v.FeelsLike)
	fmt.Fprintf(tw, "Humidity:\t%s\n", v.Humidity)
	fmt.Fprintf(tw, "Wind:\t%s\n", v.Wind)
	fmt.Fprintf(tw, "Visibility:\t%s\n", v.Visibility)
	fmt.Fprintf(tw, "Pressure:\t%s\n", v.Pressure)
	fmt.Fprintf(tw, "Sunrise:\t%s\n", v.Sunrise)
	tw.Flush()

	fmt.Fprintln(t.w)
}

var _ Sink = (*TextSink)(nil)
