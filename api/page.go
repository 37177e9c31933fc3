package api

import (
	"sync"
	"time"

	"weather-widget/models"
	"weather-widget/presentation"
)

// Page is what the widget currently shows.
type Page struct {
	State   string             `json:"state"` // idle, loading, error or weather
	Message string             `json:"message,omitempty"`
	Weather *presentation.View `json:"weather,omitempty"`
	Updated time.Time          `json:"updated"`
}

// PageSink is a presentation.Sink that keeps the latest rendered page in
// memory for the HTTP handlers.
type PageSink struct {
	mutex sync.RWMutex
	page  Page
	now   func() time.Time
}

// NewPageSink creates an idle page.
func NewPageSink() *PageSink {
	return &PageSink{
		page: Page{State: "idle", Updated: time.Now()},
		now:  time.Now,
	}
}

// Current returns the latest page.
func (p *PageSink) Current() Page {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.page
}

func (p *PageSink) RenderLoading() {
	p.store(Page{State: "loading"})
}

func (p *PageSink) RenderError(message string) {
	p.store(Page{State: "error", Message: message})
}

func (p *PageSink) RenderWeather(snapshot models.WeatherSnapshot) {
	now := p.now()
	view := presentation.NewView(snapshot, now)
	p.store(Page{State: "weather", Weather: &view})
}

func (p *PageSink) store(page Page) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	page.Updated = p.now()
	p.page = page
}

var _ presentation.Sink = (*PageSink)(nil)
