package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// Querier is the part of the controller the HTTP layer drives.
type Querier interface {
	QueryByCity(ctx context.Context, name string)
	QueryByCoordinates(ctx context.Context, lat, lon float64)
	DefaultCity() string
}

// Server represents the widget's HTTP front end
type Server struct {
	querier     Querier
	page        *PageSink
	quickCities []string
	router      *mux.Router
	server      *http.Server
	logger      *slog.Logger
}

// NewServer creates a new widget server. Queries run synchronously inside the
// request, so responses carry the settled page.
func NewServer(querier Querier, page *PageSink, quickCities []string, port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		querier:     querier,
		page:        page,
		quickCities: quickCities,
		router:      mux.NewRouter(),
		logger:      logger,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.router.Use(RequestID, s.logRequests)

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/search", s.handleSearchForm).Methods(http.MethodPost)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/weather", s.handleGetWeather).Methods(http.MethodGet)
	api.HandleFunc("/weather/city", s.handleQueryCity).Methods(http.MethodPost)
	api.HandleFunc("/weather/coordinates", s.handleQueryCoordinates).Methods(http.MethodPost)
	api.HandleFunc("/cities", s.handleGetCities).Methods(http.MethodGet)
	api.HandleFunc("/cities/{city}", s.handleQuickCity).Methods(http.MethodPost)
	api.HandleFunc("/health", s.handleHealthCheck).Methods(http.MethodGet)

	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins the API server
func (s *Server) Start() error {
	s.logger.Info("starting widget server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		Page:        s.page.Current(),
		QuickCities: s.quickCities,
		DefaultCity: s.querier.DefaultCity(),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page", "error", err)
	}
}

// handleSearchForm handles the search box and quick-city buttons of the page.
func (s *Server) handleSearchForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	s.querier.QueryByCity(r.Context(), r.PostForm.Get("city"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleGetWeather(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.page.Current())
}

func (s *Server) handleQueryCity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		City string `json:"city"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	s.querier.QueryByCity(r.Context(), body.City)
	writeJSON(w, http.StatusOK, s.page.Current())
}

func (s *Server) handleQueryCoordinates(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if body.Lat == nil || body.Lon == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lon are required"})
		return
	}

	s.querier.QueryByCoordinates(r.Context(), *body.Lat, *body.Lon)
	writeJSON(w, http.StatusOK, s.page.Current())
}

func (s *Server) handleGetCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cities": s.quickCities,
		"count":  len(s.quickCities),
	})
}

func (s *Server) handleQuickCity(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["city"]

	city, ok := s.lookupQuickCity(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("%q is not a quick city", name),
		})
		return
	}

	s.querier.QueryByCity(r.Context(), city)
	writeJSON(w, http.StatusOK, s.page.Current())
}

func (s *Server) lookupQuickCity(name string) (string, bool) {
	for _, city := range s.quickCities {
		if strings.EqualFold(city, name) {
			return city, true
		}
	}
	return "", false
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
