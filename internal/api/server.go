// Package api exposes the dive logbook over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/HonzaMatousek/libdivecomputer/internal/logbook"
)

// Server serves the logbook REST API.
type Server struct {
	store   *logbook.Store
	log     *logrus.Logger
	metrics *Metrics
}

// NewServer creates an API server on top of an open logbook.
func NewServer(store *logbook.Store, log *logrus.Logger, metrics *Metrics) *Server {
	return &Server{store: store, log: log, metrics: metrics}
}

// Router builds the HTTP routing tree. It is exposed separately from
// ListenAndServe so tests can drive it through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping). Serves the
	// registry the handler metrics record into.
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/families", s.metrics.InstrumentHandler("GET", "/api/v1/families", s.handleFamilies))

		r.Get("/dives", s.metrics.InstrumentHandler("GET", "/api/v1/dives", s.handleListDives))
		r.Post("/dives", s.metrics.InstrumentHandler("POST", "/api/v1/dives", s.handleImportDive))
		r.Get("/dives/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/dives/{id}", s.handleGetDive))
		r.Delete("/dives/{id}", s.metrics.InstrumentHandler("DELETE", "/api/v1/dives/{id}", s.handleDeleteDive))
		r.Get("/dives/{id}/samples", s.metrics.InstrumentHandler("GET", "/api/v1/dives/{id}/samples", s.handleGetSamples))
	})

	return r
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.WithField("addr", addr).Info("starting logbook API")
	return http.ListenAndServe(addr, s.Router())
}
