// Package server assembles the HTTP router: middleware, CORS, rate limiting
// and the route table.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"dinepick/config"
	"dinepick/dataset"
	"dinepick/handlers"
	"dinepick/recommend"
)

// Deps are the long-lived objects the routes are built from.
type Deps struct {
	Dataset     *dataset.Dataset
	Engine      *recommend.Engine
	DefaultMode recommend.Mode
	Security    config.SecurityConfig
}

// NewRouter returns the full HTTP handler.
func NewRouter(d Deps) http.Handler {
	lookup := d.Dataset.Lookup()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Metrics)

	r.Get("/", handlers.DashboardHandler(d.Engine, lookup))
	r.Get("/about", handlers.AboutHandler())
	r.Get("/healthz", handlers.HealthHandler(d.Dataset))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if d.Security.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(d.Security.RateLimitRequests, d.Security.RateLimitWindow))
		}

		recommendHandler := handlers.RecommendHandler(d.Engine, d.DefaultMode)
		r.Get("/recommend", recommendHandler)
		r.Post("/recommend", recommendHandler)

		r.Get("/countries", handlers.CountriesHandler(lookup))
		r.Get("/countries/{code}/cities", handlers.CountryCitiesHandler(lookup))
		r.Get("/cities", handlers.CitiesHandler(lookup))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   d.Security.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
