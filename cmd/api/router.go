package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-intake/internal/infra/http/handlers"
	"github.com/xavierca1/lead-intake/internal/infra/http/middleware"
)

type routes struct {
	lead     *handlers.LeadHandler
	waitlist *handlers.WaitlistHandler
	health   *handlers.HealthHandler
}

func newRouter(log logrus.FieldLogger, allowedOrigins []string, rateLimit int, h routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	limiter := handlers.NewRateLimiter(rateLimit, time.Minute)

	r.Get("/", handlers.Root)
	r.Get("/health", h.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/lead", h.lead.CaptureLead)
		r.Post("/api/waitlist", h.waitlist.Join)
	})

	return r
}
