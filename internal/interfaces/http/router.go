package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/prometheus"
	"github.com/OLVCORE/smartimport/internal/interfaces/http/handlers"
	"github.com/OLVCORE/smartimport/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	SimulationHandler     *handlers.SimulationHandler
	ExchangeHandler       *handlers.ExchangeHandler
	TreatmentHandler      *handlers.TreatmentHandler
	BenefitHandler        *handlers.BenefitHandler
	ClassificationHandler *handlers.ClassificationHandler
	HealthHandler         *handlers.HealthHandler

	// Middleware
	CORSMiddleware    *middleware.CORSMiddleware
	LoggingMiddleware *middleware.LoggingMiddleware

	// Infrastructure
	Metrics *prometheus.Metrics
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration.  It wires global middleware, public health endpoints, the
// metrics scrape endpoint, and the API v1 resource groups into a single
// http.Handler suitable for use with http.Server.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORSMiddleware != nil {
		r.Use(cfg.CORSMiddleware.Handler)
	}
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Handler)
	}

	// Public probes, no middleware gates.
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	// Scrape endpoint; expected to sit behind an internal firewall rule.
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerSimulationRoutes(api, cfg.SimulationHandler)
		registerExchangeRoutes(api, cfg.ExchangeHandler)
		registerTreatmentRoutes(api, cfg.TreatmentHandler)
		registerBenefitRoutes(api, cfg.BenefitHandler)
		registerClassificationRoutes(api, cfg.ClassificationHandler)
	})

	return r
}

// registerSimulationRoutes mounts simulation endpoints under /simulations.
func registerSimulationRoutes(r chi.Router, h *handlers.SimulationHandler) {
	if h == nil {
		return
	}
	r.Route("/simulations", func(sr chi.Router) {
		sr.Get("/", h.List)
		sr.Post("/", h.Run)

		sr.Route("/{id}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Delete("/", h.Delete)
		})
	})
}

// registerExchangeRoutes mounts exchange-rate endpoints under /exchange.
func registerExchangeRoutes(r chi.Router, h *handlers.ExchangeHandler) {
	if h == nil {
		return
	}
	r.Route("/exchange", func(er chi.Router) {
		er.Get("/quote", h.GetQuote)
	})
}

// registerTreatmentRoutes mounts tax-treatment endpoints under /treatments.
func registerTreatmentRoutes(r chi.Router, h *handlers.TreatmentHandler) {
	if h == nil {
		return
	}
	r.Route("/treatments", func(tr chi.Router) {
		tr.Post("/lookup", h.Lookup)
	})
}

// registerBenefitRoutes mounts benefit catalog endpoints under /benefits.
func registerBenefitRoutes(r chi.Router, h *handlers.BenefitHandler) {
	if h == nil {
		return
	}
	r.Route("/benefits", func(br chi.Router) {
		br.Get("/regions", h.Regions)
		br.Get("/catalog", h.Catalog)
		br.Post("/estimate", h.Estimate)
	})
}

// registerClassificationRoutes mounts advisor endpoints under /classification.
func registerClassificationRoutes(r chi.Router, h *handlers.ClassificationHandler) {
	if h == nil {
		return
	}
	r.Route("/classification", func(cr chi.Router) {
		cr.Post("/suggest", h.Suggest)
	})
}

//Personal.AI order the ending
