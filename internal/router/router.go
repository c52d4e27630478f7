// Package router wires the HTTP API of the server host.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MRamiBalles/sdop/internal/host"
	"github.com/MRamiBalles/sdop/internal/network"
	"github.com/MRamiBalles/sdop/internal/platform/logger"
	"github.com/MRamiBalles/sdop/internal/platform/metrics"
)

// Config holds the configuration for creating a router. Nil parts leave
// their routes unregistered.
type Config struct {
	Session        *host.Session
	Registry       *host.Registry
	Hub            *network.Hub
	AllowedOrigins []string
	Logger         *logger.Logger
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", metrics.Handler())
	r.Get("/metrics/prometheus", metrics.PrometheusHandler())

	if cfg.Hub != nil {
		r.Get("/ws", cfg.Hub.ServeWS)
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.Session != nil {
			h := &deviceHandler{session: cfg.Session, logger: cfg.Logger}
			r.Get("/state", h.State)
			r.Get("/frame", h.Frame)
			r.Post("/save", h.Save)
			r.Get("/recap", h.Recap)
			r.Post("/action", h.Action)
		}

		if cfg.Registry != nil {
			h := &gamesHandler{registry: cfg.Registry}
			r.Route("/games", func(r chi.Router) {
				r.Post("/", h.Create)
				r.Route("/{handle}", func(r chi.Router) {
					r.Delete("/", h.Destroy)
					r.Post("/tick", h.Tick)
					r.Post("/input", h.Input)
					r.Post("/time-scale", h.TimeScale)
					r.Get("/frame", h.Frame)
					r.Get("/save", h.Save)
				})
			})
		}
	})

	return r
}
