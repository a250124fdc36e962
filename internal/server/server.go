package server

import (
	"log"
	"net/http"
	"time"

	"github.com/alfagnish/supplychain-api/internal/config"
	"github.com/alfagnish/supplychain-api/internal/events"
	"github.com/alfagnish/supplychain-api/internal/handlers"
	"github.com/alfagnish/supplychain-api/internal/metrics"
	"github.com/alfagnish/supplychain-api/internal/storage"
	"github.com/alfagnish/supplychain-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps are the shared components the HTTP handlers run against.
type Deps struct {
	Store   *store.Store
	Storage storage.Provider
	Hub     *events.Hub
	Metrics *metrics.Metrics
}

// New creates a fully-configured chi router with all routes, middleware, and
// handlers wired together.
func New(cfg *config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	// ── Middleware ───────────────────────────────────────────
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(requestLogger(d.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// ── Handlers ────────────────────────────────────────────
	accountsH := handlers.NewAccountsHandler(d.Store, d.Hub, d.Metrics, cfg.JWTSecret)
	profilesH := handlers.NewProfilesHandler(d.Store, d.Hub, d.Metrics)
	productsH := handlers.NewProductsHandler(d.Store, d.Hub, d.Metrics)
	profileUploadH := handlers.NewUploadHandler(handlers.GroupProfile, d.Storage, d.Hub, d.Metrics, cfg.MaxUploadSizeMB)
	productUploadH := handlers.NewUploadHandler(handlers.GroupProduct, d.Storage, d.Hub, d.Metrics, cfg.MaxUploadSizeMB)
	imageH := handlers.NewImageHandler(d.Storage)
	sessionH := handlers.NewSessionHandler(cfg.JWTSecret)
	wsH := handlers.NewWSHandler(d.Hub)

	// ── Routes ──────────────────────────────────────────────
	accountsH.Routes(r)
	profilesH.Routes(r)
	productsH.Routes(r)
	profileUploadH.Routes(r)
	productUploadH.Routes(r)
	imageH.Routes(r)
	sessionH.Routes(r)
	wsH.Routes(r)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	return r
}

// requestLogger logs each request with method, route pattern, status code
// and duration, and records the same in metrics. The route pattern is logged
// instead of the raw path so credentials in /auth/{username}/{password} stay
// out of the log.
func requestLogger(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			m.ObserveRequest(r.Method, route, status, duration)
			if route == "/metrics" {
				return
			}
			log.Printf("%s %s %d %s",
				r.Method,
				route,
				status,
				duration.Round(time.Millisecond),
			)
		})
	}
}
