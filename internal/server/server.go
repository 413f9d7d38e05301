// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"trendboard/internal/config"
	"trendboard/internal/server/handlers"
	insightService "trendboard/internal/service/insight"
	"trendboard/internal/service/social"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	dashboardCfg config.DashboardConfig,
	snapshots *insightService.SnapshotService,
	refresher *social.Refresher,
	hub *handlers.UpdateHub,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	insightHandler := handlers.NewInsightHandler(snapshots, dashboardCfg.TableLimit)
	chartHandler := handlers.NewChartHandler(snapshots)
	datasetHandler := handlers.NewDatasetHandler(refresher)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Snapshot API
			r.Route("/snapshot", func(r chi.Router) {
				r.Get("/", insightHandler.GetSnapshot)
				r.Post("/refresh", insightHandler.RefreshSnapshot)
			})

			// Data products API
			r.Get("/trends/overlap", insightHandler.GetTrendOverlap)
			r.Get("/engagement", insightHandler.GetEngagement)
			r.Get("/languages", insightHandler.GetLanguages)

			// Chart descriptors API
			r.Get("/charts/{name}", chartHandler.GetChart)

			// Dataset management API
			r.Post("/datasets/refresh", datasetHandler.RefreshDatasets)
		})
	})

	// WebSocket endpoint for snapshot update events
	router.Get("/ws/updates", handlers.UpdatesWebSocketHandler(hub))

	// Dashboard page
	router.Get("/", handlers.DashboardHandler())

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// Router exposes the chi router, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
