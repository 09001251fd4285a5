package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/parcel-balance-map/internal/loader"
	"github.com/couchcryptid/parcel-balance-map/internal/presentation"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reloader re-runs the dataset and map load.
type Reloader interface {
	Load(ctx context.Context) loader.Result
}

// Server exposes the map API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	app        *presentation.App
	reloader   Reloader
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the map API and the /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, app *presentation.App, reloader Reloader, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // covers POST /api/reload fetches
			IdleTimeout:  60 * time.Second,
		},
		app:      app,
		reloader: reloader,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/parcels", s.handleParcels)
	mux.HandleFunc("GET /api/parcels/{id}", s.handleParcel)
	mux.HandleFunc("GET /api/colors", s.handleColors)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/reconcile", s.handleReconcile)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("POST /api/reload", s.handleReload)
	mux.HandleFunc("GET /map.svg", s.handleMap)
	mux.HandleFunc("GET /legend.png", s.handleLegend())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
