package rest

import (
	"log/slog"
	"net/http"

	"github.com/ewilliams-labs/trackscope/internal/adapters/render"
	"github.com/ewilliams-labs/trackscope/internal/core/services"
	"github.com/ewilliams-labs/trackscope/internal/worker"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	sessions *services.Sessions
	palette  render.Palette
	pool     *worker.Pool // nil disables exports
	logger   *slog.Logger
	router   *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(sessions *services.Sessions, palette render.Palette, pool *worker.Pool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		sessions: sessions,
		palette:  palette,
		pool:     pool,
		logger:   logger.With("component", "rest"),
		router:   http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	// Registries
	h.router.HandleFunc("GET /features", h.ListFeatures)
	h.router.HandleFunc("GET /genres", h.ListGenres)

	// Sessions
	h.router.HandleFunc("POST /sessions", h.CreateSession)
	h.router.HandleFunc("GET /sessions/{id}", h.GetSession)
	h.router.HandleFunc("DELETE /sessions/{id}", h.DeleteSession)

	// Filter controls
	h.router.HandleFunc("POST /sessions/{id}/genres/{genre}/toggle", h.ToggleGenre)
	h.router.HandleFunc("PUT /sessions/{id}/genres", h.SetGenres)
	h.router.HandleFunc("POST /sessions/{id}/genres/all", h.SelectAllGenres)
	h.router.HandleFunc("DELETE /sessions/{id}/genres", h.ClearGenres)
	h.router.HandleFunc("PUT /sessions/{id}/ranges/{feature}", h.SetRange)
	h.router.HandleFunc("POST /sessions/{id}/reset", h.Reset)

	// Axis and brush
	h.router.HandleFunc("PUT /sessions/{id}/axis", h.ChangeYAxis)
	h.router.HandleFunc("PUT /sessions/{id}/brush", h.Brush)
	h.router.HandleFunc("DELETE /sessions/{id}/brush", h.ClearBrush)

	// Draw layer
	h.router.HandleFunc("GET /sessions/{id}/chart", h.ChartHTML)
	h.router.HandleFunc("GET /sessions/{id}/chart.png", h.ChartPNG)
	h.router.HandleFunc("POST /sessions/{id}/exports", h.Export)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"tracks":   h.sessions.Dataset().Len(),
		"sessions": h.sessions.Len(),
	})
}
