package rest

import (
	"net/http"
	"strconv"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/services"
)

type createSessionResponse struct {
	ID   string      `json:"id"`
	View domain.View `json:"view"`
}

type setGenresRequest struct {
	Genres []string `json:"genres"`
}

// rangeRequest carries slider positions on the 0-100 control scale.
type rangeRequest struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

type axisRequest struct {
	Y string `json:"y"`
}

type brushRequest struct {
	X0 *float64 `json:"x0"`
	Y0 *float64 `json:"y0"`
	X1 *float64 `json:"x1"`
	Y1 *float64 `json:"y1"`
}

// CreateSession handles POST /sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	e, err := h.sessions.Create()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{
		ID:   e.ID(),
		View: e.Snapshot(wantPoints(r)),
	})
}

// GetSession handles GET /sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	e, ok := h.explorer(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, e.Snapshot(wantPoints(r)))
}

// DeleteSession handles DELETE /sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleGenre handles POST /sessions/{id}/genres/{genre}/toggle
func (h *Handler) ToggleGenre(w http.ResponseWriter, r *http.Request) {
	genre := r.PathValue("genre")
	h.transition(w, r, func(e *services.Explorer) (domain.View, error) {
		return e.ToggleGenre(genre)
	})
}

// SetGenres handles PUT /sessions/{id}/genres
func (h *Handler) SetGenres(w http.ResponseWriter, r *http.Request) {
	var req setGenresRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, func(e *services.Explorer) (domain.View, error) {
		return e.SetGenres(req.Genres)
	})
}

// SelectAllGenres handles POST /sessions/{id}/genres/all
func (h *Handler) SelectAllGenres(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*services.Explorer).SelectAllGenres)
}

// ClearGenres handles DELETE /sessions/{id}/genres
func (h *Handler) ClearGenres(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*services.Explorer).ClearGenres)
}

// SetRange handles PUT /sessions/{id}/ranges/{feature}
func (h *Handler) SetRange(w http.ResponseWriter, r *http.Request) {
	feature, err := domain.ParseFeature(r.PathValue("feature"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req rangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Min == nil || req.Max == nil {
		writeErrorWithCode(w, http.StatusBadRequest, "min and max are required", errCodeInvalidRange)
		return
	}
	if !inSliderScale(*req.Min) || !inSliderScale(*req.Max) {
		writeErrorWithCode(w, http.StatusBadRequest, "min and max must be between 0 and 100", errCodeInvalidRange)
		return
	}
	h.transition(w, r, func(e *services.Explorer) (domain.View, error) {
		return e.SetRange(feature, *req.Min, *req.Max)
	})
}

// Reset handles POST /sessions/{id}/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*services.Explorer).Reset)
}

// ChangeYAxis handles PUT /sessions/{id}/axis
func (h *Handler) ChangeYAxis(w http.ResponseWriter, r *http.Request) {
	var req axisRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Y == "" {
		writeError(w, http.StatusBadRequest, "y is required")
		return
	}
	h.transition(w, r, func(e *services.Explorer) (domain.View, error) {
		return e.ChangeYAxis(domain.Feature(req.Y))
	})
}

// Brush handles PUT /sessions/{id}/brush
func (h *Handler) Brush(w http.ResponseWriter, r *http.Request) {
	var req brushRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.X0 == nil || req.Y0 == nil || req.X1 == nil || req.Y1 == nil {
		writeError(w, http.StatusBadRequest, "x0, y0, x1 and y1 are required")
		return
	}
	rect := &domain.Rect{X0: *req.X0, Y0: *req.Y0, X1: *req.X1, Y1: *req.Y1}
	h.transition(w, r, func(e *services.Explorer) (domain.View, error) {
		return e.BrushEnd(rect)
	})
}

// ClearBrush handles DELETE /sessions/{id}/brush
func (h *Handler) ClearBrush(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(e *services.Explorer) (domain.View, error) {
		return e.BrushEnd(nil)
	})
}

// transition runs one view event and responds with the resulting view.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(*services.Explorer) (domain.View, error)) {
	e, ok := h.explorer(w, r)
	if !ok {
		return
	}
	v, err := fn(e)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !wantPoints(r) {
		v.Points = nil
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) explorer(w http.ResponseWriter, r *http.Request) (*services.Explorer, bool) {
	e, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return e, true
}

func wantPoints(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("points"))
	return ok
}

func inSliderScale(v int) bool { return v >= 0 && v <= 100 }
