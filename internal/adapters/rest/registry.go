package rest

import (
	"net/http"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

type featuresResponse struct {
	X        domain.Feature       `json:"x"`
	DefaultY domain.Feature       `json:"default_y"`
	Features []domain.FeatureInfo `json:"features"`
	YChoices []domain.Feature     `json:"y_choices"`
	Ranged   []domain.Feature     `json:"range_filters"`
}

// ListFeatures handles GET /features
func (h *Handler) ListFeatures(w http.ResponseWriter, r *http.Request) {
	resp := featuresResponse{
		X:        domain.XFeature,
		DefaultY: domain.DefaultYFeature,
		Features: domain.Features(),
		Ranged:   append([]domain.Feature(nil), domain.RangeFilteredFeatures...),
	}
	for _, info := range domain.YAxisChoices() {
		resp.YChoices = append(resp.YChoices, info.Name)
	}
	writeJSON(w, http.StatusOK, resp)
}

type genreResponse struct {
	Genre string `json:"genre"`
	Color string `json:"color"`
}

// ListGenres handles GET /genres
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres := h.sessions.Dataset().Genres()
	out := make([]genreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, genreResponse{Genre: g, Color: h.palette.Color(g)})
	}
	writeJSON(w, http.StatusOK, out)
}
