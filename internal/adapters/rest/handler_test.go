package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ewilliams-labs/trackscope/internal/adapters/render"
	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/services"
	"github.com/ewilliams-labs/trackscope/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDataset() *domain.Dataset {
	mk := func(name, genre string, pop, dance, energy, valence float64) domain.Track {
		return domain.Track{
			TrackName: name,
			Artists:   "Artist " + name,
			Genre:     genre,
			Features:  domain.AudioFeatures{Popularity: pop, Danceability: dance, Energy: energy, Valence: valence},
		}
	}
	return domain.NewDataset([]domain.Track{
		mk("a", "pop", 70, 0.8, 0.5, 0.6),
		mk("b", "rock", 40, 0.3, 0.9, 0.4),
		mk("c", "jazz", 20, 0.5, 0.2, 0.7),
	})
}

func newTestHandler(t *testing.T, pool *worker.Pool) (*Handler, string) {
	t.Helper()
	d := testDataset()
	sessions := services.NewSessions(d, domain.DefaultPlot, discardLogger())
	h := NewHandler(sessions, render.NewPalette(d.Genres()), pool, discardLogger())

	rec := do(t, h, http.MethodPost, "/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return h, created.ID
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type viewBody struct {
	FilteredCount   int  `json:"filtered_count"`
	SelectionActive bool `json:"selection_active"`
	Stats           struct {
		Count            int      `json:"count"`
		MeanDanceability *float64 `json:"mean_danceability"`
		TopGenre         *struct {
			Genre string `json:"genre"`
			Count int    `json:"count"`
		} `json:"top_genre"`
	} `json:"stats"`
	Points []json.RawMessage `json:"points"`
}

func TestHandler_Transitions(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   string
		wantCount      int
	}{
		{
			name:           "Success: toggle genre filters",
			method:         http.MethodPost,
			path:           "/genres/pop/toggle",
			expectedStatus: http.StatusOK,
			wantCount:      1,
		},
		{
			name:           "Bad Request: unknown genre",
			method:         http.MethodPost,
			path:           "/genres/polka/toggle",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"UNKNOWN_GENRE"`,
		},
		{
			name:           "Success: set genres",
			method:         http.MethodPut,
			path:           "/genres",
			body:           `{"genres":["pop","jazz"]}`,
			expectedStatus: http.StatusOK,
			wantCount:      2,
		},
		{
			name:           "Success: range slider",
			method:         http.MethodPut,
			path:           "/ranges/energy",
			body:           `{"min":40,"max":100}`,
			expectedStatus: http.StatusOK,
			wantCount:      2,
		},
		{
			name:           "Bad Request: range outside slider scale",
			method:         http.MethodPut,
			path:           "/ranges/energy",
			body:           `{"min":-1,"max":100}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"INVALID_RANGE"`,
		},
		{
			name:           "Bad Request: range on tempo",
			method:         http.MethodPut,
			path:           "/ranges/tempo",
			body:           `{"min":0,"max":100}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"UNFILTERABLE_FEATURE"`,
		},
		{
			name:           "Bad Request: unknown feature",
			method:         http.MethodPut,
			path:           "/ranges/mood",
			body:           `{"min":0,"max":100}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"UNKNOWN_FEATURE"`,
		},
		{
			name:           "Success: change y axis",
			method:         http.MethodPut,
			path:           "/axis",
			body:           `{"y":"valence"}`,
			expectedStatus: http.StatusOK,
			wantCount:      3,
		},
		{
			name:           "Bad Request: popularity on y",
			method:         http.MethodPut,
			path:           "/axis",
			body:           `{"y":"popularity"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"INVALID_AXIS"`,
		},
		{
			name:           "Success: brush selects",
			method:         http.MethodPut,
			path:           "/brush",
			body:           `{"x0":1020,"y0":400,"x1":500,"y1":0}`,
			expectedStatus: http.StatusOK,
			wantCount:      1,
		},
		{
			name:           "Bad Request: brush missing corner",
			method:         http.MethodPut,
			path:           "/brush",
			body:           `{"x0":0,"y0":0,"x1":10}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "x0, y0, x1 and y1 are required",
		},
		{
			name:           "Unsupported: form body",
			method:         http.MethodPut,
			path:           "/axis",
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "Success: reset",
			method:         http.MethodPost,
			path:           "/reset",
			expectedStatus: http.StatusOK,
			wantCount:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, id := newTestHandler(t, nil)
			rec := do(t, h, tt.method, "/sessions/"+id+tt.path, tt.body)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d, body: %s", tt.expectedStatus, rec.Code, strings.TrimSpace(rec.Body.String()))
			}
			if tt.expectedBody != "" && !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Fatalf("expected body to contain %q, got %s", tt.expectedBody, rec.Body.String())
			}
			if rec.Code != http.StatusOK {
				return
			}
			var v viewBody
			if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
				t.Fatalf("decode view: %v", err)
			}
			if v.Stats.Count != tt.wantCount {
				t.Fatalf("expected stats count %d, got %d", tt.wantCount, v.Stats.Count)
			}
			if v.Points != nil {
				t.Fatal("points should be omitted unless requested")
			}
		})
	}
}

func TestHandler_EndToEndStatistics(t *testing.T) {
	h, id := newTestHandler(t, nil)

	rec := do(t, h, http.MethodPut, "/sessions/"+id+"/genres?points=true", `{"genres":["pop"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var v viewBody
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Stats.Count != 1 || v.Stats.MeanDanceability == nil || *v.Stats.MeanDanceability != 0.8 {
		t.Fatalf("unexpected stats %+v", v.Stats)
	}
	if v.Stats.TopGenre == nil || v.Stats.TopGenre.Genre != "pop" || v.Stats.TopGenre.Count != 1 {
		t.Fatalf("unexpected top genre %+v", v.Stats.TopGenre)
	}
	if len(v.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(v.Points))
	}

	// A brush that matches nothing is still an active selection.
	rec = do(t, h, http.MethodPut, "/sessions/"+id+"/brush", `{"x0":0,"y0":0,"x1":1,"y1":1}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !v.SelectionActive || v.Stats.Count != 0 || v.Stats.MeanDanceability != nil || v.Stats.TopGenre != nil {
		t.Fatalf("empty selection should report placeholders, got %+v", v)
	}
}

func TestHandler_Sessions(t *testing.T) {
	h, id := newTestHandler(t, nil)

	if rec := do(t, h, http.MethodGet, "/sessions/"+id, ""); rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/sessions/"+id, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/sessions/"+id, "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"code":"NOT_FOUND"`) {
		t.Fatalf("expected 404 after delete, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_Registries(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := do(t, h, http.MethodGet, "/genres", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("genres: status %d", rec.Code)
	}
	var genres []genreResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &genres); err != nil {
		t.Fatalf("decode genres: %v", err)
	}
	if len(genres) != 3 || genres[0].Genre != "jazz" || genres[0].Color != "#e6194B" {
		t.Fatalf("unexpected genres %+v", genres)
	}

	rec = do(t, h, http.MethodGet, "/features", "")
	var features featuresResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &features); err != nil {
		t.Fatalf("decode features: %v", err)
	}
	if features.X != domain.Popularity || features.DefaultY != domain.Energy || len(features.YChoices) != 7 {
		t.Fatalf("unexpected features %+v", features)
	}

	rec = do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"tracks":3`) {
		t.Fatalf("health: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_Charts(t *testing.T) {
	h, id := newTestHandler(t, nil)

	rec := do(t, h, http.MethodGet, "/sessions/"+id+"/chart", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("chart: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "Energy vs. Popularity") {
		t.Fatal("chart should carry the axis title")
	}

	rec = do(t, h, http.MethodGet, "/sessions/"+id+"/chart.png", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("chart.png: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestHandler_Export(t *testing.T) {
	h, id := newTestHandler(t, nil)
	if rec := do(t, h, http.MethodPost, "/sessions/"+id+"/exports", ""); rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 without a pool, got %d", rec.Code)
	}

	pool := worker.NewPool(t.TempDir(), render.NewPalette(nil), 1, discardLogger())
	h, id = newTestHandler(t, pool)

	rec := do(t, h, http.MethodPost, "/sessions/"+id+"/exports", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d %s", rec.Code, rec.Body.String())
	}
	var resp exportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.File, id+"-") || resp.JobID == "" {
		t.Fatalf("unexpected export response %+v", resp)
	}

	// The pool has not been started, so its single slot is taken.
	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/exports", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the queue is full, got %d", rec.Code)
	}
}
