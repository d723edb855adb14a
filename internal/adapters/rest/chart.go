package rest

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/ewilliams-labs/trackscope/internal/adapters/render"
	"github.com/ewilliams-labs/trackscope/internal/worker"
)

type exportResponse struct {
	JobID string `json:"job_id"`
	File  string `json:"file"`
}

// ChartHTML handles GET /sessions/{id}/chart
func (h *Handler) ChartHTML(w http.ResponseWriter, r *http.Request) {
	e, ok := h.explorer(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.ScatterHTML(&buf, e.Snapshot(true), h.palette); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// ChartPNG handles GET /sessions/{id}/chart.png
func (h *Handler) ChartPNG(w http.ResponseWriter, r *http.Request) {
	e, ok := h.explorer(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.ScatterPNG(&buf, e.Snapshot(true), h.palette, render.DefaultSize); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Export handles POST /sessions/{id}/exports
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		writeErrorWithCode(w, http.StatusNotImplemented, "exports not configured", errCodeNotConfigured)
		return
	}
	e, ok := h.explorer(w, r)
	if !ok {
		return
	}
	job := worker.NewExportJob(e.ID(), e.Snapshot(true))
	if err := h.pool.Submit(job); err != nil {
		if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrStopped) {
			writeErrorWithCode(w, http.StatusServiceUnavailable, err.Error(), errCodeQueueFull)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.logger.Info("export queued", "session", e.ID(), "job", job.ID)
	writeJSON(w, http.StatusAccepted, exportResponse{JobID: job.ID, File: job.FileName()})
}
