package rest

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

const (
	errCodeNotFound       = "NOT_FOUND"
	errCodeBadRequest     = "BAD_REQUEST"
	errCodeUnknownGenre   = "UNKNOWN_GENRE"
	errCodeUnknownFeature = "UNKNOWN_FEATURE"
	errCodeUnfilterable   = "UNFILTERABLE_FEATURE"
	errCodeInvalidAxis    = "INVALID_AXIS"
	errCodeInvalidRange   = "INVALID_RANGE"
	errCodeQueueFull      = "EXPORT_QUEUE_FULL"
	errCodeNotConfigured  = "NOT_CONFIGURED"
	errCodeInternal       = "INTERNAL"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeErrorWithCode(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	code := errCodeInternal
	if status < http.StatusInternalServerError {
		code = errCodeBadRequest
	}
	writeErrorWithCode(w, status, msg, code)
}

// writeServiceError maps domain errors to a status and code.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErrorWithCode(w, http.StatusNotFound, err.Error(), errCodeNotFound)
	case errors.Is(err, domain.ErrUnknownGenre):
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeUnknownGenre)
	case errors.Is(err, domain.ErrUnknownFeature):
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeUnknownFeature)
	case errors.Is(err, domain.ErrUnfilterableFeature):
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeUnfilterable)
	case errors.Is(err, domain.ErrInvalidAxis):
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeInvalidAxis)
	default:
		writeErrorWithCode(w, http.StatusInternalServerError, err.Error(), errCodeInternal)
	}
}

func isJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// decodeJSON reads a JSON body into v, writing the error response itself.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
