package web

// errors.go provides unified error response handling for the web layer.
//
// Technical details are logged server-side with the request id; clients get
// a short message and a machine-readable code. API routes respond in JSON,
// everything else in plain HTML.

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hcd-tokyo/lp/internal/fetch"
	"github.com/hcd-tokyo/lp/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError logs the technical error and writes a sanitized response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	msg, code := mapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err,
		"code", code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, msg, code, statusCode)
	} else {
		http.Error(w, msg+" ("+code+")", statusCode)
	}
}

// mapError converts an internal error into a client-safe message and code.
func mapError(err error) (msg, code string) {
	var httpErr *fetch.HTTPError
	switch {
	case errors.Is(err, fetch.ErrTimeout):
		return "data source timed out", "SOURCE_TIMEOUT"
	case errors.As(err, &httpErr):
		return "data source unavailable", "SOURCE_UNAVAILABLE"
	case errors.Is(err, errNotFound):
		return "not found", "NOT_FOUND"
	default:
		return "internal error", "INTERNAL"
	}
}

// errNotFound marks lookups for ids absent from the loaded data.
var errNotFound = errors.New("not found")

func respondErrorJSON(w http.ResponseWriter, msg, code string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg, Code: code})
}

// writeJSON encodes v as JSON. Encoding errors are logged since headers
// are already sent.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
