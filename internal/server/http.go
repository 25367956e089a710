// Package server exposes a dashboard session over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// Dashboard is the session the handlers read from and search through.
type Dashboard interface {
	Snapshot() domain.DashboardState
	Search(ctx context.Context, term string) domain.DashboardState
}

// APIResponse is the envelope of every response body.
type APIResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SearchRequest is the body of POST /v1/dashboard/search.
type SearchRequest struct {
	Term string `json:"term"`
}

type handler struct {
	dashboard Dashboard
	logger    zerolog.Logger
}

// NewHandler returns the router serving the dashboard API.
func NewHandler(dashboard Dashboard, logger zerolog.Logger) http.Handler {
	h := &handler{dashboard: dashboard, logger: logger}

	router := mux.NewRouter()
	router.Use(h.loggingMiddleware)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)

	// Routes stay on the root router: a subrouter under Use reports a
	// method mismatch as 404.
	router.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	router.HandleFunc("/v1/dashboard", h.snapshot).Methods(http.MethodGet)
	router.HandleFunc("/v1/dashboard/search", h.searchQuery).Methods(http.MethodGet)
	router.HandleFunc("/v1/dashboard/search", h.searchBody).Methods(http.MethodPost)
	return router
}

func (h *handler) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusMethodNotAllowed, APIResponse{Status: "error", Error: "method not allowed"})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK, APIResponse{Status: "success", Message: "ok"})
}

func (h *handler) snapshot(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK, APIResponse{Status: "success", Data: h.dashboard.Snapshot()})
}

func (h *handler) searchQuery(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, r.URL.Query().Get("q"))
}

func (h *handler) searchBody(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.write(w, http.StatusBadRequest, APIResponse{Status: "error", Error: "invalid request body"})
		return
	}
	h.search(w, r, req.Term)
}

// search runs on a context that outlives the request: the session is
// shared, so a client hanging up must not turn it into an error state.
// Newer searches still cancel it.
func (h *handler) search(w http.ResponseWriter, r *http.Request, term string) {
	state := h.dashboard.Search(context.WithoutCancel(r.Context()), term)

	resp := APIResponse{Status: "success", Data: state}
	code := statusCode(state.Status)
	if code >= http.StatusBadRequest {
		resp.Status = "error"
		resp.Error = state.Message
	}
	h.write(w, code, resp)
}

// statusCode maps a finished search to an HTTP status. A search superseded
// by a newer one returns the newer, possibly unfinished, state as 202.
func statusCode(s domain.Status) int {
	switch s {
	case domain.StatusLoaded:
		return http.StatusOK
	case domain.StatusNotFound:
		return http.StatusNotFound
	case domain.StatusError:
		return http.StatusBadGateway
	default:
		return http.StatusAccepted
	}
}

func (h *handler) write(w http.ResponseWriter, code int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Server: Failed to encode response.")
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

func (h *handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rr, r)

		h.logger.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", rr.statusCode).
			Dur("duration", time.Since(start)).
			Msg("Server: Request handled.")
	})
}
