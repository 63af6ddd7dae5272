// Package httpapi exposes the cookbook over HTTP.
//
// Routes:
//
//	POST /parse            {"input": "..."}         -> {"msg": "..."}
//	POST /entry            entry                    -> {}
//	GET  /entry?name=      -                        -> entry
//	GET  /entries          -                        -> {"items": [entry...]}
//	GET  /summary?name=    -                        -> summary
//	GET  /health           -                        -> {"status": "ok", "items": n}
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/formatter"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Handler provides HTTP endpoints for cookbook operations.
type Handler struct {
	store        domain.ItemStore
	summarizer   domain.Summarizer
	log          *logger.Logger
	tracer       trace.Tracer
	strictStatus bool
}

// HandlerConfig configures the API handler.
type HandlerConfig struct {
	// Store holds the items (required).
	Store domain.ItemStore
	// Summarizer resolves recipe summaries (required).
	Summarizer domain.Summarizer
	// Log receives access and error logs (required).
	Log *logger.Logger
	// Tracer starts a server span per request. Defaults to a no-op tracer.
	Tracer trace.Tracer
	// StrictStatus answers not-found with 404 and conflicts with 409.
	// When false every rejection is a 400.
	StrictStatus bool
}

// NewHandler creates an API handler.
func NewHandler(cfg HandlerConfig) *Handler {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("httpapi")
	}
	return &Handler{
		store:        cfg.Store,
		summarizer:   cfg.Summarizer,
		log:          cfg.Log,
		tracer:       tracer,
		strictStatus: cfg.StrictStatus,
	}
}

// Routes returns an http.Handler with all API routes and middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /parse", h.Parse)
	mux.HandleFunc("POST /entry", h.AddEntry)
	mux.HandleFunc("GET /entry", h.GetEntry)
	mux.HandleFunc("GET /entries", h.ListEntries)
	mux.HandleFunc("GET /summary", h.Summary)
	mux.HandleFunc("GET /health", h.Health)

	return chain(mux,
		withRequestID,
		recoverPanics(h.log),
		traceRequests(h.tracer),
		logRequests(h.log),
	)
}

// === Request/Response Types ===

// ParseRequest is the request body for /parse.
type ParseRequest struct {
	Input string `json:"input"`
}

// ParseResponse is the response body for /parse.
type ParseResponse struct {
	Msg string `json:"msg"`
}

// ListResponse is the response body for /entries.
type ListResponse struct {
	Items []domain.Entry `json:"items"`
}

// HealthResponse is the response body for /health.
type HealthResponse struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

// ErrorResponse is the body of every rejected request.
type ErrorResponse struct {
	Error    string          `json:"error"`
	Kind     domain.Kind     `json:"kind"`
	Category domain.Category `json:"category"`
}

// === Handlers ===

// Parse formats free text into a display name.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err))
		return
	}

	name, ok := formatter.Format(req.Input)
	if !ok {
		h.writeError(w, r, fmt.Errorf("%w: %q", domain.ErrNoName, req.Input))
		return
	}
	h.writeJSON(w, http.StatusOK, ParseResponse{Msg: name})
}

// AddEntry validates and stores an ingredient or recipe.
func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := decodeEntry(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.store.Insert(r.Context(), entry); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.log.Info("added %s %q", entry.Type, entry.Name)
	h.writeJSON(w, http.StatusOK, struct{}{})
}

// GetEntry returns one stored item.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	name, ok := h.requireName(w, r)
	if !ok {
		return
	}

	item, err := h.store.Lookup(r.Context(), name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, domain.EntryOf(item))
}

// ListEntries returns every stored item in insertion order.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := ListResponse{Items: make([]domain.Entry, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, domain.EntryOf(item))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Summary returns the flattened summary of a recipe.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	name, ok := h.requireName(w, r)
	if !ok {
		return
	}

	summary, err := h.summarizer.Summarize(r.Context(), name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// Health reports liveness and the number of stored items.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Items: h.store.Len()})
}

// === Helpers ===

// requireName reads the name query parameter. A missing parameter is
// reported as not found.
func (h *Handler) requireName(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query()
	if !q.Has("name") {
		h.writeError(w, r, fmt.Errorf("%w: name query parameter is required", domain.ErrNotFound))
		return "", false
	}
	return q.Get("name"), true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encoding response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := h.statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		h.log.Debug("%s %s rejected: %v", r.Method, r.URL.Path, err)
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		status = http.StatusRequestEntityTooLarge
	}

	h.writeJSON(w, status, ErrorResponse{
		Error:    err.Error(),
		Kind:     domain.KindOf(err),
		Category: domain.CategoryOf(err),
	})
}

// statusFor maps a failure to an HTTP status. Without strict status every
// domain failure is a 400, matching what existing clients expect.
func (h *Handler) statusFor(err error) int {
	switch domain.CategoryOf(err) {
	case domain.CategoryInvalid:
		return http.StatusBadRequest
	case domain.CategoryNotFound:
		if h.strictStatus {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case domain.CategoryConflict:
		if h.strictStatus {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
