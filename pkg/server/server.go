// Package server exposes the generator over HTTP for previewing inputs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-modelinput/pkg/column"
	"github.com/goliatone/go-modelinput/pkg/generator"
	"github.com/goliatone/go-modelinput/pkg/metrics"
	"github.com/goliatone/go-modelinput/pkg/options"
)

// RouterConfig holds optional router collaborators.
type RouterConfig struct {
	Metrics *metrics.Collector
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer when
	// Metrics is set.
	Gatherer prometheus.Gatherer
	Timeout  time.Duration
}

// Handler serves render and inspect requests.
type Handler struct {
	gen    *generator.Generator
	logger zerolog.Logger
}

// NewRouter creates the preview router.
func NewRouter(gen *generator.Generator, logger zerolog.Logger, cfg RouterConfig) chi.Router {
	h := &Handler{gen: gen, logger: logger}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	if cfg.Metrics != nil {
		r.Use(NewMetricsMiddleware(cfg.Metrics))
	}

	r.Get("/healthz", Health)
	if cfg.Metrics != nil {
		gatherer := cfg.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/render/{model}/{field}", h.Render)
	r.Get("/inspect/{model}/{field}", h.Inspect)
	return r
}

// Render writes the markup fragment for one model field. The options query
// parameter carries an options expression.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	markup, err := h.gen.Generate(r.Context(), h.request(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(markup))
}

// Inspect writes the column, input type, derived rules and markup as JSON.
func (h *Handler) Inspect(w http.ResponseWriter, r *http.Request) {
	res, err := h.gen.Inspect(r.Context(), h.request(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Report())
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) request(r *http.Request) generator.Request {
	query := r.URL.Query()
	return generator.Request{
		Model:   chi.URLParam(r, "model"),
		Field:   chi.URLParam(r, "field"),
		Options: query.Get("options"),
		Theme:   query.Get("theme"),
		Variant: query.Get("variant"),
	}
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := ErrorResponse{Error: err.Error()}
	var genErr *generator.Error
	if errors.As(err, &genErr) {
		body.Stage = string(genErr.Stage)
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("render failed")
	}
	writeJSON(w, status, body)
}

// StatusFor maps generator failures to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, column.ErrModelNotFound), errors.Is(err, column.ErrColumnNotFound):
		return http.StatusNotFound
	case errors.Is(err, options.ErrMalformedOptions):
		return http.StatusBadRequest
	case errors.Is(err, column.ErrUnknownColumnType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewLoggingMiddleware logs HTTP requests.
func NewLoggingMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
				return
			}

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}

// NewMetricsMiddleware records request counts and latency by route pattern.
func NewMetricsMiddleware(m *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.RecordHTTP(r.Method, strings.TrimSuffix(route, "/"), status, time.Since(start))
		})
	}
}
