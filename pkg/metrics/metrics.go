// Package metrics exposes Prometheus collectors for rendering, registry
// reloads and the preview server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "modelinput"

// Collector holds all Prometheus metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	// Render metrics
	RendersTotal   *prometheus.CounterVec
	RenderErrors   *prometheus.CounterVec
	RenderDuration prometheus.Histogram
	TypeFallbacks  *prometheus.CounterVec

	// Registry metrics
	RegistryReloads      prometheus.Counter
	RegistryReloadErrors prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates a collector registered with the default registry.
func New() *Collector {
	return build(promauto.With(prometheus.DefaultRegisterer))
}

// NewWithRegistry creates a collector on a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	return build(promauto.With(reg))
}

func build(factory promauto.Factory) *Collector {
	return &Collector{
		RendersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Total number of successful renders by input type",
			},
			[]string{"input_type"},
		),
		RenderErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "render_errors_total",
				Help:      "Total number of failed renders by pipeline stage",
			},
			[]string{"stage"},
		),
		RenderDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Render duration in seconds, including schema lookup",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
		TypeFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "type_fallbacks_total",
				Help:      "Total number of unknown column types rendered as text",
			},
			[]string{"column_type"},
		),
		RegistryReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registry_reloads_total",
				Help:      "Total number of successful model map reloads",
			},
		),
		RegistryReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registry_reload_errors_total",
				Help:      "Total number of failed model map reloads",
			},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of preview server requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Preview server request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
	}
}

// RecordRender records a successful render.
func (c *Collector) RecordRender(inputType string, d time.Duration) {
	if c == nil {
		return
	}
	c.RendersTotal.WithLabelValues(inputType).Inc()
	c.RenderDuration.Observe(d.Seconds())
}

// RecordRenderError records a failed render at stage.
func (c *Collector) RecordRenderError(stage string, d time.Duration) {
	if c == nil {
		return
	}
	c.RenderErrors.WithLabelValues(stage).Inc()
	c.RenderDuration.Observe(d.Seconds())
}

// RecordTypeFallback records an unknown column type rendered as text.
func (c *Collector) RecordTypeFallback(columnType string) {
	if c == nil {
		return
	}
	c.TypeFallbacks.WithLabelValues(columnType).Inc()
}

// RecordReload records the outcome of a model map reload.
func (c *Collector) RecordReload(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.RegistryReloadErrors.Inc()
		return
	}
	c.RegistryReloads.Inc()
}

// RecordHTTP records a served request. route should be the router pattern,
// not the raw path, to keep label cardinality bounded.
func (c *Collector) RecordHTTP(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
