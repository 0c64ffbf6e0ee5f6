// Package metrics exposes Prometheus collectors for report rendering and
// the HTTP API.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg *prometheus.Registry

	reportsTotal   *prometheus.CounterVec   // renza_reports_total
	renderDuration prometheus.Histogram     // renza_report_render_seconds
	imageFailures  *prometheus.CounterVec   // renza_report_image_failures_total
	httpRequests   *prometheus.CounterVec   // renza_http_requests_total
	httpDuration   *prometheus.HistogramVec // renza_http_request_duration_seconds
}

func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renza_reports_total",
				Help: "Rendered delivery receipts, partitioned by page count.",
			},
			[]string{"pages"},
		),
		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "renza_report_render_seconds",
				Help:    "Time spent drawing and serializing a delivery receipt.",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
			},
		),
		imageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renza_report_image_failures_total",
				Help: "Images skipped while rendering, by kind (logo, signature).",
			},
			[]string{"kind"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renza_http_requests_total",
				Help: "HTTP requests by route pattern, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "renza_http_request_duration_seconds",
				Help:    "HTTP request latency by route pattern.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	for name, c := range map[string]prometheus.Collector{
		"reports counter":   m.reportsTotal,
		"render histogram":  m.renderDuration,
		"image failures":    m.imageFailures,
		"http requests":     m.httpRequests,
		"http duration":     m.httpDuration,
		"go collector":      prometheus.NewGoCollector(),
		"process collector": prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register %s: %w", name, err)
		}
	}

	return m, nil
}

func (m *Metrics) ObserveRender(pages int, d time.Duration) {
	m.reportsTotal.WithLabelValues(strconv.Itoa(pages)).Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) ImageFailed(kind string) {
	m.imageFailures.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Middleware counts requests by their chi route pattern so path parameters
// do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
