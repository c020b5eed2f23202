package rest

import (
	"net/http"
	"strconv"
	"time"

	"campusnav/indoornav/pkg/datastructure"
	"campusnav/indoornav/pkg/engine/resolver"
	"campusnav/indoornav/pkg/engine/routingalgorithm"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// prometheus metrics
type metrics struct {
	FindPathCount      *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	durationSummary    prometheus.Summary
	responseStatusCode *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		FindPathCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campusnav",
			Name:      "find_path_result_count",
			Help:      "Route slots computed, by slot and outcome",
		}, []string{"slot", "outcome"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campusnav",
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"method", "path"}),
		durationSummary: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace:  "campusnav",
			Name:       "request_duration_summary_seconds",
			Help:       "The duration of request",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
		responseStatusCode: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "campusnav",
				Name:      "response_status_code",
				Help:      "The status code of http response",
			}, []string{"status", "method", "path"},
		),
	}
	reg.MustRegister(m.FindPathCount, m.httpDuration, m.durationSummary, m.responseStatusCode)
	return m
}

func (m *metrics) observeRoute(slot string, res datastructure.RouteResult) {
	if m == nil {
		return
	}
	outcome := "found"
	switch {
	case res.Found():
	case res.Error == routingalgorithm.ErrPathNotFound.Error(),
		res.Error == resolver.ErrStartNotFound.Error(),
		res.Error == resolver.ErrEndNotFound.Error():
		outcome = res.Error
	default:
		outcome = "error"
	}
	m.FindPathCount.WithLabelValues(slot, outcome).Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// PromeHttpMiddleware labels requests by route pattern so path params do not blow up cardinality.
func PromeHttpMiddleware(m *metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := NewResponseWriter(w)
			now := time.Now()

			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			elapsed := time.Since(now).Seconds()

			m.responseStatusCode.With(prometheus.Labels{"status": strconv.Itoa(rw.statusCode), "method": r.Method, "path": path}).Inc()
			m.httpDuration.With(prometheus.Labels{"method": r.Method, "path": path}).Observe(elapsed)
			m.durationSummary.Observe(elapsed)
		})
	}
}
