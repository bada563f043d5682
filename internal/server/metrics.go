package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	divisions *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairdiv",
			Name:      "http_requests_total",
			Help:      "HTTP requests by handler, method and status code.",
		}, []string{"handler", "code", "method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fairdiv",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by handler and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler", "method"}),
		divisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairdiv",
			Name:      "divisions_total",
			Help:      "Division runs by algorithm and result.",
		}, []string{"algorithm", "result"}),
	}
	reg.MustRegister(m.requests, m.duration, m.divisions)
	return m
}

// instrument wraps h with request counting and latency observation.
func (m *metrics) instrument(name string, h http.Handler) http.Handler {
	labels := prometheus.Labels{"handler": name}
	return promhttp.InstrumentHandlerDuration(m.duration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.requests.MustCurryWith(labels), h))
}
