package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inserts         *prometheus.CounterVec
	uploads         *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplychain_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "supplychain_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		inserts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplychain_records_inserted_total",
				Help: "Records inserted by collection",
			},
			[]string{"collection"},
		),
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplychain_uploads_total",
				Help: "Files uploaded by group",
			},
			[]string{"group"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.requests, m.requestDuration, m.inserts, m.uploads)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordInserted counts an insert into collection.
func (m *Metrics) RecordInserted(collection string) {
	m.inserts.WithLabelValues(collection).Inc()
}

// FileUploaded counts an upload into group.
func (m *Metrics) FileUploaded(group string) {
	m.uploads.WithLabelValues(group).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
