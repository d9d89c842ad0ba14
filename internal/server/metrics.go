package server

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records request and source health in Prometheus collectors.
type Metrics struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	sourceErrors *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg, or on the default registerer
// when reg is nil. Collectors that are already registered are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "statusboard_http_requests_total",
		Help: "Total number of HTTP requests by route and status code",
	}, []string{"route", "method", "code"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "statusboard_http_request_duration_seconds",
		Help:    "Time spent rendering a request",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	sourceErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "statusboard_source_errors_total",
		Help: "Number of times a data source degraded to its empty value",
	}, []string{"source"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if sourceErrors, err = register(reg, sourceErrors); err != nil {
		return nil, err
	}

	return &Metrics{requests: requests, latency: latency, sourceErrors: sourceErrors}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method, code string, seconds float64) {
	m.requests.WithLabelValues(route, method, code).Inc()
	m.latency.WithLabelValues(route).Observe(seconds)
}

// SourceFailed counts a degraded source. It matches the dashboard error hook.
func (m *Metrics) SourceFailed(source string, _ error) {
	m.sourceErrors.WithLabelValues(source).Inc()
}
