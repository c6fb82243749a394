// Package metrics exposes Prometheus instrumentation for inbound routes and
// outbound HubSpot calls.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/hubmail/pkg/hubspot"
)

// Send outcomes recorded by RecordSend.
const (
	OutcomeSent      = "sent"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
	OutcomeUnreached = "unreached"
)

// Metrics holds the collectors registered by New.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	outboundRequests *prometheus.CounterVec
	outboundDuration *prometheus.HistogramVec
	outboundInflight prometheus.Gauge

	sends *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. Collectors that are
// already registered are reused. gatherer backs Handler.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Metrics, error) {
	m := &Metrics{gatherer: gatherer}
	var err error

	if m.httpRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Inbound HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})); err != nil {
		return nil, err
	}
	if m.httpDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Inbound HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})); err != nil {
		return nil, err
	}
	if m.httpInflight, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "Inbound HTTP requests in flight.",
	})); err != nil {
		return nil, err
	}
	if m.outboundRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hubspot_outbound_requests_total",
		Help: "Outbound HubSpot API requests by status code and method.",
	}, []string{"code", "method"})); err != nil {
		return nil, err
	}
	if m.outboundDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hubspot_outbound_request_duration_seconds",
		Help:    "Outbound HubSpot API request latency.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"code", "method"})); err != nil {
		return nil, err
	}
	if m.outboundInflight, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hubspot_outbound_inflight_requests",
		Help: "Outbound HubSpot API requests in flight.",
	})); err != nil {
		return nil, err
	}
	if m.sends, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hubmail_sends_total",
		Help: "Single-send attempts by outcome.",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}

	return m, nil
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

// Handler serves the gathered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records inbound request count, latency and in-flight requests.
// Routes are labeled by their chi pattern so path parameters do not explode
// label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInflight.Inc()
		defer m.httpInflight.Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.code())).Inc()
	})
}

// InstrumentTransport wraps rt so every outbound HubSpot call is counted and timed.
// A nil rt means http.DefaultTransport.
func (m *Metrics) InstrumentTransport(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(m.outboundInflight,
		promhttp.InstrumentRoundTripperCounter(m.outboundRequests,
			promhttp.InstrumentRoundTripperDuration(m.outboundDuration, rt),
		),
	)
}

// RecordSend counts a send attempt by the kind of its error.
func (m *Metrics) RecordSend(err error) {
	m.sends.WithLabelValues(SendOutcome(err)).Inc()
}

// SendOutcome maps a send error to an outcome label.
func SendOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSent
	case errors.Is(err, hubspot.ErrValidation):
		return OutcomeRejected
	case errors.Is(err, hubspot.ErrTransport):
		return OutcomeUnreached
	default:
		return OutcomeFailed
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func (r *statusRecorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
