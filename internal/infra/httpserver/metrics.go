package httpserver

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	_metricPrefix   = "climate_monitor.http."
	_unmatchedRoute = "unmatched"
)

var errHijackUnsupported = errors.New("response writer does not support hijacking")

// requestMetrics records per-route latency and counts. Routes are labelled by
// the ServeMux pattern that matched, so path parameters never explode the
// label cardinality.
type requestMetrics struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newRequestMetrics(meter metric.Meter) (*requestMetrics, error) {
	duration, err := meter.Float64Histogram(_metricPrefix+"request.duration",
		metric.WithDescription("Time spent serving API and stream requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5),
	)
	if err != nil {
		return nil, err
	}

	requests, err := meter.Int64Counter(_metricPrefix+"requests",
		metric.WithDescription("Requests served, by route and status"),
	)
	if err != nil {
		return nil, err
	}

	inFlight, err := meter.Int64UpDownCounter(_metricPrefix+"requests.in_flight",
		metric.WithDescription("Requests currently being served, including open streams"),
	)
	if err != nil {
		return nil, err
	}

	return &requestMetrics{duration: duration, requests: requests, inFlight: inFlight}, nil
}

// Middleware must wrap the router directly: the mux fills in r.Pattern on
// the request it is handed.
func (m *requestMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		method := attribute.String("http.method", r.Method)

		m.inFlight.Add(ctx, 1, metric.WithAttributes(method))
		defer m.inFlight.Add(ctx, -1, metric.WithAttributes(method))

		recorder := newStatusRecorder(w)
		started := time.Now()

		next.ServeHTTP(recorder, r)

		attrs := metric.WithAttributes(
			method,
			attribute.String("http.route", routeOf(r)),
			attribute.Int("http.status_code", recorder.status),
		)
		m.duration.Record(ctx, time.Since(started).Seconds(), attrs)
		m.requests.Add(ctx, 1, attrs)
	})
}

func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return _unmatchedRoute
	}
	return r.Pattern
}

// statusRecorder remembers the status code written by the handler. It keeps
// http.Hijacker available so websocket upgrades pass through.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errHijackUnsupported
	}
	// upgraded connections report 101 regardless of what the handler wrote
	s.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
