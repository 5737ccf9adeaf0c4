package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"climate-monitor/internal/infra/node"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	_shutdownTimeout     = 5 * time.Second
	_instrumentationName = "climate-monitor"
)

type Server interface {
	Run()
	Shutdown()
}

type Options struct {
	Address        string
	AllowedOrigins []string
}

var _ Server = &StandardServer{}

type StandardServer struct {
	server *http.Server
}

func (s *StandardServer) Run() {
	slog.Info("🌐 http server listening", slog.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server stopped", slog.Any("error", err))
	}
}

func (s *StandardServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), _shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown", slog.Any("error", err))
	}
}

// Handler exposes the full middleware chain.
func (s *StandardServer) Handler() http.Handler {
	return s.server.Handler
}

func NewServer(opts Options, controllers ...Controller) *StandardServer {
	router := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	var handler http.Handler = router
	metrics, err := newRequestMetrics(otel.Meter(_instrumentationName))
	if err != nil {
		slog.Warn("http metrics disabled", slog.Any("error", err))
	} else {
		handler = metrics.Middleware(handler)
	}

	server := &StandardServer{
		&http.Server{
			Addr:    opts.Address,
			Handler: c.Handler(createTracingMiddleware()(handler)),
		},
	}

	router.Handle("GET /healthz", getHealthz())
	router.Handle("GET /metrics", promhttp.Handler())

	for _, controller := range controllers {
		controller.AddRoutes(router)
	}

	return server
}

func createTracingMiddleware() func(http.Handler) http.Handler {
	// b3 for callers that still speak zipkin headers, in both header layouts
	propagator := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		b3.New(b3.WithInjectEncoding(b3.B3MultipleHeader|b3.B3SingleHeader)),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			tracer := otel.Tracer(_instrumentationName)
			ctx, span := tracer.Start(ctx, "http.request",
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
					attribute.String("http.user_agent", r.UserAgent()),
					attribute.String("http.remote_addr", r.RemoteAddr),
					attribute.String("span.kind", "server"),
					attribute.String("component", "http-server"),
				),
			)
			defer span.End()

			r = r.WithContext(ctx)

			propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			recorder := newStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			span.SetAttributes(attribute.Int("http.status_code", recorder.status))
		})
	}
}

type healthz struct {
	Status  string `json:"status"`
	Node    string `json:"node"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

func getHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		span := GetSpanFromContext(r)
		span.SetAttributes(attribute.String("endpoint", "healthz"))

		info := node.GetNodeInfo()
		ReplyJSONResponse(w, http.StatusOK, healthz{
			Status:  "success",
			Node:    info.ID,
			Version: info.Version,
			Uptime:  info.Uptime().Truncate(time.Second).String(),
		})
	}
}
