package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type pingController struct{}

func (pingController) AddRoutes(router *http.ServeMux) {
	router.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ReplyJSONResponse(w, http.StatusOK, map[string]string{"pong": "ok"})
	})
}

var _ = ginkgo.Describe("HTTPServer", func() {
	var (
		tp       *trace.TracerProvider
		recorder *tracetest.SpanRecorder
		server   *StandardServer
	)

	ginkgo.BeforeEach(func() {
		recorder = tracetest.NewSpanRecorder()
		tp = trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
		otel.SetTracerProvider(tp)

		server = NewServer(Options{
			Address:        ":0",
			AllowedOrigins: []string{"http://localhost:5173"},
		}, pingController{})
	})

	ginkgo.AfterEach(func() {
		tp.Shutdown(context.Background())
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		return rec
	}

	ginkgo.Context("Routes", func() {
		ginkgo.It("should answer health checks", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var body map[string]string
			gomega.Expect(json.NewDecoder(rec.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("status", "success"))
			gomega.Expect(body).To(gomega.HaveKey("node"))
			gomega.Expect(body).To(gomega.HaveKey("uptime"))
		})

		ginkgo.It("should expose prometheus metrics", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("go_goroutines"))
		})

		ginkgo.It("should mount controller routes", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should allow configured origins", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set("Origin", "http://localhost:5173")

			rec := serve(req)

			gomega.Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(gomega.Equal("http://localhost:5173"))
		})

		ginkgo.It("should not allow other origins", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set("Origin", "http://example.com")

			rec := serve(req)

			gomega.Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(gomega.BeEmpty())
		})
	})

	ginkgo.Context("TracingMiddleware", func() {
		ginkgo.It("should add a span to the request context", func() {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				span := GetSpanFromContext(r)
				gomega.Expect(span.SpanContext().HasSpanID()).To(gomega.BeTrue())
				w.WriteHeader(http.StatusTeapot)
			})

			rec := httptest.NewRecorder()
			createTracingMiddleware()(testHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusTeapot))
			gomega.Expect(recorder.Ended()).To(gomega.HaveLen(1))
			gomega.Expect(recorder.Ended()[0].Name()).To(gomega.Equal("http.request"))
		})

		ginkgo.It("should continue an incoming trace", func() {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

			createTracingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				traceID := GetSpanFromContext(r).SpanContext().TraceID().String()
				gomega.Expect(traceID).To(gomega.Equal("4bf92f3577b34da6a3ce929d0e0e4736"))
			})).ServeHTTP(httptest.NewRecorder(), req)
		})

		ginkgo.It("should continue a b3 trace", func() {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("b3", "80f198ee56343ba864fe8b2a57d3eff7-e457b5a2e4d86bd1-1")

			createTracingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				traceID := GetSpanFromContext(r).SpanContext().TraceID().String()
				gomega.Expect(traceID).To(gomega.Equal("80f198ee56343ba864fe8b2a57d3eff7"))
			})).ServeHTTP(httptest.NewRecorder(), req)
		})

		ginkgo.It("should return the trace context to the caller", func() {
			rec := httptest.NewRecorder()
			createTracingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			gomega.Expect(rec.Header().Get("traceparent")).NotTo(gomega.BeEmpty())
			gomega.Expect(rec.Header().Get("X-B3-TraceId")).NotTo(gomega.BeEmpty())
			gomega.Expect(rec.Header().Get("b3")).NotTo(gomega.BeEmpty())
		})
	})

	ginkgo.Context("GetSpanFromContext", func() {
		ginkgo.It("should return a span even when no span is in context", func() {
			span := GetSpanFromContext(httptest.NewRequest(http.MethodGet, "/test", nil))

			gomega.Expect(span).NotTo(gomega.BeNil())
			gomega.Expect(span.SpanContext().IsValid()).To(gomega.BeFalse())
		})
	})
})
