package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

type ShutdownFunc func(context.Context) error

const (
	DefaultEndpoint = "localhost:4317"

	_collectPeriod   = 30 * time.Second
	_collectTimeout  = 35 * time.Second
	_minimumInterval = time.Minute
)

var (
	_histogramBuckets = []float64{5, 10, 25, 50, 75, 100, 250, 500, 750, 1000, 2500, 5000, 7500, 10000}
)

type Options struct {
	Endpoint    string
	ServiceName string
	Version     string
}

// Start installs OTLP metric and trace providers as the otel globals and
// starts the runtime instrumentation. The exporters connect lazily, so a
// missing collector only shows up as export errors later on.
func Start(ctx context.Context, opts Options) (ShutdownFunc, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	slog.Info("starting OTel providers", slog.String("endpoint", opts.Endpoint))

	res := Resource(opts)

	metricsShutdown, err := startMetricsProvider(ctx, opts.Endpoint, res)
	if err != nil {
		return nil, err
	}

	traceShutdown, err := startTraceProvider(ctx, opts.Endpoint, res)
	if err != nil {
		return nil, errors.Join(err, metricsShutdown(ctx))
	}

	return func(ctx context.Context) error {
		return errors.Join(metricsShutdown(ctx), traceShutdown(ctx))
	}, nil
}

func Resource(opts Options) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(opts.ServiceName),
		semconv.ServiceVersionKey.String(opts.Version),
	)
}

func startTraceProvider(ctx context.Context, endpoint string, res *resource.Resource) (ShutdownFunc, error) {
	exp, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

func startMetricsProvider(ctx context.Context, endpoint string, res *resource.Resource) (ShutdownFunc, error) {
	exp, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	reader := metric.NewPeriodicReader(
		exp,
		metric.WithTimeout(_collectTimeout),
		metric.WithInterval(_collectPeriod))
	mp := NewMeterProvider(reader, res)
	otel.SetMeterProvider(mp)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval)); err != nil {
		return nil, errors.Join(err, mp.Shutdown(ctx))
	}

	return mp.Shutdown, nil
}

// NewMeterProvider applies the shared histogram buckets to every histogram
// read by reader.
func NewMeterProvider(reader metric.Reader, res *resource.Resource) *metric.MeterProvider {
	return metric.NewMeterProvider(
		metric.WithReader(reader),
		metric.WithResource(res),
		metric.WithView(metric.NewView(
			metric.Instrument{
				Name: "*",
				Kind: metric.InstrumentKindHistogram,
			},
			metric.Stream{
				Aggregation: metric.AggregationExplicitBucketHistogram{
					Boundaries: _histogramBuckets,
				},
			},
		)),
	)
}
