package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/monitor/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const _meterName = "climate_monitor"

func NewMetricsWorker(broker async.InternalBroker) (*MetricsWorker, error) {
	meter := otel.Meter(_meterName)

	temperature, err := meter.Float64Gauge(
		fmt.Sprintf("%s.%s", _meterName, "temperature"),
		metric.WithDescription("Last accepted temperature reading"),
		metric.WithUnit("[degF]"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating temperature gauge: %w", err)
	}

	humidity, err := meter.Float64Gauge(
		fmt.Sprintf("%s.%s", _meterName, "humidity"),
		metric.WithDescription("Last accepted relative humidity reading"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating humidity gauge: %w", err)
	}

	readings, err := meter.Int64Counter(
		fmt.Sprintf("%s.%s", _meterName, "readings.total"),
		metric.WithDescription("Accepted readings by temperature status and humidity advisory"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating readings counter: %w", err)
	}

	feed, err := subscribeReadings(broker, "metrics")
	if err != nil {
		return nil, err
	}

	return &MetricsWorker{
		feed:        feed,
		temperature: temperature,
		humidity:    humidity,
		readings:    readings,
	}, nil
}

var _ async.Worker = &MetricsWorker{}

type MetricsWorker struct {
	feed        readingFeed
	temperature metric.Float64Gauge
	humidity    metric.Float64Gauge
	readings    metric.Int64Counter
}

func (w *MetricsWorker) Run(ctx context.Context, done func()) {
	slog.Debug("metrics worker started")
	defer done()
	w.feed.consume(ctx, w.record)
}

func (w *MetricsWorker) Shutdown() {
	slog.Info("metrics worker shutdown")
}

func (w *MetricsWorker) record(ctx context.Context, evaluation domain.Evaluation) {
	w.temperature.Record(ctx, evaluation.Reading.Temperature)
	w.humidity.Record(ctx, evaluation.Reading.Humidity)
	w.readings.Add(ctx, 1, metric.WithAttributes(
		attribute.String("temperature_status", string(evaluation.Temperature)),
		attribute.String("humidity_advisory", string(evaluation.Humidity)),
		attribute.String("command", evaluation.Command.String()),
	))
}
