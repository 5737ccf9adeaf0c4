package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/infra/utils"
	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/parser"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Settings are the parts of the configuration the loop reads.
type Settings struct {
	Thresholds domain.Thresholds
	Ranges     domain.ValidRanges
	Interval   time.Duration
}

func NewMonitor(
	settings Settings,
	device DeviceLink,
	readingLog ReadingLog,
	broker async.InternalBroker,
	metrics *LoopMetrics,
	console io.Writer,
) *Monitor {
	return &Monitor{
		settings:   settings,
		device:     device,
		readingLog: readingLog,
		broker:     broker,
		metrics:    metrics,
		console:    console,
	}
}

var _ async.Worker = &Monitor{}

// Monitor is the polling loop. It owns the device link: nothing else reads
// from or writes to it while Run is active.
type Monitor struct {
	settings   Settings
	device     DeviceLink
	readingLog ReadingLog
	broker     async.InternalBroker
	metrics    *LoopMetrics
	console    io.Writer
}

// Run polls the device until ctx is cancelled and then disconnects it.
func (m *Monitor) Run(ctx context.Context, done func()) {
	slog.Debug("monitor loop started")
	defer done()
	defer m.stop()

	for ctx.Err() == nil {
		line, ok := m.device.ReadLine(ctx)
		if !ok {
			continue
		}

		if _, accepted := m.HandleLine(ctx, line); !accepted {
			continue
		}

		if err := utils.Sleep(ctx, m.settings.Interval); err != nil {
			return
		}
	}
}

func (m *Monitor) Shutdown() {
	slog.Info("monitor shutdown")
}

func (m *Monitor) stop() {
	fmt.Fprintln(m.console)
	fmt.Fprintln(m.console, "Stopping monitor...")
	m.device.Disconnect()
	fmt.Fprintln(m.console, "✓ Disconnected from Arduino")
}

// HandleLine runs one line through parse, validation, evaluation and the
// sinks. It reports whether the line produced an accepted reading.
func (m *Monitor) HandleLine(ctx context.Context, line string) (domain.Evaluation, bool) {
	if !parser.IsReadingLine(line) {
		m.handleDeviceMessage(line)
		return domain.Evaluation{}, false
	}

	result := parser.ParseLine(line)
	if !result.OK() {
		slog.Debug("skipping unparsable line",
			slog.String("line", line),
			slog.Any("error", result.Err))
		m.metrics.readings.WithLabelValues(_resultUnparsed).Inc()
		m.metrics.parseFailures.WithLabelValues(failureReason(result.Err)).Inc()
		return domain.Evaluation{}, false
	}

	reading, err := domain.NewReadingBuilder().
		WithTemperature(result.Temperature).
		WithHumidity(result.Humidity).
		Build()
	if err != nil {
		slog.Debug("skipping unusable reading", slog.String("line", line), slog.Any("error", err))
		m.metrics.readings.WithLabelValues(_resultUnparsed).Inc()
		return domain.Evaluation{}, false
	}

	if !reading.IsValid(m.settings.Ranges) {
		slog.Warn("reading out of range",
			slog.Float64("temperature", reading.Temperature),
			slog.Float64("humidity", reading.Humidity))
		m.metrics.readings.WithLabelValues(_resultOutOfRange).Inc()
		return domain.Evaluation{}, false
	}

	ctx, span := otel.Tracer("climate-monitor").Start(ctx, "monitor.reading",
		trace.WithAttributes(
			attribute.Float64("reading.temperature", reading.Temperature),
			attribute.Float64("reading.humidity", reading.Humidity),
		),
	)
	defer span.End()

	evaluation := domain.Evaluate(reading, m.settings.Thresholds)
	span.SetAttributes(
		attribute.String("reading.temperature_status", string(evaluation.Temperature)),
		attribute.String("reading.command", evaluation.Command.String()),
	)
	m.metrics.readings.WithLabelValues(_resultAccepted).Inc()

	m.report(evaluation)

	if err := m.readingLog.Append(reading); err != nil {
		slog.Error("appending reading to log", slog.Any("error", err))
	}

	m.device.SendCommand(evaluation.Command.String())
	m.metrics.commands.WithLabelValues(evaluation.Command.String()).Inc()

	m.publish(ctx, evaluation)

	return evaluation, true
}

func (m *Monitor) report(e domain.Evaluation) {
	printEvaluation(m.console, e)

	slog.Info("reading",
		slog.Float64("temperature", e.Reading.Temperature),
		slog.Float64("humidity", e.Reading.Humidity),
		slog.String("status", string(e.Temperature)),
		slog.String("command", e.Command.String()))

	if e.HasAdvisory() {
		slog.Warn("humidity advisory",
			slog.String("advisory", string(e.Humidity)),
			slog.Float64("humidity", e.Reading.Humidity))
	}
}

func (m *Monitor) publish(ctx context.Context, e domain.Evaluation) {
	err := m.broker.Publish(ctx, ReadingsTopic, async.BrokerMessage{
		Event: EventReadingAccepted,
		Value: e,
	})
	switch {
	case errors.Is(err, async.ErrTopicNotFound):
		slog.Debug("no reading subscribers")
	case err != nil:
		slog.Error("publishing reading", slog.Any("error", err))
	}
}

func (m *Monitor) handleDeviceMessage(line string) {
	kind := classifyDeviceMessage(line)
	m.metrics.deviceLines.WithLabelValues(string(kind)).Inc()

	switch kind {
	case deviceMessageFailure:
		slog.Warn("device reported a problem", slog.String("message", line))
	case deviceMessageStatus, deviceMessageAck:
		slog.Info("device status", slog.String("message", line))
	default:
		slog.Debug("received", slog.String("line", line))
	}
}

func failureReason(err error) string {
	if errors.Is(err, parser.ErrNonNumericValue) {
		return _reasonNonNumeric
	}
	return _reasonMalformed
}
