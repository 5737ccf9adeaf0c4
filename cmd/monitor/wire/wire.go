//go:build wireinject
// +build wireinject

package wire

import (
	"io"

	"climate-monitor/cmd/config"
	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/infra/serial"
	"climate-monitor/internal/monitor/communication"
	"climate-monitor/internal/monitor/httpapi"
	"climate-monitor/internal/monitor/persistence"
	"climate-monitor/internal/monitor/usecases"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
)

func InitializeSerialConnection(cfg config.AppConfig) *serial.Connection {
	wire.Build(
		provideSerialOptions,
		provideSerialOpener,
		serial.NewConnection,
	)
	return nil
}

func InitializeMonitor(
	cfg config.AppConfig,
	device usecases.DeviceLink,
	broker async.InternalBroker,
	registerer prometheus.Registerer,
	console io.Writer,
) (*usecases.Monitor, func(), error) {
	wire.Build(
		provideSettings,
		provideReadingLog,
		wire.Bind(new(usecases.ReadingLog), new(*persistence.CSVReadingLog)),
		usecases.NewLoopMetrics,
		usecases.NewMonitor,
	)
	return nil, nil, nil
}

func InitializeReadingRepository(cfg config.AppConfig) (usecases.ReadingRepository, func(), error) {
	wire.Build(
		provideDatabase,
		persistence.NewReadingRepository,
		provideReadingCache,
		provideCachedReadingRepository,
		wire.Bind(new(usecases.ReadingRepository), new(*persistence.CachedReadingRepository)),
	)
	return nil, nil, nil
}

func InitializeHistoryWorker(broker async.InternalBroker, repository usecases.ReadingRepository) (*usecases.HistoryWorker, error) {
	wire.Build(
		usecases.NewHistoryWorker,
	)
	return nil, nil
}

func InitializeReportWorker(cfg config.AppConfig, repository usecases.ReadingRepository) (*usecases.ReportWorker, error) {
	wire.Build(
		provideReportTicker,
		provideReportSchedule,
		usecases.NewReportWorker,
	)
	return nil, nil
}

func InitializeMetricsWorker(broker async.InternalBroker) (*usecases.MetricsWorker, error) {
	wire.Build(
		usecases.NewMetricsWorker,
	)
	return nil, nil
}

func InitializePublisherWorker(cfg config.AppConfig, broker async.InternalBroker) (*usecases.PublisherWorker, func(), error) {
	wire.Build(
		provideMQTTClient,
		provideEvaluationPublisher,
		wire.Bind(new(usecases.EvaluationPublisher), new(*communication.EvaluationPublisher)),
		usecases.NewPublisherWorker,
	)
	return nil, nil, nil
}

func InitializeReadingController(repository usecases.ReadingRepository) *httpapi.ReadingController {
	wire.Build(
		usecases.NewReadingService,
		wire.Bind(new(usecases.ReadingService), new(*usecases.SimpleReadingService)),
		httpapi.NewReadingController,
	)
	return nil
}

func InitializeReadingStreamController(cfg config.AppConfig, broker async.InternalBroker) (*httpapi.ReadingStreamController, error) {
	wire.Build(
		provideAllowedOrigins,
		httpapi.NewReadingStreamController,
	)
	return nil, nil
}
