package wire

import (
	"fmt"
	"log/slog"
	"time"

	"climate-monitor/cmd/config"
	"climate-monitor/internal/infra/cache"
	"climate-monitor/internal/infra/mqtt"
	"climate-monitor/internal/infra/node"
	"climate-monitor/internal/infra/serial"
	"climate-monitor/internal/infra/sql"
	"climate-monitor/internal/infra/utils"
	"climate-monitor/internal/monitor/communication"
	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/persistence"
	"climate-monitor/internal/monitor/usecases"
)

const _reportTickPeriod = 30 * time.Second

func provideSerialOptions(cfg config.AppConfig) serial.Options {
	opts := serial.DefaultOptions(cfg.ArduinoPort, cfg.BaudRate, cfg.SerialTimeoutDuration())
	opts.ShutdownCommand = domain.IndicatorOff.String()
	return opts
}

func provideSerialOpener() serial.Opener {
	return serial.SystemOpener
}

func provideSettings(cfg config.AppConfig) usecases.Settings {
	return usecases.Settings{
		Thresholds: cfg.Thresholds(),
		Ranges:     cfg.Ranges(),
		Interval:   cfg.ReadingIntervalDuration(),
	}
}

func provideReadingLog(cfg config.AppConfig) (*persistence.CSVReadingLog, func()) {
	readingLog := persistence.NewCSVReadingLog(cfg.LogFile)
	return readingLog, func() {
		if err := readingLog.Close(); err != nil {
			slog.Error("closing reading log", slog.Any("error", err))
		}
	}
}

func provideDatabase(cfg config.AppConfig) (sql.ORM, func(), error) {
	orm, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	return orm, func() {
		if err := orm.Close(); err != nil {
			slog.Error("closing database", slog.Any("error", err))
		}
	}, nil
}

func provideReadingCache() (cache.Cache, func(), error) {
	store, err := cache.New(cache.DefaultConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("creating reading cache: %w", err)
	}
	return store, store.Close, nil
}

func provideCachedReadingRepository(repository *persistence.SimpleReadingRepository, store cache.Cache) *persistence.CachedReadingRepository {
	return persistence.NewCachedReadingRepository(repository, store, persistence.DefaultReadingCacheTTL)
}

func provideReportTicker() *time.Ticker {
	return time.NewTicker(_reportTickPeriod)
}

func provideReportSchedule(cfg config.AppConfig) string {
	return utils.CronInTimezone(cfg.Report.Schedule, cfg.Report.Timezone)
}

func provideMQTTClient(cfg config.AppConfig) (mqtt.Client, func(), error) {
	encoder, err := mqtt.NewEncoder(cfg.MQTT.Encoding)
	if err != nil {
		return nil, nil, err
	}

	client, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
		Broker:   cfg.MQTT.Broker,
		ClientID: cfg.MQTT.ClientID,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password, //pragma: allowlist secret
		Encoder:  encoder,
	})
	if err != nil {
		return nil, nil, err
	}

	return client, client.Disconnect, nil
}

func provideEvaluationPublisher(cfg config.AppConfig, client mqtt.Client) *communication.EvaluationPublisher {
	return communication.NewEvaluationPublisher(client, cfg.MQTT.Topic, node.GetNodeInfo().ID)
}

func provideAllowedOrigins(cfg config.AppConfig) []string {
	return cfg.HTTP.AllowedOrigins
}
