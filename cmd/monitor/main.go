package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"climate-monitor/cmd/config"
	"climate-monitor/cmd/monitor/wire"
	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/infra/httpserver"
	"climate-monitor/internal/infra/node"
	"climate-monitor/internal/infra/serial"
	"climate-monitor/internal/infra/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

type flags struct {
	configPath string
	port       string
	baud       int
	logLevel   string
	saveConfig bool
	listPorts  bool
}

func parseFlags() flags {
	var f flags
	pflag.StringVarP(&f.configPath, "config", "c", config.DefaultPath, "path of the JSON configuration file")
	pflag.StringVarP(&f.port, "port", "p", "", "serial port of the sensor board (overrides arduino_port)")
	pflag.IntVarP(&f.baud, "baud", "b", 0, "serial baud rate (overrides baud_rate)")
	pflag.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (overrides log_level)")
	pflag.BoolVar(&f.saveConfig, "save-config", false, "write the effective configuration to --config and exit")
	pflag.BoolVar(&f.listPorts, "list-ports", false, "list the available serial ports and exit")
	pflag.Parse()
	return f
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	if f.listPorts {
		return listPorts()
	}

	cfg, loadErr := config.Load(f.configPath)
	applyOverrides(&cfg, f)

	closeLog := setupLogger(cfg)
	defer closeLog()

	switch {
	case errors.Is(loadErr, config.ErrConfigNotFound):
		slog.Warn("config file not found, using defaults", slog.String("path", f.configPath))
	case loadErr != nil:
		slog.Error("invalid config file, using defaults", slog.String("path", f.configPath), slog.Any("error", loadErr))
	}
	slog.Debug("config loaded", "data", cfg)

	if f.saveConfig {
		if err := cfg.Save(f.configPath); err != nil {
			slog.Error("saving config", slog.Any("error", err))
			return 1
		}
		slog.Info("config saved", slog.String("path", f.configPath))
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("🚀 climate monitor is initializing")

	if cfg.Telemetry.Enabled {
		shutdownOtel, err := telemetry.Start(ctx, telemetry.Options{
			Endpoint:    cfg.Telemetry.Endpoint,
			ServiceName: "climate-monitor",
			Version:     node.Version,
		})
		if err != nil {
			slog.Error("starting telemetry", slog.Any("error", err))
			return 1
		}
		defer func() {
			if err := shutdownOtel(context.Background()); err != nil {
				slog.Error("shutting down telemetry", slog.Any("error", err))
			}
		}()
	}

	console := os.Stdout
	printBanner(console, cfg.ArduinoPort)

	connection := wire.InitializeSerialConnection(cfg)
	if err := connection.Connect(ctx); err != nil {
		fmt.Fprintln(console)
		fmt.Fprintln(console, "❌ ERROR: Could not connect to Arduino")
		fmt.Fprintf(console, "Port: %s\n", cfg.ArduinoPort)
		return 1
	}

	internalBroker := async.NewLocalBroker()
	defer internalBroker.Stop()

	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	workers, controllers, err := buildSinks(cfg, internalBroker, &cleanups)
	if err != nil {
		slog.Error("initializing sinks", slog.Any("error", err))
		connection.Disconnect()
		return 1
	}

	monitor, cleanupMonitor, err := wire.InitializeMonitor(cfg, connection, internalBroker, prometheus.DefaultRegisterer, console)
	if err != nil {
		slog.Error("initializing monitor", slog.Any("error", err))
		connection.Disconnect()
		return 1
	}
	cleanups = append(cleanups, cleanupMonitor)

	var wg sync.WaitGroup
	for _, worker := range workers {
		wg.Add(1)
		go worker.Run(ctx, wg.Done)
	}

	var httpServer *httpserver.StandardServer
	if cfg.HTTP.Enabled {
		httpServer = httpserver.NewServer(httpserver.Options{
			Address:        cfg.HTTP.Address,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		}, controllers...)
		go httpServer.Run()
	}

	wg.Add(1)
	monitor.Run(ctx, wg.Done)

	fmt.Fprintln(console, strings.Repeat("=", 50))

	if httpServer != nil {
		httpServer.Shutdown()
	}
	for _, worker := range workers {
		worker.Shutdown()
	}
	wg.Wait()

	slog.Info("good bye!!!")
	return 0
}

// buildSinks creates the optional consumers of accepted readings.
func buildSinks(cfg config.AppConfig, broker async.InternalBroker, cleanups *[]func()) ([]async.Worker, []httpserver.Controller, error) {
	var (
		workers     []async.Worker
		controllers []httpserver.Controller
	)

	metricsWorker, err := wire.InitializeMetricsWorker(broker)
	if err != nil {
		return nil, nil, err
	}
	workers = append(workers, metricsWorker)

	if cfg.Database.Driver != "" {
		repository, cleanup, err := wire.InitializeReadingRepository(cfg)
		if err != nil {
			return nil, nil, err
		}
		*cleanups = append(*cleanups, cleanup)

		historyWorker, err := wire.InitializeHistoryWorker(broker, repository)
		if err != nil {
			return nil, nil, err
		}
		workers = append(workers, historyWorker)
		controllers = append(controllers, wire.InitializeReadingController(repository))

		if cfg.Report.Enabled {
			reportWorker, err := wire.InitializeReportWorker(cfg, repository)
			if err != nil {
				return nil, nil, err
			}
			workers = append(workers, reportWorker)
		}
	}

	if cfg.MQTT.Enabled {
		publisherWorker, cleanup, err := wire.InitializePublisherWorker(cfg, broker)
		if err != nil {
			return nil, nil, err
		}
		*cleanups = append(*cleanups, cleanup)
		workers = append(workers, publisherWorker)
	}

	if cfg.HTTP.Enabled {
		streamController, err := wire.InitializeReadingStreamController(cfg, broker)
		if err != nil {
			return nil, nil, err
		}
		workers = append(workers, streamController)
		controllers = append(controllers, streamController)
	}

	return workers, controllers, nil
}

func applyOverrides(cfg *config.AppConfig, f flags) {
	if f.port != "" {
		cfg.ArduinoPort = f.port
	}
	if f.baud > 0 {
		cfg.BaudRate = f.baud
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
}

// setupLogger sends leveled text lines to stdout and the application log
// file. The returned func closes the file.
func setupLogger(cfg config.AppConfig) func() {
	level, ok := logLevelMapping[strings.ToLower(cfg.LogLevel)]
	if !ok {
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	closeFn := func() {}
	if cfg.AppLogFile != "" {
		file, err := os.OpenFile(cfg.AppLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening app log %s: %v\n", cfg.AppLogFile, err)
		} else {
			out = io.MultiWriter(os.Stdout, file)
			closeFn = func() { file.Close() }
		}
	}

	baseHandler := slog.NewTextHandler(out, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	handler := baseHandler.WithAttrs([]slog.Attr{slog.String("version", node.Version)})
	slog.SetDefault(slog.New(handler))
	return closeFn
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

func printBanner(w io.Writer, port string) {
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "Temperature Monitor")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Connecting to Arduino port %s...\n", port)
}

func listPorts() int {
	ports, err := serial.ListPorts()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return 0
	}
	for _, port := range ports {
		fmt.Println(port)
	}
	return 0
}
