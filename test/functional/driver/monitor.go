package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"climate-monitor/cmd/config"
	"climate-monitor/cmd/monitor/wire"
	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/infra/httpserver"
	"climate-monitor/internal/infra/serial"
	"climate-monitor/internal/infra/sql"
	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/usecases"

	"github.com/prometheus/client_golang/prometheus"
	bugserial "go.bug.st/serial"
)

const _settleTimeout = 5 * time.Second

// MonitorDriver runs the whole monitor in process against a fake board, with
// the reading history and HTTP API enabled.
type MonitorDriver struct {
	Board  *Board
	Config config.AppConfig

	console    *syncBuffer
	broker     *async.LocalBroker
	connection *serial.Connection
	monitor    *usecases.Monitor
	server     *httptest.Server
	client     *http.Client
	cleanups   []func()

	workersCancel context.CancelFunc
	workersWG     sync.WaitGroup
	monitorCancel context.CancelFunc
	monitorWG     sync.WaitGroup
}

func NewMonitorDriver(dir string) *MonitorDriver {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(dir, "temperature_log.csv")
	cfg.AppLogFile = ""
	cfg.ReadingInterval = 0
	cfg.Database.Driver = sql.DriverMemory

	return &MonitorDriver{
		Board:   NewBoard(),
		Config:  cfg,
		console: &syncBuffer{},
		client:  &http.Client{Timeout: 2 * time.Second},
	}
}

// Start connects to the board and starts the loop and the history sinks.
func (d *MonitorDriver) Start() error {
	d.broker = async.NewLocalBroker()

	opts := serial.DefaultOptions("/dev/ttyFAKE0", d.Config.BaudRate, d.Config.SerialTimeoutDuration())
	opts.ResetDelay = 0
	opts.CommandDelay = 0
	opts.ShutdownCommand = domain.IndicatorOff.String()
	d.connection = serial.NewConnection(opts, func(string, *bugserial.Mode) (serial.Port, error) {
		return d.Board, nil
	})
	if err := d.connection.Connect(context.Background()); err != nil {
		return err
	}

	monitor, cleanup, err := wire.InitializeMonitor(d.Config, d.connection, d.broker, prometheus.NewRegistry(), d.console)
	if err != nil {
		return err
	}
	d.monitor = monitor
	d.cleanups = append(d.cleanups, cleanup)

	repository, cleanup, err := wire.InitializeReadingRepository(d.Config)
	if err != nil {
		return err
	}
	d.cleanups = append(d.cleanups, cleanup)

	historyWorker, err := wire.InitializeHistoryWorker(d.broker, repository)
	if err != nil {
		return err
	}
	d.server = httptest.NewServer(httpserver.NewServer(httpserver.Options{Address: ":0"}, wire.InitializeReadingController(repository)).Handler())

	workersCtx, cancel := context.WithCancel(context.Background())
	d.workersCancel = cancel
	d.workersWG.Add(1)
	go historyWorker.Run(workersCtx, d.workersWG.Done)

	monitorCtx, cancel := context.WithCancel(context.Background())
	d.monitorCancel = cancel
	d.monitorWG.Add(1)
	go d.monitor.Run(monitorCtx, d.monitorWG.Done)

	return nil
}

// WaitProcessed waits until the loop consumed everything fed to the board.
func (d *MonitorDriver) WaitProcessed() error {
	if !d.Board.WaitIdle(_settleTimeout) {
		return errors.New("monitor did not consume the board output in time")
	}
	return nil
}

// Interrupt stops the loop the way SIGINT does in production.
func (d *MonitorDriver) Interrupt() {
	if d.monitorCancel == nil {
		return
	}
	d.monitorCancel()
	d.monitorWG.Wait()
	d.monitorCancel = nil
}

func (d *MonitorDriver) Stop() {
	d.Interrupt()
	if d.workersCancel != nil {
		d.workersCancel()
		d.workersWG.Wait()
	}
	if d.server != nil {
		d.server.Close()
	}
	for i := len(d.cleanups) - 1; i >= 0; i-- {
		d.cleanups[i]()
	}
	if d.broker != nil {
		d.broker.Stop()
	}
}

func (d *MonitorDriver) Console() string {
	return d.console.String()
}

// CSVLines returns the CSV log, header included.
func (d *MonitorDriver) CSVLines() ([]string, error) {
	data, err := os.ReadFile(d.Config.LogFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

func (d *MonitorDriver) GetLatestReading() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/readings/latest", d.server.URL))
}

func (d *MonitorDriver) ListReadings(limit int) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/readings?limit=%d", d.server.URL, limit))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
