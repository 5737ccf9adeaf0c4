package serial

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"climate-monitor/internal/infra/utils"

	"go.bug.st/serial"
)

const (
	_defaultResetDelay   = 2 * time.Second
	_defaultCommandDelay = 500 * time.Millisecond
	_minimumReadTimeout  = 50 * time.Millisecond
	_readBufferSize      = 256
	_maxLineLength       = 4096
)

var ErrConnectionFailed = errors.New("connection failed")

// Port is the subset of serial.Port the connection relies on.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

type Opener func(name string, mode *serial.Mode) (Port, error)

// SystemOpener opens a real serial device.
func SystemOpener(name string, mode *serial.Mode) (Port, error) {
	return serial.Open(name, mode)
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing serial ports: %w", err)
	}
	return ports, nil
}

type Options struct {
	PortName    string
	BaudRate    int
	ReadTimeout time.Duration
	// ResetDelay lets the board reboot after the port opens.
	ResetDelay time.Duration
	// CommandDelay is waited after the shutdown command before closing.
	CommandDelay time.Duration
	// ShutdownCommand is sent by Disconnect while the link is still open.
	ShutdownCommand string
}

func DefaultOptions(portName string, baudRate int, readTimeout time.Duration) Options {
	return Options{
		PortName:     portName,
		BaudRate:     baudRate,
		ReadTimeout:  readTimeout,
		ResetDelay:   _defaultResetDelay,
		CommandDelay: _defaultCommandDelay,
	}
}

// Connection owns one serial link to the sensor board. It is not safe for
// concurrent use; the monitor loop is its only caller.
type Connection struct {
	opts    Options
	open    Opener
	port    Port
	state   State
	buffer  []byte
	pending []byte
}

func NewConnection(opts Options, open Opener) *Connection {
	if open == nil {
		open = SystemOpener
	}
	if opts.ReadTimeout < _minimumReadTimeout {
		opts.ReadTimeout = _minimumReadTimeout
	}
	return &Connection{
		opts:   opts,
		open:   open,
		state:  StateDisconnected,
		buffer: make([]byte, _readBufferSize),
	}
}

func (c *Connection) State() State {
	return c.state
}

func (c *Connection) IsConnected() bool {
	return c.port != nil
}

func (c *Connection) PortName() string {
	return c.opts.PortName
}

// Connect opens the port and waits for the board to finish resetting. On
// failure the connection stays disconnected.
func (c *Connection) Connect(ctx context.Context) error {
	if c.port != nil {
		return nil
	}

	mode := &serial.Mode{
		BaudRate: c.opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := c.open(c.opts.PortName, mode)
	if err != nil {
		slog.Error("failed to connect to device",
			slog.String("port", c.opts.PortName),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %s: %w", ErrConnectionFailed, c.opts.PortName, err)
	}

	if err := port.SetReadTimeout(c.opts.ReadTimeout); err != nil {
		port.Close()
		return fmt.Errorf("%w: setting read timeout: %w", ErrConnectionFailed, err)
	}

	if err := utils.Sleep(ctx, c.opts.ResetDelay); err != nil {
		port.Close()
		return fmt.Errorf("%w: waiting for device reset: %w", ErrConnectionFailed, err)
	}

	c.port = port
	c.pending = c.pending[:0]
	c.transition(StateConnected)
	slog.Info("connected to device",
		slog.String("port", c.opts.PortName),
		slog.Int("baud_rate", c.opts.BaudRate),
	)
	return nil
}

// Disconnect turns the indicator off and closes the port. It does nothing
// when already disconnected.
func (c *Connection) Disconnect() {
	if c.port == nil {
		return
	}

	if c.opts.ShutdownCommand != "" {
		c.SendCommand(c.opts.ShutdownCommand)
		time.Sleep(c.opts.CommandDelay)
	}

	if err := c.port.Close(); err != nil {
		slog.Error("failed to close serial port", slog.Any("error", err))
	}
	c.port = nil
	c.pending = c.pending[:0]
	c.transition(StateDisconnected)
	slog.Info("disconnected from device", slog.String("port", c.opts.PortName))
}

// SendCommand writes one newline terminated command. Failures are logged and
// dropped; there is no acknowledgement or retry.
func (c *Connection) SendCommand(command string) {
	if c.port == nil {
		slog.Warn("command dropped, device not connected", slog.String("command", command))
		return
	}

	if _, err := c.port.Write([]byte(command + "\n")); err != nil {
		slog.Error("failed to send command",
			slog.String("command", command),
			slog.Any("error", err),
		)
		return
	}
	slog.Debug("sent command", slog.String("command", command))
}

// ReadLine returns the next complete line from the device, waiting at most
// the read timeout for more bytes. Invalid UTF-8 is discarded. It returns
// false when no non-empty line is available; a partial line is kept for the
// next call. A failed read still takes the read timeout, so a dead port is
// polled no faster than an idle one.
func (c *Connection) ReadLine(ctx context.Context) (string, bool) {
	if c.port == nil {
		return "", false
	}
	c.transition(StatePolling)

	for {
		if i := bytes.IndexByte(c.pending, '\n'); i >= 0 {
			raw := string(c.pending[:i])
			c.pending = append(c.pending[:0], c.pending[i+1:]...)
			line := strings.TrimSpace(strings.ToValidUTF8(raw, ""))
			return line, line != ""
		}

		n, err := c.port.Read(c.buffer)
		if err != nil {
			slog.Error("failed to read from serial port", slog.Any("error", err))
			_ = utils.Sleep(ctx, c.opts.ReadTimeout)
			return "", false
		}
		if n == 0 {
			return "", false
		}

		c.pending = append(c.pending, c.buffer[:n]...)
		if len(c.pending) > _maxLineLength && bytes.IndexByte(c.pending, '\n') < 0 {
			slog.Warn("discarding oversized line", slog.Int("bytes", len(c.pending)))
			c.pending = c.pending[:0]
		}
	}
}

func (c *Connection) transition(to State) {
	if c.state == to {
		return
	}
	slog.Debug("serial state changed",
		slog.String("from", c.state.String()),
		slog.String("to", to.String()),
	)
	c.state = to
}
