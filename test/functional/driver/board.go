package driver

import (
	"strings"
	"sync"
	"time"
)

// Board stands in for the sensor firmware on the other end of the serial
// link. Lines fed to it are read by the monitor; commands written by the
// monitor are recorded.
type Board struct {
	mu          sync.Mutex
	pending     []byte
	written     strings.Builder
	idleReads   int
	closed      bool
	readTimeout time.Duration
}

func NewBoard() *Board {
	return &Board{readTimeout: 5 * time.Millisecond}
}

func (b *Board) Feed(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, []byte(line+"\r\n")...)
	b.idleReads = 0
}

// Read returns queued bytes or waits out the read timeout like a real port.
func (b *Board) Read(p []byte) (int, error) {
	b.mu.Lock()
	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		b.mu.Unlock()
		return n, nil
	}
	b.idleReads++
	timeout := b.readTimeout
	b.mu.Unlock()

	time.Sleep(timeout)
	return 0, nil
}

func (b *Board) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.written.Write(p)
}

func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *Board) SetReadTimeout(time.Duration) error {
	return nil
}

// WaitIdle blocks until every fed line was consumed and the reader came back
// for more.
func (b *Board) WaitIdle(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		b.mu.Lock()
		idle := len(b.pending) == 0 && b.idleReads > 0
		b.mu.Unlock()
		if idle {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return false
}

// Commands returns the newline separated commands received so far.
func (b *Board) Commands() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Fields(b.written.String())
}

func (b *Board) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
