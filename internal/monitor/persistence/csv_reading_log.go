package persistence

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/usecases"
)

var csvHeader = []string{"timestamp", "temperature", "humidity"}

func NewCSVReadingLog(path string) *CSVReadingLog {
	return &CSVReadingLog{path: path}
}

var _ usecases.ReadingLog = (*CSVReadingLog)(nil)

// CSVReadingLog appends one row per accepted reading:
//
//	timestamp,temperature,humidity
//
// The header is written once, when the file is empty. The file is opened on
// the first Append and every row is flushed immediately.
type CSVReadingLog struct {
	path string

	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

func (l *CSVReadingLog) Append(reading domain.Reading) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		if err := l.open(); err != nil {
			return err
		}
	}

	err := l.writer.Write([]string{
		reading.Timestamp.Format(domain.TimestampLayout),
		formatValue(reading.Temperature),
		formatValue(reading.Humidity),
	})
	if err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}

	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", l.path, err)
	}
	return nil
}

func (l *CSVReadingLog) open() error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", l.path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat %s: %w", l.path, err)
	}

	writer := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := writer.Write(csvHeader); err != nil {
			f.Close()
			return fmt.Errorf("writing csv header: %w", err)
		}
	}

	l.file = f
	l.writer = writer
	return nil
}

func (l *CSVReadingLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	l.writer.Flush()
	err := l.file.Close()
	l.file = nil
	l.writer = nil
	return err
}

// formatValue keeps at least one decimal so whole numbers read 82.0.
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
