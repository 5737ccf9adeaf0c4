package usecases

import (
	"context"
	"errors"
	"time"

	"climate-monitor/internal/monitor/domain"
)

//go:generate mockgen -source=port.go -destination=../../../test/unit/doubles/monitor/usecases/port_mock.go -package=usecases -mock_names=DeviceLink=MockDeviceLink,ReadingLog=MockReadingLog,ReadingRepository=MockReadingRepository,EvaluationPublisher=MockEvaluationPublisher

var (
	ErrReadingNotFound = errors.New("reading not found")
)

// DeviceLink is the serial side of the monitor. Reads never block longer
// than the configured read timeout.
type DeviceLink interface {
	ReadLine(ctx context.Context) (string, bool)
	SendCommand(command string)
	Disconnect()
}

type ReadingLog interface {
	Append(reading domain.Reading) error
}

type ReadingRepository interface {
	Save(ctx context.Context, evaluation domain.Evaluation) error
	FindLatest(ctx context.Context) (domain.Evaluation, error)
	FindRecent(ctx context.Context, limit int) ([]domain.Evaluation, error)
	Summarize(ctx context.Context, since time.Time) (domain.Summary, error)
}

type EvaluationPublisher interface {
	Publish(ctx context.Context, evaluation domain.Evaluation) error
}
