package usecases

import (
	"context"

	"climate-monitor/internal/monitor/domain"
)

//go:generate mockgen -source=./api.go -destination=../../../test/unit/doubles/monitor/usecases/api_mock.go -package=usecases -mock_names=ReadingService=MockReadingService

type ReadingService interface {
	Latest(ctx context.Context) (domain.Evaluation, error)
	Recent(ctx context.Context, limit int) ([]domain.Evaluation, error)
}
