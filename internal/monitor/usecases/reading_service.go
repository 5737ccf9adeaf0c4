package usecases

import (
	"context"
	"fmt"

	"climate-monitor/internal/monitor/domain"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 500
)

func NewReadingService(repository ReadingRepository) *SimpleReadingService {
	return &SimpleReadingService{repository: repository}
}

var _ ReadingService = (*SimpleReadingService)(nil)

type SimpleReadingService struct {
	repository ReadingRepository
}

func (s *SimpleReadingService) Latest(ctx context.Context) (domain.Evaluation, error) {
	evaluation, err := s.repository.FindLatest(ctx)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("finding latest reading: %w", err)
	}
	return evaluation, nil
}

// Recent returns the newest readings first. Limits outside 1..MaxRecentLimit
// are clamped; zero or less selects DefaultRecentLimit.
func (s *SimpleReadingService) Recent(ctx context.Context, limit int) ([]domain.Evaluation, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}

	evaluations, err := s.repository.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("finding recent readings: %w", err)
	}
	return evaluations, nil
}
