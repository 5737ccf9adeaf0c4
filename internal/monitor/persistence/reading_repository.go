package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"climate-monitor/internal/infra/sql"
	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/persistence/internal"
	"climate-monitor/internal/monitor/usecases"
)

const _summaryColumns = "count(*) as count, " +
	"coalesce(min(temperature), 0) as temp_min, coalesce(max(temperature), 0) as temp_max, coalesce(avg(temperature), 0) as temp_avg, " +
	"coalesce(min(humidity), 0) as hum_min, coalesce(max(humidity), 0) as hum_max, coalesce(avg(humidity), 0) as hum_avg"

func NewReadingRepository(orm sql.ORM) (*SimpleReadingRepository, error) {
	err := orm.AutoMigrate(&internal.Reading{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating reading: %w", err)
	}

	return &SimpleReadingRepository{
		orm: orm,
	}, nil
}

var _ usecases.ReadingRepository = (*SimpleReadingRepository)(nil)

type SimpleReadingRepository struct {
	orm sql.ORM
}

func (r *SimpleReadingRepository) Save(ctx context.Context, evaluation domain.Evaluation) error {
	entity := internal.FromEvaluation(evaluation)
	err := r.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("creating reading: %w", err)
	}

	return nil
}

func (r *SimpleReadingRepository) FindLatest(ctx context.Context) (domain.Evaluation, error) {
	var entity internal.Reading
	err := r.orm.
		WithContext(ctx).
		Order("recorded_at desc").
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Evaluation{}, usecases.ErrReadingNotFound
	}

	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleReadingRepository) FindRecent(ctx context.Context, limit int) ([]domain.Evaluation, error) {
	var entities internal.ReadingSet
	err := r.orm.
		WithContext(ctx).
		Order("recorded_at desc").
		Limit(limit).
		Find(&entities).
		Error()

	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	return entities.ToDomain(), nil
}

func (r *SimpleReadingRepository) Summarize(ctx context.Context, since time.Time) (domain.Summary, error) {
	var row internal.Summary
	err := r.orm.
		WithContext(ctx).
		Model(&internal.Reading{}).
		Select(_summaryColumns).
		Where("recorded_at >= ?", since).
		Scan(&row).
		Error()

	if err != nil {
		return domain.Summary{}, fmt.Errorf("database query: %w", err)
	}

	return domain.Summary{
		Since:   since,
		Until:   time.Now(),
		Count:   row.Count,
		TempMin: row.TempMin,
		TempMax: row.TempMax,
		TempAvg: row.TempAvg,
		HumMin:  row.HumMin,
		HumMax:  row.HumMax,
		HumAvg:  row.HumAvg,
	}, nil
}
