package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"climate-monitor/internal/infra/cache"
	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/usecases"
)

const DefaultReadingCacheTTL = 2 * time.Second

func NewCachedReadingRepository(repository usecases.ReadingRepository, store cache.Cache, ttl time.Duration) *CachedReadingRepository {
	if ttl <= 0 {
		ttl = DefaultReadingCacheTTL
	}
	slog.Info("reading cache initialized", slog.Duration("ttl", ttl))
	return &CachedReadingRepository{
		repository: repository,
		cache:      store,
		ttl:        ttl,
	}
}

var _ usecases.ReadingRepository = (*CachedReadingRepository)(nil)

// CachedReadingRepository serves the read paths from cache. Every Save moves
// to a new key generation, so cached queries never outlive a write made
// through this repository.
type CachedReadingRepository struct {
	repository usecases.ReadingRepository
	cache      cache.Cache
	ttl        time.Duration
	generation atomic.Uint64
}

func (r *CachedReadingRepository) Save(ctx context.Context, evaluation domain.Evaluation) error {
	defer r.generation.Add(1)
	return r.repository.Save(ctx, evaluation)
}

func (r *CachedReadingRepository) FindLatest(ctx context.Context) (domain.Evaluation, error) {
	value, err := r.cache.GetOrSet(ctx, r.key("latest"), r.ttl, func() (any, error) {
		return r.repository.FindLatest(ctx)
	})
	if err != nil {
		return domain.Evaluation{}, err
	}
	return value.(domain.Evaluation), nil
}

func (r *CachedReadingRepository) FindRecent(ctx context.Context, limit int) ([]domain.Evaluation, error) {
	value, err := r.cache.GetOrSet(ctx, r.key(fmt.Sprintf("recent:%d", limit)), r.ttl, func() (any, error) {
		return r.repository.FindRecent(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Evaluation), nil
}

// Summarize is never cached; reports run rarely and cover moving windows.
func (r *CachedReadingRepository) Summarize(ctx context.Context, since time.Time) (domain.Summary, error) {
	return r.repository.Summarize(ctx, since)
}

func (r *CachedReadingRepository) key(query string) string {
	return fmt.Sprintf("readings:%d:%s", r.generation.Load(), query)
}
