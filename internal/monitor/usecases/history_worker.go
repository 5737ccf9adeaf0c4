package usecases

import (
	"context"
	"log/slog"

	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/monitor/domain"
)

func NewHistoryWorker(broker async.InternalBroker, repository ReadingRepository) (*HistoryWorker, error) {
	feed, err := subscribeReadings(broker, "history")
	if err != nil {
		return nil, err
	}

	return &HistoryWorker{
		feed:       feed,
		repository: repository,
	}, nil
}

var _ async.Worker = &HistoryWorker{}

// HistoryWorker stores every accepted evaluation in the reading repository.
type HistoryWorker struct {
	feed       readingFeed
	repository ReadingRepository
}

func (w *HistoryWorker) Run(ctx context.Context, done func()) {
	slog.Debug("history worker started")
	defer done()
	w.feed.consume(ctx, w.store)
}

func (w *HistoryWorker) Shutdown() {
	slog.Info("history worker shutdown")
}

func (w *HistoryWorker) store(ctx context.Context, evaluation domain.Evaluation) {
	if err := w.repository.Save(ctx, evaluation); err != nil {
		slog.Error("saving reading",
			slog.String("reading_id", evaluation.Reading.ID.String()),
			slog.Any("error", err))
	}
}
