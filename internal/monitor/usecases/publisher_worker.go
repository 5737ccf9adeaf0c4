package usecases

import (
	"context"
	"log/slog"

	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/monitor/domain"
)

func NewPublisherWorker(broker async.InternalBroker, publisher EvaluationPublisher) (*PublisherWorker, error) {
	feed, err := subscribeReadings(broker, "publisher")
	if err != nil {
		return nil, err
	}

	return &PublisherWorker{
		feed:      feed,
		publisher: publisher,
	}, nil
}

var _ async.Worker = &PublisherWorker{}

// PublisherWorker forwards accepted evaluations to an external publisher.
type PublisherWorker struct {
	feed      readingFeed
	publisher EvaluationPublisher
}

func (w *PublisherWorker) Run(ctx context.Context, done func()) {
	slog.Debug("publisher worker started")
	defer done()
	w.feed.consume(ctx, w.forward)
}

func (w *PublisherWorker) Shutdown() {
	slog.Info("publisher worker shutdown")
}

func (w *PublisherWorker) forward(ctx context.Context, evaluation domain.Evaluation) {
	if err := w.publisher.Publish(ctx, evaluation); err != nil {
		slog.Error("publishing evaluation",
			slog.String("reading_id", evaluation.Reading.ID.String()),
			slog.Any("error", err))
	}
}
