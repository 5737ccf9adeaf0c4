package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/monitor/domain"
)

type evaluationHandler func(ctx context.Context, evaluation domain.Evaluation)

// readingFeed is a subscription to the readings topic taken when a worker is
// built. Readings published before the worker goroutine starts wait in it.
type readingFeed struct {
	broker       async.InternalBroker
	subscription async.Subscription
	worker       string
}

func subscribeReadings(broker async.InternalBroker, worker string) (readingFeed, error) {
	subscription, err := broker.Subscribe(ReadingsTopic)
	if err != nil {
		return readingFeed{}, fmt.Errorf("%s worker subscribing to %s: %w", worker, ReadingsTopic, err)
	}
	return readingFeed{broker: broker, subscription: subscription, worker: worker}, nil
}

// consume feeds every accepted evaluation to handle until ctx is cancelled
// or the broker stops, then releases the subscription.
func (f readingFeed) consume(ctx context.Context, handle evaluationHandler) {
	defer func() {
		if err := f.broker.Unsubscribe(ReadingsTopic, f.subscription); err != nil {
			slog.Error("failed to unsubscribe from topic",
				slog.String("worker", f.worker),
				slog.String("topic", string(ReadingsTopic)),
				slog.Any("error", err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker cancelled", slog.String("worker", f.worker))
			return
		case msg, ok := <-f.subscription.Receiver:
			if !ok {
				return
			}
			if msg.Event != EventReadingAccepted {
				continue
			}
			evaluation, ok := msg.Value.(domain.Evaluation)
			if !ok {
				slog.Warn("unexpected message value",
					slog.String("worker", f.worker),
					slog.String("event", msg.Event))
				continue
			}
			handle(ctx, evaluation)
		}
	}
}
