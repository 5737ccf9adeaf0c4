package communication

import (
	"context"
	"fmt"

	"climate-monitor/internal/infra/mqtt"
	"climate-monitor/internal/monitor/communication/internal"
	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/usecases"
)

// NewEvaluationPublisher publishes evaluations to topic. source names the
// publishing node in every payload.
func NewEvaluationPublisher(client mqtt.Client, topic, source string) *EvaluationPublisher {
	return &EvaluationPublisher{
		client: client,
		topic:  topic,
		source: source,
	}
}

var _ usecases.EvaluationPublisher = (*EvaluationPublisher)(nil)

type EvaluationPublisher struct {
	client mqtt.Client
	topic  string
	source string
}

func (p *EvaluationPublisher) Publish(_ context.Context, evaluation domain.Evaluation) error {
	err := p.client.Publish(p.topic, internal.FromEvaluation(p.source, evaluation))
	if err != nil {
		return fmt.Errorf("publishing to mqtt: %w", err)
	}

	return nil
}
