package usecases

import "climate-monitor/internal/infra/async"

const (
	ReadingsTopic async.BrokerTopicName = "readings"

	EventReadingAccepted = "reading_accepted"
)
