package internal

import "climate-monitor/internal/monitor/domain"

type Reading struct {
	ID                string  `json:"id"`
	Temperature       float64 `json:"temperature"`
	Humidity          float64 `json:"humidity"`
	Timestamp         string  `json:"timestamp"`
	TemperatureStatus string  `json:"temperature_status"`
	HumidityAdvisory  string  `json:"humidity_advisory"`
	Command           string  `json:"command"`
}

type ReadingListResponse struct {
	Data []Reading `json:"data"`
}

// ReadingMessage is one frame of the live stream.
type ReadingMessage struct {
	Type string  `json:"type"`
	Data Reading `json:"data"`
}

func FromEvaluation(e domain.Evaluation) Reading {
	return Reading{
		ID:                e.Reading.ID.String(),
		Temperature:       e.Reading.Temperature,
		Humidity:          e.Reading.Humidity,
		Timestamp:         e.Reading.Timestamp.Format(domain.TimestampLayout),
		TemperatureStatus: string(e.Temperature),
		HumidityAdvisory:  string(e.Humidity),
		Command:           e.Command.String(),
	}
}

func FromEvaluations(evaluations []domain.Evaluation) ReadingListResponse {
	data := make([]Reading, len(evaluations))
	for i, e := range evaluations {
		data[i] = FromEvaluation(e)
	}
	return ReadingListResponse{Data: data}
}
