package internal

import (
	"climate-monitor/internal/monitor/domain"
)

type Evaluation struct {
	ID                string  `json:"id" msgpack:"id"`
	Source            string  `json:"source" msgpack:"source"`
	Temperature       float64 `json:"temperature" msgpack:"temperature"`
	Humidity          float64 `json:"humidity" msgpack:"humidity"`
	Timestamp         string  `json:"timestamp" msgpack:"timestamp"`
	TemperatureStatus string  `json:"temperature_status" msgpack:"temperature_status"`
	HumidityAdvisory  string  `json:"humidity_advisory" msgpack:"humidity_advisory"`
	Command           string  `json:"command" msgpack:"command"`
}

func FromEvaluation(source string, e domain.Evaluation) Evaluation {
	return Evaluation{
		ID:                e.Reading.ID.String(),
		Source:            source,
		Temperature:       e.Reading.Temperature,
		Humidity:          e.Reading.Humidity,
		Timestamp:         e.Reading.Timestamp.Format(domain.TimestampLayout),
		TemperatureStatus: string(e.Temperature),
		HumidityAdvisory:  string(e.Humidity),
		Command:           e.Command.String(),
	}
}
