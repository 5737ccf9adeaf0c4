package internal

import (
	"time"

	"climate-monitor/internal/monitor/domain"
)

type ReadingSet []Reading

func (ReadingSet) TableName() string {
	return "readings"
}

func (s ReadingSet) ToDomain() []domain.Evaluation {
	result := make([]domain.Evaluation, len(s))
	for i, v := range s {
		result[i] = v.ToDomain()
	}

	return result
}

type Reading struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Temperature       float64   `json:"temperature"`
	Humidity          float64   `json:"humidity"`
	TemperatureStatus string    `json:"temperature_status"`
	HumidityAdvisory  string    `json:"humidity_advisory"`
	Command           string    `json:"command"`
	RecordedAt        time.Time `json:"recorded_at" gorm:"index"`
}

func (Reading) TableName() string {
	return "readings"
}

func (r Reading) ToDomain() domain.Evaluation {
	return domain.Evaluation{
		Reading: domain.Reading{
			ID:          domain.ID(r.ID),
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			Timestamp:   r.RecordedAt,
		},
		Temperature: domain.TemperatureStatus(r.TemperatureStatus),
		Humidity:    domain.HumidityAdvisory(r.HumidityAdvisory),
		Command:     domain.IndicatorCommand(r.Command),
	}
}

func FromEvaluation(e domain.Evaluation) Reading {
	return Reading{
		ID:                e.Reading.ID.String(),
		Temperature:       e.Reading.Temperature,
		Humidity:          e.Reading.Humidity,
		TemperatureStatus: string(e.Temperature),
		HumidityAdvisory:  string(e.Humidity),
		Command:           e.Command.String(),
		RecordedAt:        e.Reading.Timestamp,
	}
}

// Summary is the row produced by the aggregate query.
type Summary struct {
	Count   int64
	TempMin float64
	TempMax float64
	TempAvg float64
	HumMin  float64
	HumMax  float64
	HumAvg  float64
}
