package domain

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"climate-monitor/internal/infra/utils"
)

const TimestampLayout = "2006-01-02 15:04:05"

// Reading is one parsed temperature/humidity sample. It is never mutated
// after Build.
type Reading struct {
	ID          ID
	Temperature float64
	Humidity    float64
	Timestamp   time.Time
}

// ValidRanges bounds the values a sensor can physically report. Both ends
// are inclusive.
type ValidRanges struct {
	TempMin float64
	TempMax float64
	HumMin  float64
	HumMax  float64
}

var (
	ErrInvalidRanges = errors.New("invalid ranges")
	ErrNotANumber    = errors.New("reading value is not a number")
)

func (r ValidRanges) Validate() error {
	if r.TempMin > r.TempMax || r.HumMin > r.HumMax {
		return ErrInvalidRanges
	}
	return nil
}

// IsValid reports whether both values fall inside the ranges.
func (r Reading) IsValid(ranges ValidRanges) bool {
	return ranges.TempMin <= r.Temperature && r.Temperature <= ranges.TempMax &&
		ranges.HumMin <= r.Humidity && r.Humidity <= ranges.HumMax
}

type readingJSON struct {
	ID          string  `json:"id,omitempty"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Timestamp   string  `json:"timestamp"`
}

func (r Reading) MarshalJSON() ([]byte, error) {
	return json.Marshal(readingJSON{
		ID:          r.ID.String(),
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Timestamp:   r.Timestamp.Format(TimestampLayout),
	})
}

func NewReadingBuilder() *readingBuilder {
	return &readingBuilder{}
}

type readingBuilder struct {
	actions []readingHandler
}

type readingHandler func(v *Reading) error

func (b *readingBuilder) WithTemperature(value float64) *readingBuilder {
	b.actions = append(b.actions, func(d *Reading) error {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return ErrNotANumber
		}
		d.Temperature = value
		return nil
	})
	return b
}

func (b *readingBuilder) WithHumidity(value float64) *readingBuilder {
	b.actions = append(b.actions, func(d *Reading) error {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return ErrNotANumber
		}
		d.Humidity = value
		return nil
	})
	return b
}

// WithTimestamp overrides the capture time. A zero value keeps the default.
func (b *readingBuilder) WithTimestamp(value time.Time) *readingBuilder {
	b.actions = append(b.actions, func(d *Reading) error {
		if !value.IsZero() {
			d.Timestamp = value
		}
		return nil
	})
	return b
}

func (b *readingBuilder) Build() (Reading, error) {
	result := Reading{
		ID:        ID(utils.GenerateUUID()),
		Timestamp: time.Now(),
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Reading{}, err
		}
	}
	return result, nil
}
