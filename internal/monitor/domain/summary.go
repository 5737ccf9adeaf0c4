package domain

import "time"

// Summary aggregates the readings stored over a window.
type Summary struct {
	Since time.Time
	Until time.Time
	Count int64

	TempMin float64
	TempMax float64
	TempAvg float64
	HumMin  float64
	HumMax  float64
	HumAvg  float64
}

func (s Summary) IsEmpty() bool {
	return s.Count == 0
}
