package domain

import "errors"

type TemperatureStatus string

const (
	TemperatureHot         TemperatureStatus = "hot"
	TemperatureCold        TemperatureStatus = "cold"
	TemperatureComfortable TemperatureStatus = "comfortable"
)

type HumidityAdvisory string

const (
	HumidityNone HumidityAdvisory = "none"
	HumidityHigh HumidityAdvisory = "high"
	HumidityLow  HumidityAdvisory = "low"
)

// Thresholds are the comparison points used by Evaluate. Comparisons are
// strict: a value equal to a threshold is not beyond it.
type Thresholds struct {
	TempHot      float64
	TempCold     float64
	HumidityHigh float64
	HumidityLow  float64
}

var ErrInvalidThresholds = errors.New("invalid thresholds")

func (t Thresholds) Validate() error {
	if t.TempCold > t.TempHot || t.HumidityLow > t.HumidityHigh {
		return ErrInvalidThresholds
	}
	return nil
}

type Evaluation struct {
	Reading     Reading
	Temperature TemperatureStatus
	Humidity    HumidityAdvisory
	Command     IndicatorCommand
}

// Evaluate classifies a reading. The temperature and humidity checks are
// independent and always both run.
func Evaluate(r Reading, t Thresholds) Evaluation {
	result := Evaluation{
		Reading:     r,
		Temperature: TemperatureComfortable,
		Humidity:    HumidityNone,
		Command:     IndicatorGreen,
	}

	switch {
	case r.Temperature > t.TempHot:
		result.Temperature = TemperatureHot
		result.Command = IndicatorRed
	case r.Temperature < t.TempCold:
		result.Temperature = TemperatureCold
		result.Command = IndicatorBlue
	}

	switch {
	case r.Humidity > t.HumidityHigh:
		result.Humidity = HumidityHigh
	case r.Humidity < t.HumidityLow:
		result.Humidity = HumidityLow
	}

	return result
}

func (e Evaluation) HasAdvisory() bool {
	return e.Humidity != HumidityNone
}
