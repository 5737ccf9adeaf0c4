package usecases

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	_resultAccepted   = "accepted"
	_resultOutOfRange = "out_of_range"
	_resultUnparsed   = "unparsed"

	_reasonMalformed  = "malformed"
	_reasonNonNumeric = "non_numeric"
)

// LoopMetrics counts what the monitor loop does with each line.
type LoopMetrics struct {
	readings      *prometheus.CounterVec
	parseFailures *prometheus.CounterVec
	commands      *prometheus.CounterVec
	deviceLines   *prometheus.CounterVec
}

func NewLoopMetrics(registerer prometheus.Registerer) (*LoopMetrics, error) {
	readings, err := register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "climate_monitor",
		Name:      "readings_total",
		Help:      "Sensor lines handled by the monitor loop, by outcome.",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	parseFailures, err := register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "climate_monitor",
		Name:      "parse_failures_total",
		Help:      "Tagged lines that could not be parsed, by reason.",
	}, []string{"reason"}))
	if err != nil {
		return nil, err
	}

	commands, err := register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "climate_monitor",
		Name:      "indicator_commands_total",
		Help:      "Indicator commands written to the device.",
	}, []string{"command"}))
	if err != nil {
		return nil, err
	}

	deviceLines, err := register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "climate_monitor",
		Name:      "device_messages_total",
		Help:      "Untagged lines printed by the device firmware, by kind.",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}

	return &LoopMetrics{
		readings:      readings,
		parseFailures: parseFailures,
		commands:      commands,
		deviceLines:   deviceLines,
	}, nil
}

func register(registerer prometheus.Registerer, collector *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return collector, nil
}
