// Package parser extracts temperature and humidity values from the text
// lines printed by the sensor firmware:
//
//	Temperature: 72.50 °F, Humidity: 45.00%
//
// Unit text is stripped, not validated. The firmware source is saved as
// UTF-8 but its degree sign reaches the wire double encoded ("Â°"), so both
// spellings are accepted. Any other unit marker is left in place and the
// value fails numeric conversion.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	readingTag       = "Temperature:"
	temperatureLabel = "temperature"
	humidityLabel    = "humidity"
)

var (
	ErrMalformedLine   = errors.New("malformed sensor line")
	ErrNonNumericValue = errors.New("non-numeric sensor value")
)

// Longest first so that "Â°F" is not reduced to "Â°".
var (
	temperatureSuffixes = []string{"Â°F", "Â°C", "°F", "°C", "F", "C"}
	humiditySuffixes    = []string{"%"}
)

// Result carries the parsed values, or the reason the line was rejected.
type Result struct {
	Temperature float64
	Humidity    float64
	Err         error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// IsReadingLine reports whether the line carries the reading tag.
func IsReadingLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), readingTag)
}

// ParseLine extracts the (temperature, humidity) pair from one line. On
// failure both values are zero and Err wraps ErrMalformedLine or
// ErrNonNumericValue.
func ParseLine(line string) Result {
	tempSegment, humSegment, ok := strings.Cut(line, ",")
	if !ok {
		return failure(fmt.Errorf("%w: missing comma", ErrMalformedLine))
	}

	tempText, err := segmentValue(tempSegment, temperatureLabel)
	if err != nil {
		return failure(err)
	}
	humText, err := segmentValue(humSegment, humidityLabel)
	if err != nil {
		return failure(err)
	}

	temperature, err := parseNumber(tempText, temperatureSuffixes)
	if err != nil {
		return failure(fmt.Errorf("temperature: %w", err))
	}
	humidity, err := parseNumber(humText, humiditySuffixes)
	if err != nil {
		return failure(fmt.Errorf("humidity: %w", err))
	}

	return Result{Temperature: temperature, Humidity: humidity}
}

func failure(err error) Result {
	return Result{Err: err}
}

func segmentValue(segment, label string) (string, error) {
	name, value, ok := strings.Cut(segment, ":")
	if !ok {
		return "", fmt.Errorf("%w: missing colon in %q", ErrMalformedLine, strings.TrimSpace(segment))
	}
	if !strings.EqualFold(strings.TrimSpace(name), label) {
		return "", fmt.Errorf("%w: expected %s, got %q", ErrMalformedLine, label, strings.TrimSpace(name))
	}
	return strings.TrimSpace(value), nil
}

func parseNumber(text string, suffixes []string) (float64, error) {
	for _, suffix := range suffixes {
		if trimmed, found := strings.CutSuffix(text, suffix); found {
			text = strings.TrimSpace(trimmed)
			break
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonNumericValue, text)
	}
	return value, nil
}
