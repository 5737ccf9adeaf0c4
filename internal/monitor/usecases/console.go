package usecases

import (
	"fmt"
	"io"
	"strings"

	"climate-monitor/internal/monitor/domain"
)

var separator = strings.Repeat("-", 50)

func printEvaluation(w io.Writer, e domain.Evaluation) {
	fmt.Fprintf(w, "🌡️  Temperature: %.1f°F\n", e.Reading.Temperature)
	fmt.Fprintf(w, "💧 Humidity: %.1f%%\n", e.Reading.Humidity)

	switch e.Temperature {
	case domain.TemperatureHot:
		fmt.Fprintln(w, "   → 🔥 It's HOT! Fan should be ON")
	case domain.TemperatureCold:
		fmt.Fprintln(w, "   → ❄️  It's COLD! Heater should be ON")
	default:
		fmt.Fprintln(w, "   → ✓ Temperature is comfortable")
	}

	switch e.Humidity {
	case domain.HumidityHigh:
		fmt.Fprintln(w, "   → 💦 High humidity - consider dehumidifier")
	case domain.HumidityLow:
		fmt.Fprintln(w, "   → 🏜️  Low humidity - consider humidifier")
	}

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w)
}
