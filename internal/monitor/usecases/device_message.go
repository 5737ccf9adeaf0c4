package usecases

import "strings"

type deviceMessageKind string

const (
	deviceMessageStatus  deviceMessageKind = "status"
	deviceMessageAck     deviceMessageKind = "ack"
	deviceMessageFailure deviceMessageKind = "failure"
	deviceMessageOther   deviceMessageKind = "other"
)

// classifyDeviceMessage sorts the lines the firmware prints besides readings:
// "DHT11 Sensor Started", "Red LED ON", "ERROR: Failed to read sensor" and
// "Unknown command: LED_OFF".
func classifyDeviceMessage(line string) deviceMessageKind {
	switch {
	case strings.HasPrefix(line, "ERROR"), strings.HasPrefix(line, "Unknown command"):
		return deviceMessageFailure
	case strings.HasSuffix(line, "LED ON"):
		return deviceMessageAck
	case strings.Contains(line, "Started"):
		return deviceMessageStatus
	default:
		return deviceMessageOther
	}
}
