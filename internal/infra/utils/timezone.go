package utils

import (
	"fmt"
	"strings"
	"time"
)

// ValidateTimezone checks that timezone is an IANA name (or "Local").
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("timezone cannot be empty")
	}

	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}

	return nil
}

func IsValidTimezone(timezone string) bool {
	return ValidateTimezone(timezone) == nil
}

// CronInTimezone pins a cron expression to timezone using the CRON_TZ
// prefix. Expressions that already carry a zone, and empty or "Local"
// timezones, are returned unchanged.
func CronInTimezone(schedule, timezone string) string {
	schedule = strings.TrimSpace(schedule)
	if timezone == "" || timezone == "Local" ||
		strings.HasPrefix(schedule, "CRON_TZ=") || strings.HasPrefix(schedule, "TZ=") {
		return schedule
	}
	return fmt.Sprintf("CRON_TZ=%s %s", timezone, schedule)
}
