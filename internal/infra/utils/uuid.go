package utils

import (
	"github.com/google/uuid"
)

func GenerateUUID() string {
	return uuid.NewString()
}

// IsUUID reports whether value parses as a UUID in any accepted form.
func IsUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
