package utils

import (
	"time"

	"github.com/google/uuid"
)

func IsValidInterval(interval string) bool {
	switch interval {
	case "Minute", "Hour", "Day", "Week", "Month", "Quarter", "Year":
		return true
	default:
		return false
	}
}

// IsValidUUID reports whether s parses as a UUID. Session and audit ids
// are checked with this before any insert happens.
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseTimeRange resolves optional RFC3339 start/end query parameters,
// defaulting to the last seven days.
func ParseTimeRange(startParam, endParam string) (time.Time, time.Time, error) {
	start := time.Now().UTC().Add(-7 * 24 * time.Hour)
	end := time.Now().UTC()

	if startParam != "" {
		parsed, err := time.Parse(time.RFC3339, startParam)
		if err != nil {
			return start, end, err
		}
		start = parsed
	}
	if endParam != "" {
		parsed, err := time.Parse(time.RFC3339, endParam)
		if err != nil {
			return start, end, err
		}
		end = parsed
	}

	return start, end, nil
}
