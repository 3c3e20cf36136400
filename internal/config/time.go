package config

import (
	"fmt"
	"strings"
	"time"
)

// ParseLogTime parses a timestamp as written by evaluation harnesses in
// their log headers. These are ISO 8601 with minor variations: with or
// without fractional seconds, and with or without a timezone offset.
// Offset-free values are taken as local time, matching how the harness
// records them.
func ParseLogTime(s string) (time.Time, error) {
	input := strings.TrimSpace(s)
	if input == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp: %s", input)
}
