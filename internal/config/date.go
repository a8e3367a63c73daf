package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	dateEnvVar = "DATEPICKER_DATE"
	dateLayout = "2006-01-02"
)

// ParseDate parses a YYYY-MM-DD civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// StartDate picks the date the picker opens on.
// Priority: 1. flag, 2. DATEPICKER_DATE env var, 3. today.
func StartDate(flagValue string, today time.Time) (time.Time, error) {
	if flagValue != "" {
		return ParseDate(flagValue)
	}
	if env := os.Getenv(dateEnvVar); env != "" {
		t, err := ParseDate(env)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", dateEnvVar, err)
		}
		return t, nil
	}
	return today, nil
}
