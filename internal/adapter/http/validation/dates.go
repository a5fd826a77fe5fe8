package validation

import (
	"fmt"
	"time"
)

const dateOnly = "2006-01-02"

// ParseDate accepts either a bare date (2006-01-02) or a full RFC3339
// timestamp. Bare dates resolve to midnight UTC.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateOnly, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD or RFC3339", value)
}

// ParseRangeEnd parses an end bound. A bare date is widened to the last
// instant of that day so the bound stays inclusive.
func ParseRangeEnd(value string) (time.Time, error) {
	if t, err := time.Parse(dateOnly, value); err == nil {
		return t.Add(24*time.Hour - time.Nanosecond), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD or RFC3339", value)
}
