package utils

import "time"

const (
	ConflictWindow = time.Hour
	dateOnlyLayout = "2006-01-02"
)

// ConflictWindowBounds returns the half open interval [t-1h, t+1h).
func ConflictWindowBounds(t time.Time) (from, to time.Time) {
	return t.Add(-ConflictWindow), t.Add(ConflictWindow)
}

// ParseFilterDate accepts YYYY-MM-DD or RFC3339. A bare date used as an
// upper bound covers the whole day.
func ParseFilterDate(value string, upperBound bool) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	if upperBound {
		return parsed.Add(24*time.Hour - time.Nanosecond), nil
	}
	return parsed, nil
}
