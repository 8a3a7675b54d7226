package ozone

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var errEmptyTimestamp = errors.New("empty timestamp")

// ParseTimestamp parses free-form date/time text. Text without a zone is read
// as UTC. Failures are returned as *TimestampParseError.
func ParseTimestamp(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, &TimestampParseError{Value: s, Err: errEmptyTimestamp}
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, &TimestampParseError{Value: s, Err: err}
	}
	return t, nil
}

// DayOfYear returns the ordinal day of t within its year, in [1, 366].
func DayOfYear(t time.Time) int {
	return t.YearDay()
}
