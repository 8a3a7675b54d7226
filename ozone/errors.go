package ozone

import (
	"errors"
	"fmt"
)

// ErrInput is wrapped by every error caused by inconsistent input shapes.
var ErrInput = errors.New("ozone: invalid input")

// TimestampParseError reports timestamp text that could not be parsed.
type TimestampParseError struct {
	Value string
	Err   error
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("ozone: parse timestamp %q: %v", e.Value, e.Err)
}

func (e *TimestampParseError) Unwrap() error {
	return e.Err
}

func inputErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInput}, args...)...)
}
