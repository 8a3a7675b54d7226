package ozone

import (
	"slices"
	"time"
)

// Location is a latitude or longitude argument: either a single degree value
// or an ordered series of them.
type Location struct {
	values []float64
	scalar bool
}

// Scalar wraps a single degree value.
func Scalar(deg float64) Location {
	return Location{values: []float64{deg}, scalar: true}
}

// Series wraps an ordered sequence of degree values. The slice is copied.
func Series(deg ...float64) Location {
	return Location{values: slices.Clone(deg)}
}

// Len returns the number of values after scalar normalization.
func (l Location) Len() int { return len(l.values) }

// IsScalar reports whether l was built with Scalar.
func (l Location) IsScalar() bool { return l.scalar }

// Values returns a copy of the normalized values.
func (l Location) Values() []float64 { return slices.Clone(l.values) }

// TimeInput is an observation time argument. It is implemented by the values
// returned from At, Text, Times and Texts.
type TimeInput interface {
	// dayOfYears resolves n day-of-year values, one per location.
	dayOfYears(n int) ([]int, error)
}

// At applies a single instant to every location.
func At(t time.Time) TimeInput { return instant(t) }

// Text applies a single parseable timestamp to every location.
func Text(s string) TimeInput { return text(s) }

// Times supplies one instant per location.
func Times(ts []time.Time) TimeInput { return instants(slices.Clone(ts)) }

// Texts supplies one parseable timestamp per location.
func Texts(ss []string) TimeInput { return texts(slices.Clone(ss)) }

type (
	instant  time.Time
	text     string
	instants []time.Time
	texts    []string
)

func (t instant) dayOfYears(n int) ([]int, error) {
	return repeat(DayOfYear(time.Time(t)), n), nil
}

func (s text) dayOfYears(n int) ([]int, error) {
	t, err := ParseTimestamp(string(s))
	if err != nil {
		return nil, err
	}
	return repeat(DayOfYear(t), n), nil
}

func (ts instants) dayOfYears(n int) ([]int, error) {
	if err := checkSeriesLen(len(ts), n); err != nil {
		return nil, err
	}
	if len(ts) != n {
		return instant(ts[0]).dayOfYears(n)
	}
	days := make([]int, n)
	for i, t := range ts {
		days[i] = DayOfYear(t)
	}
	return days, nil
}

func (ss texts) dayOfYears(n int) ([]int, error) {
	if err := checkSeriesLen(len(ss), n); err != nil {
		return nil, err
	}
	if len(ss) != n {
		return text(ss[0]).dayOfYears(n)
	}
	days := make([]int, n)
	for i, s := range ss {
		t, err := ParseTimestamp(s)
		if err != nil {
			return nil, err
		}
		days[i] = DayOfYear(t)
	}
	return days, nil
}

// checkSeriesLen accepts a timestamp series matching the location count, or
// a single element that broadcasts.
func checkSeriesLen(got, want int) error {
	if got == want || got == 1 {
		return nil
	}
	return inputErrorf("timestamp must be the same length as lat and lon (got %d, want %d)", got, want)
}

func repeat(day, n int) []int {
	days := make([]int, n)
	for i := range days {
		days[i] = day
	}
	return days
}
