// Package biztime centralizes how the application reads the current time.
// All storage and transport use UTC; there is no local timezone anywhere.
package biztime

import "time"

// Clock is the source of "now" for domain and application code.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns wall-clock time in UTC.
var SystemClock Clock = ClockFunc(NowUTC)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Fixed returns a Clock that always reports t (converted to UTC).
func Fixed(t time.Time) Clock {
	t = t.UTC()
	return ClockFunc(func() time.Time { return t })
}

// FormatRFC3339 formats a timestamp for API responses and email bodies.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseRFC3339 is the counterpart to FormatRFC3339.
func ParseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
