package astro

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Julian Date of the Unix epoch (1970-01-01 00:00 UTC).
const unixEpochJD = 2440587.5

const secondsPerDay = 86400.0

// ErrInvalidFormat is returned when a date or time string cannot be parsed.
var ErrInvalidFormat = errors.New("invalid date/time format")

// ErrOutOfRange is returned when an instant falls outside a supported interval.
var ErrOutOfRange = errors.New("instant outside supported range")

// Instant is a point on the continuous UTC timeline. It is immutable,
// totally ordered, and convertible to a Julian Date for interval
// arithmetic. The zero Instant is the zero time.Time.
type Instant struct {
	t time.Time
}

// InstantOf wraps a time.Time as an Instant, normalizing to UTC.
func InstantOf(t time.Time) Instant {
	return Instant{t: t.UTC()}
}

// Now returns the current instant.
func Now() Instant {
	return Instant{t: time.Now().UTC()}
}

// FromJD converts a Julian Date to an Instant.
func FromJD(jd float64) Instant {
	sec := (jd - unixEpochJD) * secondsPerDay
	whole, frac := math.Modf(sec)
	return Instant{t: time.Unix(int64(whole), int64(frac*1e9)).UTC()}
}

// Parse converts a calendar date ("2006-01-02") and a 24-hour clock time
// ("15:04", seconds optional) into an Instant. Out-of-range field values
// such as month 13 or hour 25 fail with ErrInvalidFormat.
func Parse(date, clock string) (Instant, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		t, err := time.Parse(layout, date+" "+clock)
		if err == nil {
			return Instant{t: t.UTC()}, nil
		}
	}
	return Instant{}, fmt.Errorf("%w: %q %q", ErrInvalidFormat, date, clock)
}

// JD returns the Julian Date of the instant.
func (i Instant) JD() float64 {
	return unixEpochJD + float64(i.t.Unix())/secondsPerDay +
		float64(i.t.Nanosecond())/(secondsPerDay*1e9)
}

// Time returns the instant as a UTC time.Time.
func (i Instant) Time() time.Time {
	return i.t
}

// Before reports whether i precedes u.
func (i Instant) Before(u Instant) bool {
	return i.t.Before(u.t)
}

// After reports whether i follows u.
func (i Instant) After(u Instant) bool {
	return i.t.After(u.t)
}

// AddDays returns the instant shifted by a (possibly fractional) number of days.
func (i Instant) AddDays(days float64) Instant {
	return Instant{t: i.t.Add(time.Duration(days * secondsPerDay * float64(time.Second)))}
}

// String formats the instant as "2006-01-02 15:04 UTC".
func (i Instant) String() string {
	return i.t.Format("2006-01-02 15:04 UTC")
}

// Interval is a closed time interval [Start, End].
type Interval struct {
	Start Instant
	End   Instant
}

// Contains reports whether the instant lies within the interval.
func (iv Interval) Contains(i Instant) bool {
	return !i.Before(iv.Start) && !i.After(iv.End)
}

// Clamp restricts the instant to the interval.
func (iv Interval) Clamp(i Instant) Instant {
	if i.Before(iv.Start) {
		return iv.Start
	}
	if i.After(iv.End) {
		return iv.End
	}
	return i
}

// Days returns the interval length in days. Negative for inverted intervals.
func (iv Interval) Days() float64 {
	return iv.End.JD() - iv.Start.JD()
}

// Validate returns nil if the instant lies within the interval, or an
// error wrapping ErrOutOfRange phrased in calendar terms.
func (iv Interval) Validate(i Instant) error {
	if iv.Contains(i) {
		return nil
	}
	return fmt.Errorf("%w: %s not in %s – %s",
		ErrOutOfRange, i, iv.Start.t.Format("2006-01-02"), iv.End.t.Format("2006-01-02"))
}
