// Package timeutil parses WaniKani timestamps and converts elapsed time to days.
package timeutil

import (
	"math"
	"time"

	"github.com/vytor/wkstats/internal/errors"
)

// TimestampLayout matches WaniKani's ISO-8601 timestamps, which always carry
// fractional seconds and either "Z" or a numeric offset.
const TimestampLayout = "2006-01-02T15:04:05.999999999Z07:00"

// compactOffsetLayout accepts offsets written without a colon, e.g. "+0000".
const compactOffsetLayout = "2006-01-02T15:04:05.999999999Z0700"

const secondsPerDay = 86400

// Clock abstracts the system clock so elapsed-time math is deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// LoadLocation resolves a named timezone. An empty name means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// Now returns the clock's current instant in loc.
func Now(clock Clock, loc *time.Location) time.Time {
	return clock.Now().In(loc)
}

// ParseTimestamp parses text and converts it to loc. A nil text yields a nil
// instant and no error: upstream omits timestamps for events that have not happened.
func ParseTimestamp(text *string, loc *time.Location) (*time.Time, error) {
	if text == nil {
		return nil, nil
	}
	t, err := time.Parse(TimestampLayout, *text)
	if err != nil {
		if alt, altErr := time.Parse(compactOffsetLayout, *text); altErr == nil {
			t, err = alt, nil
		}
	}
	if err != nil || !hasFraction(*text) {
		return nil, errors.NewMalformedTimestampError(*text, err)
	}
	t = t.In(loc)
	return &t, nil
}

// hasFraction enforces the fractional-seconds part that time.Parse treats as optional.
func hasFraction(text string) bool {
	// "2006-01-02T15:04:05" is 19 bytes; the fraction starts right after it.
	return len(text) > 20 && text[19] == '.'
}

// Elapsed returns end-start when end is known, otherwise now-start. It is nil
// when start is unknown.
func Elapsed(start, end *time.Time, now time.Time) *time.Duration {
	if start == nil {
		return nil
	}
	var d time.Duration
	if end != nil {
		d = end.Sub(*start)
	} else {
		d = now.Sub(*start)
	}
	return &d
}

// DurationToDays converts d to fractional days without rounding.
func DurationToDays(d time.Duration) float64 {
	return d.Seconds() / secondsPerDay
}

// RoundDays rounds to one decimal place for display.
func RoundDays(v float64) float64 {
	return math.Round(v*10) / 10
}

// RoundDaysPtr is RoundDays over an optional value.
func RoundDaysPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := RoundDays(*v)
	return &r
}
