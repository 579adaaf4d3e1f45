package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wkstats/internal/errors"
	"github.com/vytor/wkstats/internal/timeutil"
)

func strPtr(s string) *string { return &s }

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := timeutil.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestParseTimestamp_Nil(t *testing.T) {
	ts, err := timeutil.ParseTimestamp(nil, time.UTC)
	assert.NoError(t, err)
	assert.Nil(t, ts)
}

func TestParseTimestamp_ConvertsToLocation(t *testing.T) {
	la := mustLocation(t, "America/Los_Angeles")

	ts, err := timeutil.ParseTimestamp(strPtr("2022-01-15T08:30:00.123456Z"), la)
	require.NoError(t, err)
	require.NotNil(t, ts)

	assert.Equal(t, la, ts.Location())
	assert.Equal(t, 0, ts.Hour())
	assert.Equal(t, 15, ts.Day())
	assert.Equal(t, 123456000, ts.Nanosecond())
	assert.True(t, ts.Equal(time.Date(2022, 1, 15, 8, 30, 0, 123456000, time.UTC)))
}

func TestParseTimestamp_NumericOffset(t *testing.T) {
	ts, err := timeutil.ParseTimestamp(strPtr("2022-01-15T17:30:00.000000+09:00"), time.UTC)
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2022, 1, 15, 8, 30, 0, 0, time.UTC)))
}

func TestParseTimestamp_CompactOffset(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{name: "utc", text: "2024-01-01T00:00:00.000000+0000", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "east", text: "2022-01-15T17:30:00.000000+0900", want: time.Date(2022, 1, 15, 8, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := timeutil.ParseTimestamp(strPtr(tt.text), time.UTC)
			require.NoError(t, err)
			assert.True(t, ts.Equal(tt.want))
		})
	}
}

func TestParseTimestamp_CompactOffsetStillNeedsFraction(t *testing.T) {
	_, err := timeutil.ParseTimestamp(strPtr("2024-01-01T00:00:00+0000"), time.UTC)
	assert.True(t, errors.Is(err, errors.ErrMalformedTimestamp))
}

func TestParseTimestamp_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no fraction", text: "2022-01-15T08:30:00Z"},
		{name: "no offset", text: "2022-01-15T08:30:00.000000"},
		{name: "date only", text: "2022-01-15"},
		{name: "garbage", text: "yesterday"},
		{name: "empty", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := timeutil.ParseTimestamp(strPtr(tt.text), time.UTC)
			assert.Nil(t, ts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMalformedTimestamp))
		})
	}
}

func TestElapsed(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(36 * time.Hour)
	now := start.Add(72 * time.Hour)

	d := timeutil.Elapsed(&start, &end, now)
	require.NotNil(t, d)
	assert.Equal(t, 36*time.Hour, *d)

	d = timeutil.Elapsed(&start, nil, now)
	require.NotNil(t, d)
	assert.Equal(t, 72*time.Hour, *d)

	assert.Nil(t, timeutil.Elapsed(nil, &end, now))
	assert.Nil(t, timeutil.Elapsed(nil, nil, now))
}

func TestDurationToDays(t *testing.T) {
	assert.Equal(t, 1.0, timeutil.DurationToDays(24*time.Hour))
	assert.Equal(t, 1.5, timeutil.DurationToDays(36*time.Hour))
	assert.InDelta(t, 1.0/86400, timeutil.DurationToDays(time.Second), 1e-15)
}

func TestRoundDays(t *testing.T) {
	assert.Equal(t, 7.3, timeutil.RoundDays(7.25))
	assert.Equal(t, 7.2, timeutil.RoundDays(7.2499))
	assert.Nil(t, timeutil.RoundDaysPtr(nil))

	v := 10.04
	assert.Equal(t, 10.0, *timeutil.RoundDaysPtr(&v))
}

func TestNow_UsesClockAndLocation(t *testing.T) {
	tokyo := mustLocation(t, "Asia/Tokyo")
	instant := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)

	now := timeutil.Now(timeutil.FixedClock(instant), tokyo)
	assert.Equal(t, tokyo, now.Location())
	assert.Equal(t, 9, now.Hour())
}
