package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	ref := time.Date(2026, 3, 10, 18, 45, 12, 0, time.UTC)

	t.Run("resolves on ref's calendar day", func(t *testing.T) {
		got, err := ParseTime("07:30", ref)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC), got)
	})

	t.Run("zeroes seconds", func(t *testing.T) {
		got, err := ParseTime("23:00", ref)
		require.NoError(t, err)
		assert.Zero(t, got.Second())
		assert.Zero(t, got.Nanosecond())
	})

	t.Run("rejects malformed strings", func(t *testing.T) {
		for _, bad := range []string{"", "7am", "25:00", "12-30", "ab:cd"} {
			_, err := ParseTime(bad, ref)
			assert.ErrorIs(t, err, ErrInvalidClockTime, "input %q", bad)
		}
	})
}

func TestNormalizeSleep(t *testing.T) {
	wake := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)

	t.Run("keeps sleep after wake", func(t *testing.T) {
		sleep := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
		assert.Equal(t, sleep, NormalizeSleep(wake, sleep))
	})

	t.Run("pushes past-midnight sleep to next day", func(t *testing.T) {
		sleep := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC), NormalizeSleep(wake, sleep))
	})

	t.Run("pushes sleep equal to wake", func(t *testing.T) {
		assert.Equal(t, wake.AddDate(0, 0, 1), NormalizeSleep(wake, wake))
	})

	t.Run("is idempotent", func(t *testing.T) {
		sleep := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
		once := NormalizeSleep(wake, sleep)
		assert.Equal(t, once, NormalizeSleep(wake, once))
	})
}

func TestRoundUpToNext15(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "already on boundary",
			in:   time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC),
			want: time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC),
		},
		{
			name: "rounds up within hour",
			in:   time.Date(2026, 3, 10, 9, 16, 0, 0, time.UTC),
			want: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "rolls into next hour",
			in:   time.Date(2026, 3, 10, 9, 46, 0, 0, time.UTC),
			want: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "drops seconds before rounding",
			in:   time.Date(2026, 3, 10, 9, 15, 30, 0, time.UTC),
			want: time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundUpToNext15(tt.in))
		})
	}
}

func TestMinutesBetween(t *testing.T) {
	a := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 90, MinutesBetween(a, a.Add(90*time.Minute)))
	assert.Equal(t, 0, MinutesBetween(a, a))
	assert.Equal(t, 0, MinutesBetween(a.Add(time.Hour), a), "negative spans floor at zero")
	assert.Equal(t, 1, MinutesBetween(a, a.Add(61*time.Second)), "rounds to nearest minute")
}

func TestMidnightOf(t *testing.T) {
	in := time.Date(2026, 3, 10, 18, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), MidnightOf(in))
}

func TestFormatClock(t *testing.T) {
	afternoon := time.Date(2026, 3, 10, 14, 5, 0, 0, time.UTC)
	morning := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "14:05", FormatClock(afternoon, false))
	assert.Equal(t, "2:05 PM", FormatClock(afternoon, true))
	assert.Equal(t, "09:30", FormatClock(morning, false))
	assert.Equal(t, "9:30 AM", FormatClock(morning, true))
}
