package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCap(t *testing.T) {
	assert.Equal(t, DefaultMaxSessionMinutes, SchedulePrefs{}.SessionCap())
	assert.Equal(t, 90, SchedulePrefs{MaxSessionMinutes: 90}.SessionCap())
	assert.Equal(t, MinSessionMinutes, SchedulePrefs{MaxSessionMinutes: 5}.SessionCap())
}

func TestDayBounds(t *testing.T) {
	ref := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("same-day sleep", func(t *testing.T) {
		prefs := SchedulePrefs{WakeUp: "07:00", Sleep: "23:00"}
		wake, sleep, err := prefs.DayBounds(ref)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), wake)
		assert.Equal(t, time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC), sleep)
	})

	t.Run("past-midnight sleep lands on next day", func(t *testing.T) {
		prefs := SchedulePrefs{WakeUp: "07:00", Sleep: "01:00"}
		wake, sleep, err := prefs.DayBounds(ref)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC), sleep)
		assert.True(t, sleep.After(wake))
	})

	t.Run("malformed wake time", func(t *testing.T) {
		prefs := SchedulePrefs{WakeUp: "seven", Sleep: "23:00"}
		_, _, err := prefs.DayBounds(ref)
		assert.ErrorIs(t, err, ErrInvalidClockTime)
	})
}

func TestBreakSizing(t *testing.T) {
	assert.Equal(t, 60, MaxBreakMinutes(120))
	assert.Equal(t, 30, NormalBreakMinutes(120))
	assert.Equal(t, 45, MaxBreakMinutes(90))
	assert.Equal(t, 23, NormalBreakMinutes(90))
	assert.Equal(t, MinBreakMinutes, MaxBreakMinutes(8), "floored at five minutes")
	assert.Equal(t, MinBreakMinutes, NormalBreakMinutes(15))
}

func TestDefaultPrefs(t *testing.T) {
	prefs := DefaultPrefs()
	assert.Equal(t, "07:00", prefs.WakeUp)
	assert.Equal(t, "23:00", prefs.Sleep)
	assert.Equal(t, DefaultMaxSessionMinutes, prefs.MaxSessionMinutes)
	assert.False(t, prefs.Use12HourClock)
	assert.Empty(t, prefs.RecurringBlocks)
}
