package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidClockTime = errors.New("invalid HH:MM time string")

// ParseTime resolves an "HH:MM" string to a concrete instant on ref's
// calendar day, with seconds zeroed.
func ParseTime(hhmm string, ref time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, hhmm)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), parsed.Hour(), parsed.Minute(), 0, 0, ref.Location()), nil
}

// NormalizeSleep resolves a stored sleep time-of-day against the wake
// instant. A sleep instant at or before wake means "past midnight" and is
// pushed to the following day. Applying it twice with the same wake instant
// is a no-op.
func NormalizeSleep(wake, sleep time.Time) time.Time {
	if !sleep.After(wake) {
		return sleep.AddDate(0, 0, 1)
	}
	return sleep
}

// RoundUpToNext15 returns the smallest instant >= t that falls on an exact
// 15-minute boundary. Rounding past :45 rolls into the next hour.
func RoundUpToNext15(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	if rem := t.Minute() % 15; rem != 0 {
		t = t.Add(time.Duration(15-rem) * time.Minute)
	}
	return t
}

// AddMinutes shifts t forward by the given number of minutes.
func AddMinutes(t time.Time, mins int) time.Time {
	return t.Add(time.Duration(mins) * time.Minute)
}

// MinutesBetween returns the rounded minute delta from a to b, floored at
// zero so callers never see a negative span.
func MinutesBetween(a, b time.Time) int {
	mins := int(math.Round(b.Sub(a).Minutes()))
	if mins < 0 {
		return 0
	}
	return mins
}

// MidnightOf truncates t to the start of its calendar day.
func MidnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatClock renders an instant as a wall-clock string, either 24-hour
// ("14:05") or 12-hour ("2:05 PM") depending on the display preference.
func FormatClock(t time.Time, use12Hour bool) string {
	if !use12Hour {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}
