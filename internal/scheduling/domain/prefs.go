package domain

import (
	"math"
	"time"
)

const (
	// DefaultMaxSessionMinutes caps a single work session when the user
	// has not configured one.
	DefaultMaxSessionMinutes = 120

	// MinSessionMinutes is the floor for the configurable session cap.
	MinSessionMinutes = 15

	// MinBreakMinutes is the floor below which breaks are never sized or
	// shrunk.
	MinBreakMinutes = 5
)

// RecurringBlock is a fixed daily commitment (meal, habit) that repeats at
// one or more clock times.
type RecurringBlock struct {
	Title           string   `json:"title"`
	Times           []string `json:"times"`
	DurationMinutes int      `json:"duration"`
}

// SchedulePrefs describes the shape of the user's day.
type SchedulePrefs struct {
	WakeUp            string           `json:"wakeUp"`
	Sleep             string           `json:"sleep"`
	RecurringBlocks   []RecurringBlock `json:"recurringBlocks"`
	Use12HourClock    bool             `json:"use12HourClock"`
	MaxSessionMinutes int              `json:"maxSessionMinutes,omitempty"`
}

// DefaultPrefs returns the out-of-the-box day shape.
func DefaultPrefs() SchedulePrefs {
	return SchedulePrefs{
		WakeUp:            "07:00",
		Sleep:             "23:00",
		MaxSessionMinutes: DefaultMaxSessionMinutes,
	}
}

// SessionCap returns the effective maximum single-session length, applying
// the default and the floor.
func (p SchedulePrefs) SessionCap() int {
	cap := p.MaxSessionMinutes
	if cap == 0 {
		cap = DefaultMaxSessionMinutes
	}
	if cap < MinSessionMinutes {
		cap = MinSessionMinutes
	}
	return cap
}

// DayBounds resolves the wake and normalized sleep instants for the
// calendar day containing ref. The sleep instant is always strictly after
// wake; a stored sleep time-of-day at or before wake lands on the next day.
func (p SchedulePrefs) DayBounds(ref time.Time) (wake, sleep time.Time, err error) {
	day := MidnightOf(ref)
	wake, err = ParseTime(p.WakeUp, day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	sleep, err = ParseTime(p.Sleep, day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return wake, NormalizeSleep(wake, sleep), nil
}

// MaxBreakMinutes sizes the rest inserted after a session that consumed the
// full session allowance: half the cap, floored at five minutes.
func MaxBreakMinutes(sessionCap int) int {
	return breakFloor(int(math.Round(float64(sessionCap) / 2)))
}

// NormalBreakMinutes sizes the rest inserted after a shorter session: a
// quarter of the cap, floored at five minutes.
func NormalBreakMinutes(sessionCap int) int {
	return breakFloor(int(math.Round(float64(sessionCap) / 4)))
}

func breakFloor(mins int) int {
	if mins < MinBreakMinutes {
		return MinBreakMinutes
	}
	return mins
}
