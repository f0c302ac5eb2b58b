package domain

import "time"

// SleepTitle labels the sleep blocks seeded into every day.
const SleepTitle = "Sleep"

// SleepBlocks builds the fixed sleep skeleton for a day: the overnight span
// from midnight to wake, plus a zero-width marker at the normalized sleep
// instant. The marker anchors downstream free-time filling without
// occupying an interval.
func SleepBlocks(wake, sleep time.Time) []Block {
	return []Block{
		{
			Title: SleepTitle,
			Type:  BlockTypeSleep,
			Start: MidnightOf(wake),
			End:   wake,
		},
		{
			Title: SleepTitle,
			Type:  BlockTypeSleep,
			Start: sleep,
			End:   sleep,
		},
	}
}

// SeedRecurringBlocks expands the configured recurring commitments into
// concrete blocks on the given day, keeping only occurrences fully inside
// [wake, sleep]. Malformed time strings and non-positive durations are
// skipped; a bad entry contributes nothing rather than aborting the day.
func SeedRecurringBlocks(prefs SchedulePrefs, day, wake, sleep time.Time) []Block {
	blocks := make([]Block, 0)
	for _, rec := range prefs.RecurringBlocks {
		if rec.DurationMinutes <= 0 {
			continue
		}
		for _, timeStr := range rec.Times {
			start, err := ParseTime(timeStr, day)
			if err != nil {
				continue
			}
			end := AddMinutes(start, rec.DurationMinutes)
			if start.Before(wake) || end.After(sleep) {
				continue
			}
			blocks = append(blocks, Block{
				Title: rec.Title,
				Type:  BlockTypeRecurring,
				Start: start,
				End:   end,
			})
		}
	}
	return blocks
}
