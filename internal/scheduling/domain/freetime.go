package domain

import "time"

// FreeTitle labels generated free-time blocks.
const FreeTitle = "Free Time"

// Window is an uncovered interval, candidate space for new placements.
type Window struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the window length in whole minutes.
func (w Window) Minutes() int {
	return MinutesBetween(w.Start, w.End)
}

// FillFreeGaps inserts "Free Time" blocks for every uncovered interval
// between wake and sleep, absorbing breaks that touch a free span into it.
// The result is a non-overlapping, chronologically ordered timeline whose
// free/break runs are collapsed into single free blocks. The function is
// idempotent: applying it to its own output changes nothing.
func FillFreeGaps(blocks []Block, wake, sleep time.Time) []Block {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	SortBlocks(sorted)

	out := make([]Block, 0, len(sorted)+4)
	pointer := wake

	pushOrMergeFree := func(start, end time.Time) {
		if !start.Before(end) {
			return
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			if (last.Type == BlockTypeFree || last.Type == BlockTypeBreak) && last.End.Equal(start) {
				last.Type = BlockTypeFree
				last.Title = FreeTitle
				last.End = end
				return
			}
		}
		out = append(out, Block{
			Title: FreeTitle,
			Type:  BlockTypeFree,
			Start: start,
			End:   end,
		})
	}

	for _, b := range sorted {
		if b.Start.After(pointer) {
			pushOrMergeFree(pointer, b.Start)
		}

		// A break that touches an open free span is swallowed by it
		// instead of sitting next to it as a separate entry.
		if n := len(out); b.Type == BlockTypeBreak && n > 0 {
			last := &out[n-1]
			if last.Type == BlockTypeFree && last.End.Equal(b.Start) {
				last.End = b.End
				pointer = b.End
				continue
			}
		}

		out = append(out, b)
		pointer = b.End
	}

	if pointer.Before(sleep) {
		pushOrMergeFree(pointer, sleep)
	}

	// Final pass: collapse any remaining chains of touching free/break
	// blocks into single free spans.
	merged := make([]Block, 0, len(out))
	for _, b := range out {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			touching := last.End.Equal(b.Start)
			mergeable := (last.Type == BlockTypeFree && b.Type == BlockTypeFree) ||
				(last.Type == BlockTypeFree && b.Type == BlockTypeBreak) ||
				(last.Type == BlockTypeBreak && b.Type == BlockTypeFree)
			if touching && mergeable {
				last.Type = BlockTypeFree
				last.Title = FreeTitle
				last.End = b.End
				continue
			}
		}
		merged = append(merged, b)
	}

	return merged
}

// FreeWindows scans the non-free blocks for uncovered gaps inside
// [max(wake, now rounded up to :15), sleep]. It is the search counterpart
// of FillFreeGaps, returning gaps rather than inserting blocks.
func FreeWindows(blocks []Block, wake, sleep, now time.Time) []Window {
	dayStart := RoundUpToNext15(now)
	if wake.After(dayStart) {
		dayStart = wake
	}

	nonFree := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Type != BlockTypeFree {
			nonFree = append(nonFree, b)
		}
	}
	SortBlocks(nonFree)

	windows := make([]Window, 0)
	cursor := dayStart

	for _, b := range nonFree {
		if !b.End.After(cursor) {
			continue
		}
		if b.Start.After(cursor) {
			end := b.Start
			if end.After(sleep) {
				end = sleep
			}
			if end.After(cursor) {
				windows = append(windows, Window{Start: cursor, End: end})
			}
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(sleep) {
			break
		}
	}

	if cursor.Before(sleep) {
		windows = append(windows, Window{Start: cursor, End: sleep})
	}
	return windows
}

// GetFreeTimeGaps returns the uncovered intervals between consecutive
// blocks and between the last block and sleep, as free-typed gap blocks.
func GetFreeTimeGaps(blocks []Block, sleep time.Time) []Block {
	if len(blocks) == 0 {
		return nil
	}
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	SortBlocks(sorted)

	gaps := make([]Block, 0)
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].End.Before(sorted[i+1].Start) {
			gaps = append(gaps, Block{
				Title: "Free Gap",
				Type:  BlockTypeFree,
				Start: sorted[i].End,
				End:   sorted[i+1].Start,
			})
		}
	}

	last := sorted[len(sorted)-1]
	if last.End.Before(sleep) {
		gaps = append(gaps, Block{
			Title: "Free Gap",
			Type:  BlockTypeFree,
			Start: last.End,
			End:   sleep,
		})
	}
	return gaps
}
