package domain

import (
	"sort"
	"time"
)

// BlockType classifies an entry on the day timeline.
type BlockType string

const (
	BlockTypeTask      BlockType = "task"
	BlockTypeBreak     BlockType = "break"
	BlockTypeRecurring BlockType = "recurring"
	BlockTypeSleep     BlockType = "sleep"
	BlockTypeFree      BlockType = "free"
)

// Block is a titled, typed interval placed on the day's timeline. Start and
// End are the single source of truth; wall-clock strings are derived at the
// serialization boundary.
type Block struct {
	Title  string
	TaskID string
	Type   BlockType
	Start  time.Time
	End    time.Time

	// Manual marks a block that must survive regeneration, e.g. one
	// inserted by a repair path or already in progress.
	Manual bool
}

// Duration returns the block's span.
func (b Block) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Minutes returns the block's span in whole minutes, never negative.
func (b Block) Minutes() int {
	return MinutesBetween(b.Start, b.End)
}

// Overlaps reports whether the block intersects [start, end). Zero-width
// markers never overlap anything.
func (b Block) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// BaseTaskID returns the block's task id with any "-part<i>" suffix
// stripped, or "" for non-task blocks.
func (b Block) BaseTaskID() string {
	if b.TaskID == "" {
		return ""
	}
	return BaseTaskID(b.TaskID)
}

// Touches reports whether other begins exactly where this block ends.
func (b Block) Touches(other Block) bool {
	return b.End.Equal(other.Start)
}

// SortBlocks orders blocks chronologically by start time, in place.
// The sort is stable so equal starts keep their construction order.
func SortBlocks(blocks []Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Start.Before(blocks[j].Start)
	})
}

// DedupeByTaskID drops all but the earliest task block for each task id.
// Later duplicates are stale leftovers from repair passes. Non-task blocks
// pass through untouched. The result is chronologically ordered.
func DedupeByTaskID(blocks []Block) []Block {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	SortBlocks(sorted)

	seen := make(map[string]struct{}, len(sorted))
	out := make([]Block, 0, len(sorted))
	for _, b := range sorted {
		if b.Type == BlockTypeTask && b.TaskID != "" {
			if _, dup := seen[b.TaskID]; dup {
				continue
			}
			seen[b.TaskID] = struct{}{}
		}
		out = append(out, b)
	}
	return out
}

// OverlapsAny reports whether [start, end) intersects any block in the list.
func OverlapsAny(start, end time.Time, blocks []Block) bool {
	for _, b := range blocks {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// NextEndAfter returns the earliest block end strictly after start, used to
// advance the placement cursor past a conflict. ok is false when no block
// ends after start.
func NextEndAfter(start time.Time, blocks []Block) (time.Time, bool) {
	var next time.Time
	found := false
	for _, b := range blocks {
		if b.End.After(start) && (!found || b.End.Before(next)) {
			next = b.End
			found = true
		}
	}
	return next, found
}

// TotalBreakMinutes sums the durations of all break blocks.
func TotalBreakMinutes(blocks []Block) int {
	total := 0
	for _, b := range blocks {
		if b.Type == BlockTypeBreak {
			total += b.Minutes()
		}
	}
	return total
}

// ScheduledMinutesByBase aggregates placed task minutes per base task id.
func ScheduledMinutesByBase(blocks []Block) map[string]int {
	byBase := make(map[string]int)
	for _, b := range blocks {
		if b.Type == BlockTypeTask && b.TaskID != "" {
			byBase[b.BaseTaskID()] += b.Minutes()
		}
	}
	return byBase
}
