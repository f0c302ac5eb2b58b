package services

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
)

// RetryOutcome is the result of a single-task scheduling attempt.
type RetryOutcome struct {
	// Blocks is the revised timeline on success, or the untouched input
	// cache on failure.
	Blocks []domain.Block

	// Success reports whether the task now fits (or needed no change).
	Success bool

	// Changed is false when success required no edit, so callers can
	// skip a redundant write.
	Changed bool

	// Resolved is the canonical subtask the attempt targeted.
	Resolved domain.Task
}

// RepairService applies localized edits to an existing schedule: shrinking
// breaks to reclaim minutes, fitting a single unplaced task into a free
// window, or batch-retrying unscheduled tasks. Failed attempts never mutate
// their inputs, so callers may retry a different remediation safely.
type RepairService struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewRepairService creates a repair service. A nil clock defaults to
// time.Now and a nil logger to slog.Default().
func NewRepairService(now func() time.Time, logger *slog.Logger) *RepairService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RepairService{now: now, logger: logger}
}

// ShrinkBreaksProportionally reclaims removeMinutes from the day's breaks,
// reducing each in proportion to its length but never below the five-minute
// floor, and rigidly shifting later task and free blocks earlier to close
// the gap. Sleep and recurring blocks hold their position. Returns ok=false
// without any change when the breaks cannot cover the request.
func ShrinkBreaksProportionally(blocks []domain.Block, removeMinutes int) ([]domain.Block, bool) {
	out := make([]domain.Block, len(blocks))
	copy(out, blocks)
	domain.SortBlocks(out)

	if removeMinutes <= 0 {
		return out, true
	}

	breakIdx := make([]int, 0)
	for i, b := range out {
		if b.Type == domain.BlockTypeBreak {
			breakIdx = append(breakIdx, i)
		}
	}
	if len(breakIdx) == 0 {
		return out, false
	}

	durations := make([]int, len(breakIdx))
	originalEnds := make([]time.Time, len(breakIdx))
	totalBreak := 0
	for i, idx := range breakIdx {
		durations[i] = out[idx].Minutes()
		originalEnds[i] = out[idx].End
		totalBreak += durations[i]
	}
	if removeMinutes > totalBreak {
		return out, false
	}

	percent := float64(removeMinutes) / float64(totalBreak)

	for i, idx := range breakIdx {
		orig := durations[i]
		reduceBy := int(math.Ceil(float64(orig) * percent))
		if max := orig - domain.MinBreakMinutes; reduceBy > max {
			reduceBy = max
		}
		newDur := orig - reduceBy
		if newDur < domain.MinBreakMinutes {
			newDur = domain.MinBreakMinutes
		}
		if newDur == orig {
			continue
		}

		br := &out[idx]
		newEnd := domain.AddMinutes(br.Start, newDur)
		shift := br.End.Sub(newEnd)
		originalEnd := originalEnds[i]
		br.End = newEnd

		for j := range out {
			b := &out[j]
			if b.Start.After(originalEnd) && b.Type != domain.BlockTypeSleep && b.Type != domain.BlockTypeRecurring {
				b.Start = b.Start.Add(-shift)
				b.End = b.End.Add(-shift)
			}
		}
	}

	return out, true
}

// AttemptToScheduleTask tries to fit one task into the cached schedule. It
// resolves the canonical subtask, computes the minutes still required, and
// searches the free windows for one large enough; when no single window
// suffices it shrinks breaks to cover the deficit and searches once more.
// On failure the input cache is returned untouched.
func (s *RepairService) AttemptToScheduleTask(
	task domain.Task,
	allTasks []domain.Task,
	cached []domain.Block,
	prefs domain.SchedulePrefs,
) (RetryOutcome, error) {
	now := s.now()

	working := make([]domain.Block, 0, len(cached))
	for _, b := range cached {
		if b.Type != domain.BlockTypeFree {
			working = append(working, b)
		}
	}

	sub := domain.CanonicalSubtask(task, allTasks)

	alreadyScheduled := 0
	for _, b := range working {
		if b.Type == domain.BlockTypeTask && b.TaskID == sub.ID {
			alreadyScheduled += b.Minutes()
		}
	}

	required := sub.EstimatedMinutes() - alreadyScheduled
	if required <= 0 {
		return RetryOutcome{Blocks: cached, Success: true, Changed: false, Resolved: sub}, nil
	}

	wake, sleep, err := prefs.DayBounds(now)
	if err != nil {
		return RetryOutcome{}, fmt.Errorf("resolving day bounds: %w", err)
	}
	nowRounded := domain.RoundUpToNext15(now)

	windows := domain.FreeWindows(working, wake, sleep, nowRounded)

	if w, ok := findFit(windows, required); ok {
		// Placements always start on a quarter-hour mark, so the rounded
		// start can overshoot the window and the block may overhang
		// whatever follows it. Do not clamp to the window end.
		start := domain.RoundUpToNext15(laterOf(w.Start, nowRounded))
		final := s.placeManual(working, sub, start, required, wake, sleep)
		return RetryOutcome{Blocks: final, Success: true, Changed: true, Resolved: sub}, nil
	}

	// No single window is big enough. See whether shrinking breaks can
	// cover the deficit against the largest window.
	largest := 0
	for _, w := range windows {
		if m := w.Minutes(); m > largest {
			largest = m
		}
	}
	deficit := required - largest
	if deficit > domain.TotalBreakMinutes(working) {
		return RetryOutcome{Blocks: cached, Success: false, Resolved: sub}, nil
	}

	shrunk, ok := ShrinkBreaksProportionally(working, deficit)
	if !ok {
		return RetryOutcome{Blocks: cached, Success: false, Resolved: sub}, nil
	}

	windowsAfter := domain.FreeWindows(shrunk, wake, sleep, nowRounded)
	w, ok := findFit(windowsAfter, required)
	if !ok {
		return RetryOutcome{Blocks: cached, Success: false, Resolved: sub}, nil
	}

	start := domain.RoundUpToNext15(laterOf(w.Start, nowRounded))
	final := s.placeManual(shrunk, sub, start, required, wake, sleep)
	return RetryOutcome{Blocks: final, Success: true, Changed: true, Resolved: sub}, nil
}

// RetryUnscheduledTasks forces room for each unscheduled task by shrinking
// breaks, appending the task after the last placed work block. Tasks that
// still cannot fit before sleep are returned as the remaining unscheduled
// set. The rebuilt timeline has its free time recomputed from scratch.
func (s *RepairService) RetryUnscheduledTasks(
	unscheduled []domain.Task,
	blocks []domain.Block,
	sleep time.Time,
) ([]domain.Block, []domain.Task) {
	now := s.now()
	updated := make([]domain.Block, len(blocks))
	copy(updated, blocks)

	remaining := make([]domain.Task, 0, len(unscheduled))

	for _, task := range unscheduled {
		need := task.EstimatedMinutes()

		shrunk, ok := ShrinkBreaksProportionally(updated, need)
		if !ok {
			s.logger.Warn("cannot fit task, not enough break time", "task_id", task.ID, "title", task.Title)
			remaining = append(remaining, task)
			continue
		}
		updated = shrunk

		// Anchor right after the latest placed work block, ignoring the
		// fixed skeleton and free padding.
		var anchor *domain.Block
		for i := range updated {
			b := &updated[i]
			switch b.Type {
			case domain.BlockTypeSleep, domain.BlockTypeRecurring, domain.BlockTypeFree:
				continue
			}
			if anchor == nil || b.End.After(anchor.End) {
				anchor = b
			}
		}

		start := domain.RoundUpToNext15(now)
		if anchor != nil {
			start = domain.RoundUpToNext15(anchor.End)
		}
		if nowRounded := domain.RoundUpToNext15(now); start.Before(nowRounded) {
			start = nowRounded
		}
		end := domain.AddMinutes(start, need)

		if end.After(sleep) {
			s.logger.Warn("not enough space before sleep", "task_id", task.ID, "title", task.Title)
			remaining = append(remaining, task)
			continue
		}

		updated = append(updated, domain.Block{
			Title:  task.Title,
			TaskID: task.ID,
			Type:   domain.BlockTypeTask,
			Start:  start,
			End:    end,
			Manual: true,
		})
	}

	withoutFree := make([]domain.Block, 0, len(updated))
	for _, b := range updated {
		if b.Type != domain.BlockTypeFree {
			withoutFree = append(withoutFree, b)
		}
	}

	// Recover today's wake instant from the overnight sleep span.
	wake := domain.MidnightOf(now)
	var morning *domain.Block
	for i := range withoutFree {
		b := &withoutFree[i]
		if b.Type != domain.BlockTypeSleep {
			continue
		}
		if morning == nil || b.End.Before(morning.End) {
			morning = b
		}
	}
	if morning != nil {
		wake = morning.End
	}

	final := domain.FillFreeGaps(withoutFree, wake, sleep)
	domain.SortBlocks(final)
	return final, remaining
}

// placeManual drops any stale block for the subtask, pins the new interval
// as manual so it survives regeneration, and rebuilds the free padding.
func (s *RepairService) placeManual(
	working []domain.Block,
	sub domain.Task,
	start time.Time,
	minutes int,
	wake, sleep time.Time,
) []domain.Block {
	end := domain.AddMinutes(start, minutes)

	kept := make([]domain.Block, 0, len(working)+1)
	for _, b := range working {
		if b.Type == domain.BlockTypeTask && b.TaskID == sub.ID {
			continue
		}
		kept = append(kept, b)
	}

	kept = append(kept, domain.Block{
		Title:  sub.Title,
		TaskID: sub.ID,
		Type:   domain.BlockTypeTask,
		Start:  start,
		End:    end,
		Manual: true,
	})

	return domain.DedupeByTaskID(domain.FillFreeGaps(kept, wake, sleep))
}

func findFit(windows []domain.Window, required int) (domain.Window, bool) {
	for _, w := range windows {
		if w.Minutes() >= required {
			return w, true
		}
	}
	return domain.Window{}, false
}
