package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
)

// BreakTitle labels rest blocks inserted between work sessions.
const BreakTitle = "Break"

// placementGuard bounds the conflict-skip walk so a pathological block set
// cannot loop the cursor forever.
const placementGuard = 1000

// justWorkedWindowMinutes is how recently a task block must have ended for
// the planner to force a rest before placing anything new.
const justWorkedWindowMinutes = 5

// PlanResult is the outcome of a full regeneration pass.
type PlanResult struct {
	// Blocks is the non-overlapping, chronologically ordered timeline
	// for the day, free-time padding included.
	Blocks []domain.Block

	// Unscheduled holds the tasks whose scheduled minutes fell short of
	// their required minutes. A non-empty list is an expected outcome,
	// not an error.
	Unscheduled []domain.Task

	// Overdue holds incomplete tasks whose deadline already passed.
	// They are excluded from placement and surfaced for remediation.
	Overdue []domain.Task
}

// Planner converts a task list plus day-shape preferences into a block
// timeline using a deterministic greedy heuristic: tasks ordered by
// priority then deadline, sessions placed at the earliest non-conflicting
// 15-minute mark before sleep, with sized rest breaks in between.
type Planner struct {
	now func() time.Time
}

// NewPlanner creates a planner. A nil clock defaults to time.Now, so tests
// can pin "now" to a fixed instant.
func NewPlanner(now func() time.Time) *Planner {
	if now == nil {
		now = time.Now
	}
	return &Planner{now: now}
}

// Generate runs a full regeneration pass. Cached blocks from a prior pass
// are consulted so manually pinned, already-started, and completed-task
// blocks survive verbatim, along with planned future breaks. The call is
// pure with respect to its inputs: the same snapshot always yields the same
// timeline.
func (p *Planner) Generate(tasks []domain.Task, prefs domain.SchedulePrefs, cached []domain.Block) (PlanResult, error) {
	now := p.now()
	today := domain.MidnightOf(now)

	wake, sleep, err := prefs.DayBounds(now)
	if err != nil {
		return PlanResult{}, fmt.Errorf("resolving day bounds: %w", err)
	}

	sessionCap := prefs.SessionCap()
	maxBreak := domain.MaxBreakMinutes(sessionCap)
	normalBreak := domain.NormalBreakMinutes(sessionCap)

	preserved := preserveFromCache(cached, tasks, now, wake, sleep)

	blocks := domain.SleepBlocks(wake, sleep)
	blocks = append(blocks, preserved...)
	blocks = append(blocks, domain.SeedRecurringBlocks(prefs, today, wake, sleep)...)

	todayISO := today.Format(domain.DeadlineLayout)
	preservedBases := make(map[string]struct{})
	for _, b := range preserved {
		if b.Type == domain.BlockTypeTask && b.TaskID != "" {
			preservedBases[b.BaseTaskID()] = struct{}{}
		}
	}

	ordered := make([]domain.Task, 0, len(tasks))
	overdue := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.IsOverdueOn(todayISO) {
			overdue = append(overdue, t)
			continue
		}
		if !t.EligibleForDay(todayISO) {
			continue
		}
		if _, covered := preservedBases[t.BaseID()]; covered {
			continue
		}
		ordered = append(ordered, t)
	}
	sortByPriorityThenDeadline(ordered)

	sessions := make([]domain.Session, 0, len(ordered))
	for _, t := range ordered {
		sessions = append(sessions, domain.ExpandSessions(t, sessionCap)...)
	}

	cursor := domain.RoundUpToNext15(laterOf(wake, now))

	// If a task is running right now, or one wrapped up within the last
	// few minutes, rest comes before the next placement. The break is
	// sized off the literal duration of the cached block, and skipped
	// when a planned break is already cached to start soon.
	if recent, ok := activeOrJustWorked(preserved, now); ok {
		prevDur := recent.Minutes()
		breakMin := normalBreak
		if prevDur >= sessionCap {
			breakMin = maxBreak
		}
		if !breakCachedSoon(preserved, now, breakMin) {
			cursor = p.insertBreak(cursor, breakMin, &blocks, sleep)
		}
	}

	isFirst := true
	lastSessionDuration := 0
	for _, s := range sessions {
		if !isFirst {
			breakMin := normalBreak
			if lastSessionDuration >= sessionCap {
				breakMin = maxBreak
			}
			cursor = p.insertBreak(cursor, breakMin, &blocks, sleep)
		}

		placed, newCursor := p.placeSession(s, cursor, &blocks, now, sleep)
		if !placed {
			break
		}
		cursor = newCursor
		isFirst = false
		lastSessionDuration = s.DurationMinutes
	}

	// Drop anything that leaked outside the day; the overnight sleep
	// span and the zero-width marker stay.
	kept := blocks[:0]
	for _, b := range blocks {
		if b.Type == domain.BlockTypeSleep || (!b.Start.Before(wake) && !b.End.After(sleep)) {
			kept = append(kept, b)
		}
	}
	blocks = kept

	unscheduled := computeUnscheduled(ordered, blocks)

	final := domain.FillFreeGaps(blocks, wake, sleep)
	domain.SortBlocks(final)

	return PlanResult{Blocks: final, Unscheduled: unscheduled, Overdue: overdue}, nil
}

// insertBreak places a rest block of the given length at the first
// non-conflicting spot at or after cursor. If no spot fits before sleep the
// cursor is returned unchanged and no break is inserted.
func (p *Planner) insertBreak(cursor time.Time, minutes int, blocks *[]domain.Block, sleep time.Time) time.Time {
	start := cursor
	end := domain.AddMinutes(start, minutes)

	for domain.OverlapsAny(start, end, *blocks) {
		next, ok := domain.NextEndAfter(start, *blocks)
		if !ok {
			break
		}
		next = domain.RoundUpToNext15(next)
		if next.Equal(start) {
			break
		}
		start = next
		end = domain.AddMinutes(start, minutes)
		if end.After(sleep) {
			return cursor
		}
	}
	if end.After(sleep) {
		return cursor
	}

	*blocks = append(*blocks, domain.Block{
		Title: BreakTitle,
		Type:  domain.BlockTypeBreak,
		Start: start,
		End:   end,
	})
	return domain.RoundUpToNext15(end)
}

// placeSession walks the cursor forward past conflicts and places the
// session's interval at the earliest spot that ends by sleep. Failure to
// place reports false without touching the block list.
func (p *Planner) placeSession(s domain.Session, cursor time.Time, blocks *[]domain.Block, now, sleep time.Time) (bool, time.Time) {
	nowRounded := domain.RoundUpToNext15(now)
	start := laterOf(cursor, nowRounded)
	end := domain.AddMinutes(start, s.DurationMinutes)

	guard := 0
	for end.After(sleep) || domain.OverlapsAny(start, end, *blocks) {
		next, ok := domain.NextEndAfter(start, *blocks)
		if !ok {
			break
		}
		next = domain.RoundUpToNext15(next)
		if next.Equal(start) {
			break
		}
		start = laterOf(next, nowRounded)
		end = domain.AddMinutes(start, s.DurationMinutes)
		if guard++; guard > placementGuard {
			break
		}
	}
	if end.After(sleep) {
		return false, cursor
	}

	*blocks = append(*blocks, domain.Block{
		Title:  s.Title,
		TaskID: s.Task.ID,
		Type:   domain.BlockTypeTask,
		Start:  start,
		End:    end,
	})
	return true, domain.RoundUpToNext15(end)
}

// preserveFromCache selects the cached blocks exempt from regeneration:
// task blocks that are manual, already started, or belong to a completed
// task (by exact or base id), and planned breaks that have not started yet.
// Task blocks outside [wake, sleep] are discarded regardless.
func preserveFromCache(cached []domain.Block, tasks []domain.Task, now, wake, sleep time.Time) []domain.Block {
	byID := make(map[string]domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	withinDay := func(b domain.Block) bool {
		return !b.Start.Before(wake) && !b.End.After(sleep)
	}

	preserved := make([]domain.Block, 0)
	for _, b := range cached {
		switch b.Type {
		case domain.BlockTypeTask:
			if !withinDay(b) {
				continue
			}
			exact, haveExact := byID[b.TaskID]
			base, haveBase := byID[b.BaseTaskID()]
			completed := (haveExact && exact.Completed) || (haveBase && base.Completed)
			if b.Manual || b.Start.Before(now) || completed {
				preserved = append(preserved, b)
			}
		case domain.BlockTypeBreak:
			if b.Start.After(now) && withinDay(b) {
				preserved = append(preserved, b)
			}
		}
	}
	return preserved
}

// activeOrJustWorked finds the cached task block the user is in the middle
// of, or failing that the most recently finished one if it ended within the
// just-worked window.
func activeOrJustWorked(preserved []domain.Block, now time.Time) (domain.Block, bool) {
	var active *domain.Block
	for i := range preserved {
		b := &preserved[i]
		if b.Type != domain.BlockTypeTask {
			continue
		}
		if !b.Start.After(now) && b.End.After(now) {
			if active == nil || b.Start.Before(active.Start) {
				active = b
			}
		}
	}
	if active != nil {
		return *active, true
	}

	var last *domain.Block
	for i := range preserved {
		b := &preserved[i]
		if b.Type != domain.BlockTypeTask || b.End.After(now) {
			continue
		}
		if last == nil || b.End.After(last.End) {
			last = b
		}
	}
	if last != nil && domain.MinutesBetween(last.End, now) <= justWorkedWindowMinutes {
		return *last, true
	}
	return domain.Block{}, false
}

// breakCachedSoon reports whether a preserved break already starts within
// breakMin+5 minutes, making a forced break redundant.
func breakCachedSoon(preserved []domain.Block, now time.Time, breakMin int) bool {
	horizon := domain.AddMinutes(now, breakMin+justWorkedWindowMinutes)
	for _, b := range preserved {
		if b.Type == domain.BlockTypeBreak && !b.Start.Before(now) && b.Start.Before(horizon) {
			return true
		}
	}
	return false
}

// computeUnscheduled compares, per task base id, the minutes the timeline
// actually carries against the minutes the task set requires, and reports
// every task that came up short.
func computeUnscheduled(ordered []domain.Task, blocks []domain.Block) []domain.Task {
	scheduled := domain.ScheduledMinutesByBase(blocks)

	required := make(map[string]int, len(ordered))
	for _, t := range ordered {
		required[t.BaseID()] += t.EstimatedMinutes()
	}

	unscheduled := make([]domain.Task, 0)
	seen := make(map[string]struct{}, len(ordered))
	for _, t := range ordered {
		base := t.BaseID()
		if _, dup := seen[base]; dup {
			continue
		}
		seen[base] = struct{}{}
		if scheduled[base] < required[base] {
			unscheduled = append(unscheduled, t)
		}
	}
	return unscheduled
}

func sortByPriorityThenDeadline(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return tasks[i].Deadline < tasks[j].Deadline
	})
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
