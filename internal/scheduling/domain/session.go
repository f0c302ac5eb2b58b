package domain

import (
	"fmt"
	"regexp"
)

// Session is one contiguous portion of a task, sized to fit within the
// user's session cap. A short task expands to a single session; longer
// tasks split into ordered, labeled parts.
type Session struct {
	Task            Task
	Title           string
	PartIndex       int
	TotalParts      int
	DurationMinutes int
}

// partLabelPattern detects titles that already carry a part marker, e.g.
// day-sized subtasks of a multi-day parent named "Thesis (Part 2)".
var partLabelPattern = regexp.MustCompile(`(?i)\(Part\b`)

// ExpandSessions splits a task into chunks no longer than the session cap
// (itself floored at 15 minutes). A task fitting in one chunk keeps its
// original title. Split chunks are numbered from 1 and titled with a
// "(Part i)" suffix, except for subtasks and titles that already contain a
// part marker, where compounding labels would mislead.
func ExpandSessions(t Task, sessionCap int) []Session {
	maxChunk := sessionCap
	if maxChunk < MinSessionMinutes {
		maxChunk = MinSessionMinutes
	}

	remaining := t.EstimatedMinutes()
	if remaining <= 0 {
		return nil
	}

	totalParts := (remaining + maxChunk - 1) / maxChunk
	if totalParts < 1 {
		totalParts = 1
	}
	canLabel := !t.IsSubtask() && !partLabelPattern.MatchString(t.Title)

	sessions := make([]Session, 0, totalParts)
	for i := 1; remaining > 0; i++ {
		chunk := remaining
		if chunk > maxChunk {
			chunk = maxChunk
		}
		title := t.Title
		if canLabel && totalParts > 1 {
			title = fmt.Sprintf("%s (Part %d)", t.Title, i)
		}
		sessions = append(sessions, Session{
			Task:            t,
			Title:           title,
			PartIndex:       i,
			TotalParts:      totalParts,
			DurationMinutes: chunk,
		})
		remaining -= chunk
	}
	return sessions
}
