package domain

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority buckets tasks for placement ordering.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps a priority to its sort order. Lower ranks schedule first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Category describes the kind of effort a task demands.
type Category string

const (
	CategoryMental   Category = "mental"
	CategoryPhysical Category = "physical"
	CategoryWork     Category = "work"
	CategorySocial   Category = "social"
)

// DeadlineLayout is the calendar-date format used for task deadlines.
const DeadlineLayout = "2006-01-02"

// partSeparator joins a multi-day task's base id to its part index.
const partSeparator = "-part"

// Task is a unit of work as supplied by the task-management surface. The
// scheduler treats tasks as immutable snapshots and only ever produces
// blocks referencing their ids.
type Task struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Completed      bool     `json:"completed"`
	Priority       Priority `json:"priority"`
	Deadline       string   `json:"deadline"`
	EstimatedHours float64  `json:"estimatedTime"`
	Category       Category `json:"type"`

	// Multi-day task hierarchy. A task with IsParent set is a container
	// that is never scheduled itself; its day-sized subtasks carry a
	// ParentID and part numbering.
	ParentID   string `json:"parentId,omitempty"`
	IsParent   bool   `json:"isParent,omitempty"`
	PartIndex  int    `json:"partIndex,omitempty"`
	TotalParts int    `json:"totalParts,omitempty"`
	ShowToday  bool   `json:"showToday,omitempty"`
	Locked     bool   `json:"locked,omitempty"`

	CompletedOn string `json:"completedOn,omitempty"`
}

// NewTaskID mints an identifier for a task created locally.
func NewTaskID() string {
	return uuid.NewString()
}

// BaseID strips the "-part<i>" suffix from a session-split id, yielding the
// id minutes are accounted against.
func (t Task) BaseID() string {
	return BaseTaskID(t.ID)
}

// BaseTaskID strips the multi-day part suffix from any task or block id.
func BaseTaskID(id string) string {
	if idx := strings.Index(id, partSeparator); idx >= 0 {
		return id[:idx]
	}
	return id
}

// EstimatedMinutes converts the fractional-hour estimate to whole minutes.
func (t Task) EstimatedMinutes() int {
	return int(math.Round(t.EstimatedHours * 60))
}

// DeadlineDate parses the task deadline as a calendar date.
func (t Task) DeadlineDate() (time.Time, error) {
	return time.Parse(DeadlineLayout, t.Deadline)
}

// IsSubtask reports whether the task is a day-sized child of a multi-day
// parent.
func (t Task) IsSubtask() bool {
	return t.ParentID != ""
}

// EligibleForDay reports whether the task is a candidate for placement on
// the day identified by todayISO (YYYY-MM-DD). Parent containers and
// completed tasks are never candidates; subtasks additionally need their
// ShowToday flag and must not be locked. The deadline must be today or
// later.
func (t Task) EligibleForDay(todayISO string) bool {
	if t.IsParent || t.Completed {
		return false
	}
	if t.IsSubtask() && (!t.ShowToday || t.Locked) {
		return false
	}
	deadline := t.Deadline
	if len(deadline) > len(DeadlineLayout) {
		deadline = deadline[:len(DeadlineLayout)]
	}
	return deadline >= todayISO
}

// IsOverdueOn reports whether a plain, incomplete task's deadline has
// already passed relative to todayISO. Overdue tasks are excluded from
// placement but surfaced separately so callers can offer remediation.
func (t Task) IsOverdueOn(todayISO string) bool {
	if t.IsParent || t.Completed || t.Deadline == "" {
		return false
	}
	deadline := t.Deadline
	if len(deadline) > len(DeadlineLayout) {
		deadline = deadline[:len(DeadlineLayout)]
	}
	return deadline < todayISO
}

// DelayByOneDay returns a copy of the task with its deadline advanced by
// exactly one calendar day. Every other field is untouched; the caller is
// expected to re-run scheduling afterward.
func DelayByOneDay(t Task) (Task, error) {
	deadline, err := t.DeadlineDate()
	if err != nil {
		return Task{}, err
	}
	delayed := t
	delayed.Deadline = deadline.AddDate(0, 0, 1).Format(DeadlineLayout)
	return delayed, nil
}

// CanonicalSubtask resolves the concrete unit a scheduling attempt should
// target. Subtasks and plain tasks resolve to themselves. A parent container
// resolves to its first incomplete today-visible subtask, falling back to
// the first incomplete subtask, then the last subtask, then the parent
// itself when it has no children at all.
func CanonicalSubtask(t Task, all []Task) Task {
	if t.IsSubtask() || !t.IsParent {
		return t
	}

	subs := make([]Task, 0)
	for _, candidate := range all {
		if candidate.ParentID == t.ID {
			subs = append(subs, candidate)
		}
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].PartIndex < subs[j].PartIndex
	})

	for _, st := range subs {
		if !st.Completed && st.ShowToday {
			return st
		}
	}
	for _, st := range subs {
		if !st.Completed {
			return st
		}
	}
	if len(subs) > 0 {
		return subs[len(subs)-1]
	}
	return t
}
