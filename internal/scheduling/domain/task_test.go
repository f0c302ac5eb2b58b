package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 1, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 3, PriorityLow.Rank())
	assert.Equal(t, 4, Priority("").Rank())
	assert.Equal(t, 4, Priority("urgent").Rank())
}

func TestBaseTaskID(t *testing.T) {
	assert.Equal(t, "abc", BaseTaskID("abc"))
	assert.Equal(t, "abc", BaseTaskID("abc-part2"))
	assert.Equal(t, "abc", BaseTaskID("abc-part10"))
	assert.Equal(t, "", BaseTaskID(""))

	task := Task{ID: "xyz-part3"}
	assert.Equal(t, "xyz", task.BaseID())
}

func TestEstimatedMinutes(t *testing.T) {
	assert.Equal(t, 90, Task{EstimatedHours: 1.5}.EstimatedMinutes())
	assert.Equal(t, 300, Task{EstimatedHours: 5}.EstimatedMinutes())
	assert.Equal(t, 20, Task{EstimatedHours: 0.33}.EstimatedMinutes())
	assert.Equal(t, 0, Task{}.EstimatedMinutes())
}

func TestEligibleForDay(t *testing.T) {
	today := "2026-03-10"

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{
			name: "plain task due today",
			task: Task{ID: "a", Deadline: today},
			want: true,
		},
		{
			name: "plain task due later",
			task: Task{ID: "a", Deadline: "2026-03-12"},
			want: true,
		},
		{
			name: "deadline already passed",
			task: Task{ID: "a", Deadline: "2026-03-09"},
			want: false,
		},
		{
			name: "completed task",
			task: Task{ID: "a", Deadline: today, Completed: true},
			want: false,
		},
		{
			name: "parent container",
			task: Task{ID: "a", Deadline: today, IsParent: true},
			want: false,
		},
		{
			name: "subtask visible today",
			task: Task{ID: "a-part1", ParentID: "a", Deadline: today, ShowToday: true},
			want: true,
		},
		{
			name: "subtask hidden today",
			task: Task{ID: "a-part1", ParentID: "a", Deadline: today},
			want: false,
		},
		{
			name: "locked subtask",
			task: Task{ID: "a-part1", ParentID: "a", Deadline: today, ShowToday: true, Locked: true},
			want: false,
		},
		{
			name: "timestamped deadline compares on date part",
			task: Task{ID: "a", Deadline: "2026-03-10T18:00:00"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.EligibleForDay(today))
		})
	}
}

func TestIsOverdueOn(t *testing.T) {
	today := "2026-03-10"

	assert.True(t, Task{ID: "a", Deadline: "2026-03-09"}.IsOverdueOn(today))
	assert.False(t, Task{ID: "a", Deadline: today}.IsOverdueOn(today))
	assert.False(t, Task{ID: "a", Deadline: "2026-03-09", Completed: true}.IsOverdueOn(today))
	assert.False(t, Task{ID: "a", Deadline: "2026-03-09", IsParent: true}.IsOverdueOn(today))
	assert.False(t, Task{ID: "a"}.IsOverdueOn(today), "missing deadline is never overdue")
}

func TestDelayByOneDay(t *testing.T) {
	t.Run("advances deadline exactly one day", func(t *testing.T) {
		task := Task{ID: "a", Title: "Taxes", Deadline: "2026-03-10", EstimatedHours: 2}
		delayed, err := DelayByOneDay(task)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-11", delayed.Deadline)
		assert.Equal(t, task.Title, delayed.Title)
		assert.Equal(t, task.EstimatedHours, delayed.EstimatedHours)
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		delayed, err := DelayByOneDay(Task{ID: "a", Deadline: "2026-03-31"})
		require.NoError(t, err)
		assert.Equal(t, "2026-04-01", delayed.Deadline)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		task := Task{ID: "a", Deadline: "2026-03-10"}
		_, err := DelayByOneDay(task)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-10", task.Deadline)
	})

	t.Run("rejects malformed deadline", func(t *testing.T) {
		_, err := DelayByOneDay(Task{ID: "a", Deadline: "soon"})
		assert.Error(t, err)
	})
}

func TestCanonicalSubtask(t *testing.T) {
	parent := Task{ID: "p", Title: "Thesis", IsParent: true}
	sub1 := Task{ID: "p-part1", ParentID: "p", PartIndex: 1, Completed: true}
	sub2 := Task{ID: "p-part2", ParentID: "p", PartIndex: 2, ShowToday: true}
	sub3 := Task{ID: "p-part3", ParentID: "p", PartIndex: 3}

	t.Run("plain task resolves to itself", func(t *testing.T) {
		plain := Task{ID: "t"}
		assert.Equal(t, plain, CanonicalSubtask(plain, []Task{plain, parent}))
	})

	t.Run("subtask resolves to itself", func(t *testing.T) {
		assert.Equal(t, sub3, CanonicalSubtask(sub3, []Task{parent, sub1, sub2, sub3}))
	})

	t.Run("parent prefers first incomplete today-visible subtask", func(t *testing.T) {
		got := CanonicalSubtask(parent, []Task{parent, sub1, sub2, sub3})
		assert.Equal(t, sub2.ID, got.ID)
	})

	t.Run("falls back to first incomplete subtask", func(t *testing.T) {
		hidden2 := sub2
		hidden2.ShowToday = false
		got := CanonicalSubtask(parent, []Task{parent, sub1, hidden2, sub3})
		assert.Equal(t, hidden2.ID, got.ID)
	})

	t.Run("falls back to last subtask when all complete", func(t *testing.T) {
		done2, done3 := sub2, sub3
		done2.Completed = true
		done3.Completed = true
		got := CanonicalSubtask(parent, []Task{parent, sub1, done2, done3})
		assert.Equal(t, done3.ID, got.ID)
	})

	t.Run("childless parent resolves to itself", func(t *testing.T) {
		got := CanonicalSubtask(parent, []Task{parent})
		assert.Equal(t, parent.ID, got.ID)
	})
}
