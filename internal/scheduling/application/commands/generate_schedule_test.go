package commands

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/dayflow/internal/shared/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func fixedNow(hour, min int) func() time.Time {
	return func() time.Time { return at(hour, min) }
}

func newTestCache() *persistence.CacheRepository {
	return persistence.NewCacheRepository(store.NewMemory())
}

func TestGenerateScheduleHandler(t *testing.T) {
	ctx := context.Background()

	task := domain.Task{
		ID:             "deep",
		Title:          "Deep Work",
		Priority:       domain.PriorityHigh,
		Deadline:       "2026-03-10",
		EstimatedHours: 1,
	}
	prefs := domain.SchedulePrefs{WakeUp: "07:00", Sleep: "23:00", MaxSessionMinutes: 120}

	t.Run("generates and persists the timeline", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SaveTasks(ctx, []domain.Task{task}))
		require.NoError(t, cache.SavePrefs(ctx, prefs))

		handler := NewGenerateScheduleHandler(cache, services.NewPlanner(fixedNow(8, 0)), nil)

		result, err := handler.Handle(ctx, GenerateScheduleCommand{})
		require.NoError(t, err)
		assert.True(t, result.Regenerated)
		assert.Empty(t, result.Unscheduled)
		assert.Empty(t, result.Overdue)

		var placed *domain.Block
		for i := range result.Blocks {
			if result.Blocks[i].TaskID == "deep" {
				placed = &result.Blocks[i]
			}
		}
		require.NotNil(t, placed)
		assert.Equal(t, at(8, 0), placed.Start)
		assert.Equal(t, at(9, 0), placed.End)

		stored, err := cache.Blocks(ctx)
		require.NoError(t, err)
		assert.Len(t, stored, len(result.Blocks))
	})

	t.Run("rerun with unchanged inputs skips the write", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SaveTasks(ctx, []domain.Task{task}))
		require.NoError(t, cache.SavePrefs(ctx, prefs))

		handler := NewGenerateScheduleHandler(cache, services.NewPlanner(fixedNow(8, 0)), nil)

		first, err := handler.Handle(ctx, GenerateScheduleCommand{})
		require.NoError(t, err)
		require.True(t, first.Regenerated)

		second, err := handler.Handle(ctx, GenerateScheduleCommand{})
		require.NoError(t, err)
		assert.False(t, second.Regenerated)
		assert.Equal(t, first.Blocks, second.Blocks)
	})

	t.Run("records the backlog when a task does not fit", func(t *testing.T) {
		cache := newTestCache()
		huge := domain.Task{
			ID:             "huge",
			Title:          "Everything At Once",
			Priority:       domain.PriorityHigh,
			Deadline:       "2026-03-10",
			EstimatedHours: 20,
		}
		require.NoError(t, cache.SaveTasks(ctx, []domain.Task{huge}))
		require.NoError(t, cache.SavePrefs(ctx, prefs))

		handler := NewGenerateScheduleHandler(cache, services.NewPlanner(fixedNow(8, 0)), nil)

		result, err := handler.Handle(ctx, GenerateScheduleCommand{})
		require.NoError(t, err)
		require.Len(t, result.Unscheduled, 1)
		assert.Equal(t, "huge", result.Unscheduled[0].ID)

		backlog, err := cache.UnscheduledTasks(ctx)
		require.NoError(t, err)
		require.Len(t, backlog, 1)
		assert.Equal(t, "huge", backlog[0].ID)
	})

	t.Run("a full pass absorbs the change journal", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SaveTasks(ctx, []domain.Task{task}))
		require.NoError(t, cache.SavePrefs(ctx, prefs))
		require.NoError(t, cache.AppendChange(ctx, domain.Change{Type: domain.ChangeDelete, TaskID: "deep"}))

		handler := NewGenerateScheduleHandler(cache, services.NewPlanner(fixedNow(8, 0)), nil)
		_, err := handler.Handle(ctx, GenerateScheduleCommand{})
		require.NoError(t, err)

		changes, err := cache.Changes(ctx)
		require.NoError(t, err)
		assert.Empty(t, changes)
	})

	t.Run("explicit tasks override the stored list", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SaveTasks(ctx, []domain.Task{task}))
		require.NoError(t, cache.SavePrefs(ctx, prefs))

		handler := NewGenerateScheduleHandler(cache, services.NewPlanner(fixedNow(8, 0)), nil)

		other := domain.Task{ID: "other", Title: "Other", Deadline: "2026-03-10", EstimatedHours: 0.5}
		result, err := handler.Handle(ctx, GenerateScheduleCommand{Tasks: []domain.Task{other}})
		require.NoError(t, err)

		for _, b := range result.Blocks {
			assert.NotEqual(t, "deep", b.TaskID)
		}
	})

	t.Run("malformed preferences fail the pass", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SaveTasks(ctx, []domain.Task{task}))

		handler := NewGenerateScheduleHandler(cache, services.NewPlanner(fixedNow(8, 0)), nil)

		bad := domain.SchedulePrefs{WakeUp: "late", Sleep: "23:00"}
		_, err := handler.Handle(ctx, GenerateScheduleCommand{Prefs: &bad})
		assert.ErrorIs(t, err, domain.ErrInvalidClockTime)
	})
}
