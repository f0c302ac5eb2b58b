package commands

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayTaskHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		handler := NewDelayTaskHandler(newTestCache(), nil)
		_, err := handler.Handle(ctx, DelayTaskCommand{TaskID: "nope"})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("pushes the deadline one day and persists", func(t *testing.T) {
		cache := newTestCache()
		tasks := []domain.Task{
			{ID: "a", Title: "Keep", EstimatedHours: 1, Deadline: "2026-03-10"},
			{ID: "b", Title: "Push", EstimatedHours: 1, Deadline: "2026-03-10"},
		}
		require.NoError(t, cache.SaveTasks(ctx, tasks))

		handler := NewDelayTaskHandler(cache, nil)
		result, err := handler.Handle(ctx, DelayTaskCommand{TaskID: "b"})
		require.NoError(t, err)
		assert.Equal(t, "2026-03-11", result.Task.Deadline)

		stored, err := cache.Tasks(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.Equal(t, "2026-03-10", stored[0].Deadline, "other tasks are untouched")
		assert.Equal(t, "2026-03-11", stored[1].Deadline)

		changes, err := cache.Changes(ctx)
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, domain.ChangeDelete, changes[0].Type)
		assert.Equal(t, "b", changes[0].TaskID)
	})

	t.Run("rolls over a month boundary", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SaveTasks(ctx, []domain.Task{
			{ID: "m", Title: "Month End", EstimatedHours: 1, Deadline: "2026-03-31"},
		}))

		handler := NewDelayTaskHandler(cache, nil)
		result, err := handler.Handle(ctx, DelayTaskCommand{TaskID: "m"})
		require.NoError(t, err)
		assert.Equal(t, "2026-04-01", result.Task.Deadline)
	})

	t.Run("malformed deadline surfaces the parse error", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SaveTasks(ctx, []domain.Task{
			{ID: "x", Title: "Broken", EstimatedHours: 1, Deadline: "someday"},
		}))

		handler := NewDelayTaskHandler(cache, nil)
		_, err := handler.Handle(ctx, DelayTaskCommand{TaskID: "x"})
		assert.Error(t, err)
	})
}
