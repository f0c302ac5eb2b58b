package queries

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/dayflow/internal/shared/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache() *persistence.CacheRepository {
	return persistence.NewCacheRepository(store.NewMemory())
}

func TestListTasksHandler(t *testing.T) {
	ctx := context.Background()

	tasks := []domain.Task{
		{ID: "a", Title: "Open", EstimatedHours: 1, Deadline: "2026-03-10"},
		{ID: "b", Title: "Done", EstimatedHours: 1, Deadline: "2026-03-09", Completed: true},
		{ID: "c", Title: "Also Open", EstimatedHours: 2, Deadline: "2026-03-11"},
	}

	t.Run("hides completed tasks by default", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SaveTasks(ctx, tasks))

		result, err := NewListTasksHandler(cache).Handle(ctx, ListTasksQuery{})
		require.NoError(t, err)
		require.Len(t, result.Tasks, 2)
		assert.Equal(t, "a", result.Tasks[0].ID)
		assert.Equal(t, "c", result.Tasks[1].ID)
	})

	t.Run("includes completed tasks on request", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SaveTasks(ctx, tasks))

		result, err := NewListTasksHandler(cache).Handle(ctx, ListTasksQuery{IncludeCompleted: true})
		require.NoError(t, err)
		assert.Len(t, result.Tasks, 3)
	})

	t.Run("empty store yields an empty list", func(t *testing.T) {
		result, err := NewListTasksHandler(newTestCache()).Handle(ctx, ListTasksQuery{})
		require.NoError(t, err)
		assert.Empty(t, result.Tasks)
	})
}
