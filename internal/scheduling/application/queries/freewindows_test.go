package queries

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeWindowsHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("windows respect the minimum length filter", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SavePrefs(ctx, domain.DefaultPrefs()))

		result, err := NewFreeWindowsHandler(cache).Handle(ctx, FreeWindowsQuery{MinMinutes: 30})
		require.NoError(t, err)
		for _, w := range result.Windows {
			assert.GreaterOrEqual(t, w.Minutes(), 30)
			assert.True(t, w.End.After(w.Start))
		}
	})

	t.Run("malformed preferences fail the query", func(t *testing.T) {
		cache := newTestCache()
		require.NoError(t, cache.SavePrefs(ctx, domain.SchedulePrefs{WakeUp: "dawn", Sleep: "23:00"}))

		_, err := NewFreeWindowsHandler(cache).Handle(ctx, FreeWindowsQuery{})
		assert.ErrorIs(t, err, domain.ErrInvalidClockTime)
	})
}
