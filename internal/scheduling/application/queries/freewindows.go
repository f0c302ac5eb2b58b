package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

// FreeWindowsQuery asks for the open gaps remaining in today's schedule.
type FreeWindowsQuery struct {
	// MinMinutes filters out windows shorter than this, when positive.
	MinMinutes int
}

// FreeWindowsResult lists the gaps between now and sleep.
type FreeWindowsResult struct {
	Windows []domain.Window
}

// FreeWindowsHandler handles FreeWindowsQuery.
type FreeWindowsHandler struct {
	cache *persistence.CacheRepository
}

// NewFreeWindowsHandler creates a new FreeWindowsHandler.
func NewFreeWindowsHandler(cache *persistence.CacheRepository) *FreeWindowsHandler {
	return &FreeWindowsHandler{cache: cache}
}

// Handle scans the cached schedule for uncovered intervals from now until
// sleep.
func (h *FreeWindowsHandler) Handle(ctx context.Context, q FreeWindowsQuery) (*FreeWindowsResult, error) {
	blocks, err := h.cache.Blocks(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := h.cache.Prefs(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	wake, sleep, err := prefs.DayBounds(now)
	if err != nil {
		return nil, err
	}

	windows := domain.FreeWindows(blocks, wake, sleep, now)
	if q.MinMinutes > 0 {
		filtered := windows[:0]
		for _, w := range windows {
			if w.Minutes() >= q.MinMinutes {
				filtered = append(filtered, w)
			}
		}
		windows = filtered
	}

	return &FreeWindowsResult{Windows: windows}, nil
}
