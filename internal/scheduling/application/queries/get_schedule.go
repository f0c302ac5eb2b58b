package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

// GetScheduleQuery reads the cached schedule.
type GetScheduleQuery struct{}

// GetScheduleResult carries the cached timeline. Stale is set when the
// cache was generated on an earlier calendar day and should be regenerated
// rather than displayed.
type GetScheduleResult struct {
	Blocks      []domain.Block
	GeneratedOn string
	Stale       bool
}

// GetScheduleHandler handles GetScheduleQuery.
type GetScheduleHandler struct {
	cache *persistence.CacheRepository
}

// NewGetScheduleHandler creates a new GetScheduleHandler.
func NewGetScheduleHandler(cache *persistence.CacheRepository) *GetScheduleHandler {
	return &GetScheduleHandler{cache: cache}
}

// Handle returns the cached blocks with any journaled edits replayed on
// top, together with a same-day validity check.
func (h *GetScheduleHandler) Handle(ctx context.Context, _ GetScheduleQuery) (*GetScheduleResult, error) {
	blocks, err := h.cache.Blocks(ctx)
	if err != nil {
		return nil, err
	}
	changes, err := h.cache.Changes(ctx)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		blocks = domain.ApplyChanges(blocks, changes)
	}
	generatedOn, err := h.cache.GeneratedOn(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(domain.DeadlineLayout)
	return &GetScheduleResult{
		Blocks:      blocks,
		GeneratedOn: generatedOn,
		Stale:       generatedOn != "" && generatedOn != today,
	}, nil
}
