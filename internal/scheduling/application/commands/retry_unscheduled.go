package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

// RetryUnscheduledCommand runs the "shorten breaks" repair path over the
// whole did-not-fit backlog.
type RetryUnscheduledCommand struct{}

// RetryUnscheduledResult reports the rebuilt timeline and whatever still
// would not fit.
type RetryUnscheduledResult struct {
	Blocks    []domain.Block
	Remaining []domain.Task
}

// RetryUnscheduledHandler handles RetryUnscheduledCommand.
type RetryUnscheduledHandler struct {
	cache  *persistence.CacheRepository
	repair *services.RepairService
	logger *slog.Logger
}

// NewRetryUnscheduledHandler creates a new RetryUnscheduledHandler.
func NewRetryUnscheduledHandler(
	cache *persistence.CacheRepository,
	repair *services.RepairService,
	logger *slog.Logger,
) *RetryUnscheduledHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryUnscheduledHandler{cache: cache, repair: repair, logger: logger}
}

// Handle shrinks breaks to force room for the backlog, persists the rebuilt
// timeline, and records the tasks that still would not fit.
func (h *RetryUnscheduledHandler) Handle(ctx context.Context, _ RetryUnscheduledCommand) (*RetryUnscheduledResult, error) {
	backlog, err := h.cache.UnscheduledTasks(ctx)
	if err != nil {
		return nil, err
	}
	blocks, err := h.cache.Blocks(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := h.cache.Prefs(ctx)
	if err != nil {
		return nil, err
	}

	_, sleep, err := prefs.DayBounds(time.Now())
	if err != nil {
		return nil, err
	}

	final, remaining := h.repair.RetryUnscheduledTasks(backlog, blocks, sleep)

	if err := h.cache.SaveBlocks(ctx, final, prefs.Use12HourClock); err != nil {
		return nil, err
	}
	if err := h.cache.SaveUnscheduledTasks(ctx, remaining); err != nil {
		return nil, err
	}

	h.logger.Info("unscheduled backlog retried",
		"attempted", len(backlog),
		"remaining", len(remaining),
	)
	return &RetryUnscheduledResult{Blocks: final, Remaining: remaining}, nil
}
