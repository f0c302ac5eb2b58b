package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

// RetryTaskCommand asks the repair path to fit one task into the existing
// schedule without a full recompute.
type RetryTaskCommand struct {
	Task domain.Task
}

// RetryTaskResult reports the attempt. On failure Blocks is the untouched
// cache, so nothing needs undoing before a different remediation.
type RetryTaskResult struct {
	Blocks  []domain.Block
	Success bool
}

// RetryTaskHandler handles RetryTaskCommand.
type RetryTaskHandler struct {
	cache  *persistence.CacheRepository
	repair *services.RepairService
	logger *slog.Logger
}

// NewRetryTaskHandler creates a new RetryTaskHandler.
func NewRetryTaskHandler(
	cache *persistence.CacheRepository,
	repair *services.RepairService,
	logger *slog.Logger,
) *RetryTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryTaskHandler{cache: cache, repair: repair, logger: logger}
}

// Handle attempts the placement. State is only written on success; a failed
// attempt leaves both the schedule cache and the unscheduled backlog as
// they were.
func (h *RetryTaskHandler) Handle(ctx context.Context, cmd RetryTaskCommand) (*RetryTaskResult, error) {
	allTasks, err := h.cache.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	cached, err := h.cache.Blocks(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := h.cache.Prefs(ctx)
	if err != nil {
		return nil, err
	}

	outcome, err := h.repair.AttemptToScheduleTask(cmd.Task, allTasks, cached, prefs)
	if err != nil {
		return nil, err
	}

	if !outcome.Success {
		h.logger.Info("task does not fit before sleep", "task_id", cmd.Task.ID, "title", cmd.Task.Title)
		return &RetryTaskResult{Blocks: outcome.Blocks, Success: false}, nil
	}

	if outcome.Changed {
		if err := h.cache.SaveBlocks(ctx, outcome.Blocks, prefs.Use12HourClock); err != nil {
			return nil, err
		}
	}
	if err := h.pruneUnscheduled(ctx, outcome.Resolved); err != nil {
		return nil, err
	}

	h.logger.Info("task scheduled via repair",
		"task_id", outcome.Resolved.ID,
		"changed", outcome.Changed,
	)
	return &RetryTaskResult{Blocks: outcome.Blocks, Success: true}, nil
}

// pruneUnscheduled drops the placed subtask (and its parent entry, if the
// backlog recorded the parent) from the did-not-fit backlog.
func (h *RetryTaskHandler) pruneUnscheduled(ctx context.Context, sub domain.Task) error {
	backlog, err := h.cache.UnscheduledTasks(ctx)
	if err != nil {
		return err
	}
	remaining := make([]domain.Task, 0, len(backlog))
	for _, t := range backlog {
		if t.ID == sub.ID {
			continue
		}
		if sub.ParentID != "" && t.ID == sub.ParentID {
			continue
		}
		remaining = append(remaining, t)
	}
	return h.cache.SaveUnscheduledTasks(ctx, remaining)
}
