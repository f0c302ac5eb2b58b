package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

// ErrTaskNotFound is returned when a delay targets an unknown task id.
var ErrTaskNotFound = errors.New("task not found")

// DelayTaskCommand pushes a task's deadline to the next calendar day.
type DelayTaskCommand struct {
	TaskID string
}

// DelayTaskResult carries the updated task. The cached block list is not
// rewritten; a delete patch in the change journal hides the task's blocks
// until the next full regeneration absorbs the new deadline.
type DelayTaskResult struct {
	Task domain.Task
}

// DelayTaskHandler handles DelayTaskCommand.
type DelayTaskHandler struct {
	cache  *persistence.CacheRepository
	logger *slog.Logger
}

// NewDelayTaskHandler creates a new DelayTaskHandler.
func NewDelayTaskHandler(cache *persistence.CacheRepository, logger *slog.Logger) *DelayTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DelayTaskHandler{cache: cache, logger: logger}
}

// Handle advances the task's deadline by exactly one day and persists the
// updated task list.
func (h *DelayTaskHandler) Handle(ctx context.Context, cmd DelayTaskCommand) (*DelayTaskResult, error) {
	tasks, err := h.cache.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	for i, t := range tasks {
		if t.ID != cmd.TaskID {
			continue
		}
		delayed, err := domain.DelayByOneDay(t)
		if err != nil {
			return nil, err
		}
		tasks[i] = delayed
		if err := h.cache.SaveTasks(ctx, tasks); err != nil {
			return nil, err
		}
		change := domain.Change{Type: domain.ChangeDelete, TaskID: t.ID}
		if err := h.cache.AppendChange(ctx, change); err != nil {
			return nil, err
		}
		h.logger.Info("task delayed one day", "task_id", t.ID, "deadline", delayed.Deadline)
		return &DelayTaskResult{Task: delayed}, nil
	}

	return nil, ErrTaskNotFound
}
