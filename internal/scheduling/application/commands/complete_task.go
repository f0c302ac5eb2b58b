package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

// CompleteTaskCommand marks a stored task as done.
type CompleteTaskCommand struct {
	TaskID string
}

// CompleteTaskResult carries the completed task.
type CompleteTaskResult struct {
	Task domain.Task
}

// CompleteTaskHandler handles CompleteTaskCommand.
type CompleteTaskHandler struct {
	cache  *persistence.CacheRepository
	logger *slog.Logger
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(cache *persistence.CacheRepository, logger *slog.Logger) *CompleteTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompleteTaskHandler{cache: cache, logger: logger}
}

// Handle marks the task completed and stamps the completion date. When the
// last incomplete subtask of a parent completes, the parent completes too.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (*CompleteTaskResult, error) {
	tasks, err := h.cache.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(domain.DeadlineLayout)
	idx := -1
	for i, t := range tasks {
		if t.ID == cmd.TaskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	tasks[idx].Completed = true
	tasks[idx].CompletedOn = today

	if parentID := tasks[idx].ParentID; parentID != "" {
		remaining := 0
		for _, t := range tasks {
			if t.ParentID == parentID && !t.Completed {
				remaining++
			}
		}
		if remaining == 0 {
			for i, t := range tasks {
				if t.ID == parentID {
					tasks[i].Completed = true
					tasks[i].CompletedOn = today
				}
			}
		}
	}

	if err := h.cache.SaveTasks(ctx, tasks); err != nil {
		return nil, err
	}

	h.logger.Info("task completed", "task_id", cmd.TaskID)
	return &CompleteTaskResult{Task: tasks[idx]}, nil
}
