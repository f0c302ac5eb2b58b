package queries

import (
	"context"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

// ListTasksQuery reads the stored task list.
type ListTasksQuery struct {
	// IncludeCompleted keeps completed tasks in the result.
	IncludeCompleted bool
}

// ListTasksResult carries the matching tasks.
type ListTasksResult struct {
	Tasks []domain.Task
}

// ListTasksHandler handles ListTasksQuery.
type ListTasksHandler struct {
	cache *persistence.CacheRepository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(cache *persistence.CacheRepository) *ListTasksHandler {
	return &ListTasksHandler{cache: cache}
}

// Handle returns the stored tasks, filtering out completed ones unless asked.
func (h *ListTasksHandler) Handle(ctx context.Context, q ListTasksQuery) (*ListTasksResult, error) {
	tasks, err := h.cache.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	if q.IncludeCompleted {
		return &ListTasksResult{Tasks: tasks}, nil
	}

	open := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			open = append(open, t)
		}
	}
	return &ListTasksResult{Tasks: open}, nil
}
