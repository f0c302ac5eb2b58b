package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

var (
	// ErrEmptyTitle is returned when a new task has no title.
	ErrEmptyTitle = errors.New("task title is required")
	// ErrInvalidEstimate is returned when the effort estimate is not positive.
	ErrInvalidEstimate = errors.New("estimated hours must be positive")
	// ErrInvalidDeadline is returned when the deadline is not a YYYY-MM-DD date.
	ErrInvalidDeadline = errors.New("deadline must be a YYYY-MM-DD date")
)

// AddTaskCommand creates a task in the stored task list.
type AddTaskCommand struct {
	Title          string
	Priority       domain.Priority
	Category       domain.Category
	Deadline       string
	EstimatedHours float64
}

// AddTaskResult carries the created task.
type AddTaskResult struct {
	Task domain.Task
}

// AddTaskHandler handles AddTaskCommand.
type AddTaskHandler struct {
	cache  *persistence.CacheRepository
	logger *slog.Logger
}

// NewAddTaskHandler creates a new AddTaskHandler.
func NewAddTaskHandler(cache *persistence.CacheRepository, logger *slog.Logger) *AddTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AddTaskHandler{cache: cache, logger: logger}
}

// Handle validates the input, appends the new task to the stored list, and
// returns it. Defaults: medium priority, work category, deadline today.
func (h *AddTaskHandler) Handle(ctx context.Context, cmd AddTaskCommand) (*AddTaskResult, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if cmd.EstimatedHours <= 0 {
		return nil, ErrInvalidEstimate
	}

	priority := cmd.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	category := cmd.Category
	if category == "" {
		category = domain.CategoryWork
	}
	deadline := cmd.Deadline
	if deadline == "" {
		deadline = time.Now().Format(domain.DeadlineLayout)
	} else if _, err := time.Parse(domain.DeadlineLayout, deadline); err != nil {
		return nil, ErrInvalidDeadline
	}

	task := domain.Task{
		ID:             domain.NewTaskID(),
		Title:          title,
		Priority:       priority,
		Category:       category,
		Deadline:       deadline,
		EstimatedHours: cmd.EstimatedHours,
	}

	tasks, err := h.cache.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, task)
	if err := h.cache.SaveTasks(ctx, tasks); err != nil {
		return nil, err
	}

	h.logger.Info("task added", "task_id", task.ID, "title", task.Title)
	return &AddTaskResult{Task: task}, nil
}
