package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

// GenerateScheduleCommand requests a full regeneration of today's
// timeline. Tasks and Prefs override the stored snapshots when non-nil,
// which keeps the handler testable and lets callers schedule hypothetical
// inputs.
type GenerateScheduleCommand struct {
	Tasks []domain.Task
	Prefs *domain.SchedulePrefs
}

// GenerateScheduleResult is the regeneration outcome.
type GenerateScheduleResult struct {
	Blocks      []domain.Block
	Unscheduled []domain.Task
	Overdue     []domain.Task

	// Regenerated is false when the new timeline matched the cached one
	// and no write was needed.
	Regenerated bool
}

// GenerateScheduleHandler handles GenerateScheduleCommand.
type GenerateScheduleHandler struct {
	cache   *persistence.CacheRepository
	planner *services.Planner
	logger  *slog.Logger
}

// NewGenerateScheduleHandler creates a new GenerateScheduleHandler.
func NewGenerateScheduleHandler(
	cache *persistence.CacheRepository,
	planner *services.Planner,
	logger *slog.Logger,
) *GenerateScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateScheduleHandler{cache: cache, planner: planner, logger: logger}
}

// Handle runs a full scheduling pass and persists the resulting snapshot.
// Re-invoking it with unchanged inputs produces the same block set and
// skips the redundant write.
func (h *GenerateScheduleHandler) Handle(ctx context.Context, cmd GenerateScheduleCommand) (*GenerateScheduleResult, error) {
	start := time.Now()

	tasks := cmd.Tasks
	if tasks == nil {
		loaded, err := h.cache.Tasks(ctx)
		if err != nil {
			return nil, err
		}
		tasks = loaded
	}

	var prefs domain.SchedulePrefs
	if cmd.Prefs != nil {
		prefs = *cmd.Prefs
	} else {
		loaded, err := h.cache.Prefs(ctx)
		if err != nil {
			return nil, err
		}
		prefs = loaded
	}

	cached, err := h.cache.Blocks(ctx)
	if err != nil {
		return nil, err
	}
	changes, err := h.cache.Changes(ctx)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		cached = domain.ApplyChanges(cached, changes)
	}

	plan, err := h.planner.Generate(tasks, prefs, cached)
	if err != nil {
		return nil, err
	}

	regenerated := !sameBlockSet(cached, plan.Blocks)
	if regenerated {
		if err := h.cache.SaveBlocks(ctx, plan.Blocks, prefs.Use12HourClock); err != nil {
			return nil, err
		}
	}
	if err := h.cache.SaveUnscheduledTasks(ctx, plan.Unscheduled); err != nil {
		return nil, err
	}
	// The full recompute absorbs any journaled edits.
	if err := h.cache.ClearChanges(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("schedule generated",
		"blocks", len(plan.Blocks),
		"unscheduled", len(plan.Unscheduled),
		"overdue", len(plan.Overdue),
		"regenerated", regenerated,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &GenerateScheduleResult{
		Blocks:      plan.Blocks,
		Unscheduled: plan.Unscheduled,
		Overdue:     plan.Overdue,
		Regenerated: regenerated,
	}, nil
}

// sameBlockSet compares two timelines by content signature, so callers can
// detect a no-op regeneration without relying on object identity.
func sameBlockSet(a, b []domain.Block) bool {
	if len(a) != len(b) {
		return false
	}
	sigA, errA := json.Marshal(a)
	sigB, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(sigA, sigB)
}
