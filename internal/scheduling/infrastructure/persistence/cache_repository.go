// Package persistence maps the scheduler's snapshots onto the key-value
// store: the generated block timeline, its generation stamp, the
// unscheduled backlog, the task list, preferences, and the change journal.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayflow/internal/shared/infrastructure/store"
)

// Store keys. Names match the documents the original data set was written
// under, so an existing store keeps working.
const (
	KeyAutoScheduleCache = "autoScheduleCache"
	KeyGeneratedOn       = "autoScheduleGeneratedOn"
	KeyUnscheduledTasks  = "unscheduledTasksCache"
	KeyTasks             = "tasks"
	KeySchedulePrefs     = "schedulePrefs"
	KeyScheduleChanges   = "scheduleChanges"
)

// blockRecord is the wire form of a block: concrete timestamps plus clock
// strings derived at this boundary for display-oriented consumers.
type blockRecord struct {
	Title     string `json:"title"`
	TaskID    string `json:"taskId,omitempty"`
	Type      string `json:"type"`
	Start     string `json:"start"`
	End       string `json:"end"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Manual    bool   `json:"manual,omitempty"`
}

// CacheRepository reads and writes scheduler state through the injected
// store, keeping the core free of any ambient key-value access.
type CacheRepository struct {
	store store.Store
}

// NewCacheRepository creates a repository over the given store.
func NewCacheRepository(s store.Store) *CacheRepository {
	return &CacheRepository{store: s}
}

// Blocks loads the cached schedule, rehydrating timestamps from their
// serialized form. A missing cache yields an empty list.
func (r *CacheRepository) Blocks(ctx context.Context) ([]domain.Block, error) {
	raw, found, err := r.store.Get(ctx, KeyAutoScheduleCache)
	if err != nil {
		return nil, fmt.Errorf("reading schedule cache: %w", err)
	}
	if !found {
		return nil, nil
	}

	var records []blockRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding schedule cache: %w", err)
	}

	blocks := make([]domain.Block, 0, len(records))
	for _, rec := range records {
		start, err := time.Parse(time.RFC3339, rec.StartDate)
		if err != nil {
			return nil, fmt.Errorf("decoding block start %q: %w", rec.StartDate, err)
		}
		end, err := time.Parse(time.RFC3339, rec.EndDate)
		if err != nil {
			return nil, fmt.Errorf("decoding block end %q: %w", rec.EndDate, err)
		}
		blocks = append(blocks, domain.Block{
			Title:  rec.Title,
			TaskID: rec.TaskID,
			Type:   domain.BlockType(rec.Type),
			Start:  start,
			End:    end,
			Manual: rec.Manual,
		})
	}
	return blocks, nil
}

// SaveBlocks overwrites the cached schedule and stamps the generation date.
func (r *CacheRepository) SaveBlocks(ctx context.Context, blocks []domain.Block, use12Hour bool) error {
	records := make([]blockRecord, 0, len(blocks))
	for _, b := range blocks {
		records = append(records, blockRecord{
			Title:     b.Title,
			TaskID:    b.TaskID,
			Type:      string(b.Type),
			Start:     domain.FormatClock(b.Start, use12Hour),
			End:       domain.FormatClock(b.End, use12Hour),
			StartDate: b.Start.Format(time.RFC3339),
			EndDate:   b.End.Format(time.RFC3339),
			Manual:    b.Manual,
		})
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding schedule cache: %w", err)
	}
	if err := r.store.Set(ctx, KeyAutoScheduleCache, raw); err != nil {
		return fmt.Errorf("writing schedule cache: %w", err)
	}

	stamp, err := json.Marshal(time.Now().Format(domain.DeadlineLayout))
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, KeyGeneratedOn, stamp); err != nil {
		return fmt.Errorf("writing generation stamp: %w", err)
	}
	return nil
}

// GeneratedOn returns the date stamp of the last generation, or "" when the
// cache has never been written.
func (r *CacheRepository) GeneratedOn(ctx context.Context) (string, error) {
	raw, found, err := r.store.Get(ctx, KeyGeneratedOn)
	if err != nil || !found {
		return "", err
	}
	var stamp string
	if err := json.Unmarshal(raw, &stamp); err != nil {
		return "", fmt.Errorf("decoding generation stamp: %w", err)
	}
	return stamp, nil
}

// UnscheduledTasks loads the backlog of tasks that did not fit.
func (r *CacheRepository) UnscheduledTasks(ctx context.Context) ([]domain.Task, error) {
	return r.taskList(ctx, KeyUnscheduledTasks)
}

// SaveUnscheduledTasks overwrites the did-not-fit backlog.
func (r *CacheRepository) SaveUnscheduledTasks(ctx context.Context, tasks []domain.Task) error {
	return r.saveTaskList(ctx, KeyUnscheduledTasks, tasks)
}

// Tasks loads the full task list.
func (r *CacheRepository) Tasks(ctx context.Context) ([]domain.Task, error) {
	return r.taskList(ctx, KeyTasks)
}

// SaveTasks overwrites the full task list.
func (r *CacheRepository) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	return r.saveTaskList(ctx, KeyTasks, tasks)
}

// Prefs loads the day-shape preferences, falling back to defaults when none
// are stored.
func (r *CacheRepository) Prefs(ctx context.Context) (domain.SchedulePrefs, error) {
	raw, found, err := r.store.Get(ctx, KeySchedulePrefs)
	if err != nil {
		return domain.SchedulePrefs{}, fmt.Errorf("reading preferences: %w", err)
	}
	if !found {
		return domain.DefaultPrefs(), nil
	}
	var prefs domain.SchedulePrefs
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return domain.SchedulePrefs{}, fmt.Errorf("decoding preferences: %w", err)
	}
	return prefs, nil
}

// SavePrefs overwrites the day-shape preferences.
func (r *CacheRepository) SavePrefs(ctx context.Context, prefs domain.SchedulePrefs) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	return r.store.Set(ctx, KeySchedulePrefs, raw)
}

// Changes loads the schedule change journal.
func (r *CacheRepository) Changes(ctx context.Context) ([]domain.Change, error) {
	raw, found, err := r.store.Get(ctx, KeyScheduleChanges)
	if err != nil || !found {
		return nil, err
	}
	var changes []domain.Change
	if err := json.Unmarshal(raw, &changes); err != nil {
		return nil, fmt.Errorf("decoding change journal: %w", err)
	}
	return changes, nil
}

// AppendChange records one localized edit in the journal.
func (r *CacheRepository) AppendChange(ctx context.Context, change domain.Change) error {
	changes, err := r.Changes(ctx)
	if err != nil {
		return err
	}
	changes = append(changes, change)
	raw, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("encoding change journal: %w", err)
	}
	return r.store.Set(ctx, KeyScheduleChanges, raw)
}

// ClearChanges empties the change journal, typically after a full
// regeneration absorbs it.
func (r *CacheRepository) ClearChanges(ctx context.Context) error {
	return r.store.Delete(ctx, KeyScheduleChanges)
}

func (r *CacheRepository) taskList(ctx context.Context, key string) ([]domain.Task, error) {
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	if !found {
		return nil, nil
	}
	var tasks []domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return tasks, nil
}

func (r *CacheRepository) saveTaskList(ctx context.Context, key string, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return r.store.Set(ctx, key, raw)
}
