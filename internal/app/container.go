// Package app wires application dependencies together.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/dayflow/internal/shared/infrastructure/store"
	"github.com/felixgeelhaar/dayflow/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Persistence
	Store store.Store
	Cache *persistence.CacheRepository

	// Services
	Planner *services.Planner
	Repair  *services.RepairService

	// Command Handlers
	GenerateScheduleHandler *commands.GenerateScheduleHandler
	RetryTaskHandler        *commands.RetryTaskHandler
	RetryUnscheduledHandler *commands.RetryUnscheduledHandler
	DelayTaskHandler        *commands.DelayTaskHandler
	AddTaskHandler          *commands.AddTaskHandler
	CompleteTaskHandler     *commands.CompleteTaskHandler

	// Query Handlers
	GetScheduleHandler *queries.GetScheduleHandler
	FreeWindowsHandler *queries.FreeWindowsHandler
	ListTasksHandler   *queries.ListTasksHandler
}

// NewContainer creates a container with all dependencies wired.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	st, err := store.New(ctx, store.Config{
		Driver:      cfg.StoreDriver,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Info("store opened", "driver", cfg.StoreDriver)

	cache := persistence.NewCacheRepository(st)
	planner := services.NewPlanner(nil)
	repair := services.NewRepairService(nil, logger)

	return &Container{
		Config: cfg,
		Logger: logger,

		Store: st,
		Cache: cache,

		Planner: planner,
		Repair:  repair,

		GenerateScheduleHandler: commands.NewGenerateScheduleHandler(cache, planner, logger),
		RetryTaskHandler:        commands.NewRetryTaskHandler(cache, repair, logger),
		RetryUnscheduledHandler: commands.NewRetryUnscheduledHandler(cache, repair, logger),
		DelayTaskHandler:        commands.NewDelayTaskHandler(cache, logger),
		AddTaskHandler:          commands.NewAddTaskHandler(cache, logger),
		CompleteTaskHandler:     commands.NewCompleteTaskHandler(cache, logger),

		GetScheduleHandler: queries.NewGetScheduleHandler(cache),
		FreeWindowsHandler: queries.NewFreeWindowsHandler(cache),
		ListTasksHandler:   queries.NewListTasksHandler(cache),
	}, nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}
