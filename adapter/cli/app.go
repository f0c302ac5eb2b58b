package cli

import (
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/infrastructure/persistence"
)

// App holds the CLI application dependencies.
type App struct {
	// Schedule Command Handlers
	GenerateScheduleHandler *commands.GenerateScheduleHandler
	RetryTaskHandler        *commands.RetryTaskHandler
	RetryUnscheduledHandler *commands.RetryUnscheduledHandler
	DelayTaskHandler        *commands.DelayTaskHandler

	// Task Command Handlers
	AddTaskHandler      *commands.AddTaskHandler
	CompleteTaskHandler *commands.CompleteTaskHandler

	// Query Handlers
	GetScheduleHandler *queries.GetScheduleHandler
	FreeWindowsHandler *queries.FreeWindowsHandler
	ListTasksHandler   *queries.ListTasksHandler

	// Cache gives settings commands direct access to stored preferences.
	Cache *persistence.CacheRepository
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	generateScheduleHandler *commands.GenerateScheduleHandler,
	retryTaskHandler *commands.RetryTaskHandler,
	retryUnscheduledHandler *commands.RetryUnscheduledHandler,
	delayTaskHandler *commands.DelayTaskHandler,
	addTaskHandler *commands.AddTaskHandler,
	completeTaskHandler *commands.CompleteTaskHandler,
	getScheduleHandler *queries.GetScheduleHandler,
	freeWindowsHandler *queries.FreeWindowsHandler,
	listTasksHandler *queries.ListTasksHandler,
	cache *persistence.CacheRepository,
) *App {
	return &App{
		GenerateScheduleHandler: generateScheduleHandler,
		RetryTaskHandler:        retryTaskHandler,
		RetryUnscheduledHandler: retryUnscheduledHandler,
		DelayTaskHandler:        delayTaskHandler,
		AddTaskHandler:          addTaskHandler,
		CompleteTaskHandler:     completeTaskHandler,
		GetScheduleHandler:      getScheduleHandler,
		FreeWindowsHandler:      freeWindowsHandler,
		ListTasksHandler:        listTasksHandler,
		Cache:                   cache,
	}
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
