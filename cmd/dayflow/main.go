package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/adapter/cli/schedule"
	cliSettings "github.com/felixgeelhaar/dayflow/adapter/cli/settings"
	"github.com/felixgeelhaar/dayflow/adapter/cli/task"
	"github.com/felixgeelhaar/dayflow/internal/app"
	"github.com/felixgeelhaar/dayflow/pkg/config"
	"github.com/felixgeelhaar/dayflow/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development", StoreDriver: "memory"}
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cliApp := cli.NewApp(
		container.GenerateScheduleHandler,
		container.RetryTaskHandler,
		container.RetryUnscheduledHandler,
		container.DelayTaskHandler,
		container.AddTaskHandler,
		container.CompleteTaskHandler,
		container.GetScheduleHandler,
		container.FreeWindowsHandler,
		container.ListTasksHandler,
		container.Cache,
	)
	cli.SetApp(cliApp)

	cli.AddCommand(schedule.Cmd)
	cli.AddCommand(task.Cmd)
	cli.AddCommand(cliSettings.Cmd)

	cli.Execute()
}
