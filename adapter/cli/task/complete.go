package task

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Mark a task as done",
	Long: `Mark a task as completed. Completing the last subtask of a multi-day
task completes its parent as well.

Examples:
  dayflow task complete 4f8a...`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteTaskHandler == nil {
			return errors.New("task commands not configured")
		}

		result, err := app.CompleteTaskHandler.Handle(cmd.Context(), commands.CompleteTaskCommand{TaskID: args[0]})
		if err != nil {
			if errors.Is(err, commands.ErrTaskNotFound) {
				return fmt.Errorf("task %s not found", args[0])
			}
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Completed %q.\n", result.Task.Title)
		return nil
	},
}
