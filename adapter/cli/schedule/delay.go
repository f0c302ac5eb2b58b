package schedule

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var delayCmd = &cobra.Command{
	Use:   "delay <task-id>",
	Short: "Push a task's deadline to tomorrow",
	Long: `Move a task's deadline forward by one day so today's plan no longer
has to hold it. Regenerate afterward to reclaim its slot.

Examples:
  dayflow schedule delay 4f8a...
  dayflow schedule generate`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DelayTaskHandler == nil {
			return errors.New("schedule commands not configured")
		}

		result, err := app.DelayTaskHandler.Handle(cmd.Context(), commands.DelayTaskCommand{TaskID: args[0]})
		if err != nil {
			if errors.Is(err, commands.ErrTaskNotFound) {
				return fmt.Errorf("task %s not found", args[0])
			}
			return fmt.Errorf("failed to delay task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%q is now due %s.\n", result.Task.Title, result.Task.Deadline)
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'dayflow schedule generate' to rebuild today's plan.")
		return nil
	},
}
