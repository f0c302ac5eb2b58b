package schedule

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var retryCmd = &cobra.Command{
	Use:   "retry <task-id>",
	Short: "Fit one unscheduled task into today's plan",
	Long: `Try to place a single task into the existing schedule without a full
rebuild. The task goes into the largest free window that holds it; when
no window is big enough, breaks are shortened proportionally to make
room. The schedule is left untouched if the task still cannot fit.

Examples:
  dayflow schedule retry 4f8a...
  dayflow task list --all   # to find task ids`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RetryTaskHandler == nil {
			return errors.New("schedule commands not configured")
		}

		tasks, err := app.Cache.Tasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		for _, t := range tasks {
			if t.ID != args[0] {
				continue
			}
			result, err := app.RetryTaskHandler.Handle(cmd.Context(), commands.RetryTaskCommand{Task: t})
			if err != nil {
				return fmt.Errorf("failed to retry task: %w", err)
			}
			if result.Success {
				fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %q.\n", t.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%q does not fit before sleep, even with shorter breaks.\n", t.Title)
				fmt.Fprintln(cmd.OutOrStdout(), "Use 'dayflow schedule delay' to move it to tomorrow.")
			}
			return nil
		}
		return fmt.Errorf("task %s not found", args[0])
	},
}
