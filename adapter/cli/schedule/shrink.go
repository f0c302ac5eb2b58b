package schedule

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var shrinkCmd = &cobra.Command{
	Use:   "shrink",
	Short: "Shorten breaks to fit the unscheduled backlog",
	Long: `Work through every task that did not fit during generation, shortening
breaks to free up room and appending the reclaimed time at the end of
the day. Tasks that still do not fit stay in the backlog.

Examples:
  dayflow schedule shrink`,
	Aliases: []string{"retry-all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RetryUnscheduledHandler == nil {
			return errors.New("schedule commands not configured")
		}

		result, err := app.RetryUnscheduledHandler.Handle(cmd.Context(), commands.RetryUnscheduledCommand{})
		if err != nil {
			return fmt.Errorf("failed to retry backlog: %w", err)
		}

		if len(result.Remaining) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Backlog cleared. Everything fits.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) still do not fit:\n", len(result.Remaining))
		for _, t := range result.Remaining {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%.1fh) [%s]\n", t.Title, t.EstimatedHours, t.ID)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'dayflow schedule delay <task-id>' to move one to tomorrow.")
		return nil
	},
}
