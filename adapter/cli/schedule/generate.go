package schedule

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build today's schedule from your task list",
	Long: `Place every eligible task between wake-up and sleep, splitting long
tasks into sessions and inserting breaks between them.

Blocks you placed manually, sessions you already started, and work you
completed today keep their slots. Whatever does not fit before sleep
lands in the unscheduled backlog.

Examples:
  dayflow schedule generate
  dayflow schedule generate && dayflow schedule show`,
	Aliases: []string{"auto", "plan"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GenerateScheduleHandler == nil {
			return errors.New("schedule commands not configured")
		}

		result, err := app.GenerateScheduleHandler.Handle(cmd.Context(), commands.GenerateScheduleCommand{})
		if err != nil {
			return fmt.Errorf("failed to generate schedule: %w", err)
		}

		if result.Regenerated {
			fmt.Fprintf(cmd.OutOrStdout(), "Schedule generated: %d blocks\n", len(result.Blocks))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Schedule unchanged.")
		}
		if len(result.Unscheduled) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d task(s) did not fit before sleep:\n", len(result.Unscheduled))
			for _, t := range result.Unscheduled {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%.1fh) [%s]\n", t.Title, t.EstimatedHours, t.ID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'dayflow schedule shrink' to shorten breaks and retry.")
		}
		if len(result.Overdue) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d task(s) are past their deadline:\n", len(result.Overdue))
			for _, t := range result.Overdue {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s (due %s) [%s]\n", t.Title, t.Deadline, t.ID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'dayflow schedule delay <task-id>' to push a deadline to tomorrow.")
		}
		return nil
	},
}
