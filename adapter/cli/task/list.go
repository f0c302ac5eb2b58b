package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List open tasks.

Examples:
  dayflow task list
  dayflow task list --all`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return errors.New("task commands not configured")
		}

		result, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			IncludeCompleted: listAll,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(result.Tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks. Use 'dayflow task add' to capture one.")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 60))
		for _, t := range result.Tasks {
			status := "[ ]"
			if t.Completed {
				status = "[x]"
			}
			indent := ""
			if t.IsSubtask() {
				indent = "  "
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s (%.1fh, %s, due %s)\n",
				indent, status, t.Title, t.EstimatedHours, t.Priority, t.Deadline)
			fmt.Fprintf(cmd.OutOrStdout(), "%s    ID: %s\n", indent, t.ID)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 60))
		fmt.Fprintf(cmd.OutOrStdout(), "%d task(s)\n", len(result.Tasks))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include completed tasks")
}
