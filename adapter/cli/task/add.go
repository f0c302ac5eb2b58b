package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var (
	addPriority string
	addCategory string
	addDeadline string
	addHours    float64
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task to the list the scheduler plans from.

Examples:
  dayflow task add "Write report" --hours 2
  dayflow task add "Gym" --hours 1 --priority low --category physical
  dayflow task add "Taxes" --hours 3 --deadline 2026-09-15`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddTaskHandler == nil {
			return errors.New("task commands not configured")
		}

		result, err := app.AddTaskHandler.Handle(cmd.Context(), commands.AddTaskCommand{
			Title:          strings.Join(args, " "),
			Priority:       domain.Priority(addPriority),
			Category:       domain.Category(addCategory),
			Deadline:       addDeadline,
			EstimatedHours: addHours,
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%.1fh, due %s) [%s]\n",
			result.Task.Title, result.Task.EstimatedHours, result.Task.Deadline, result.Task.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "priority: high, medium, low")
	addCmd.Flags().StringVar(&addCategory, "category", "work", "category: mental, physical, work, social")
	addCmd.Flags().StringVarP(&addDeadline, "deadline", "d", "", "deadline as YYYY-MM-DD (default today)")
	addCmd.Flags().Float64Var(&addHours, "hours", 1, "estimated effort in hours")
}
