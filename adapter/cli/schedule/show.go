package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's schedule",
	Long: `Display the cached schedule for today.

Examples:
  dayflow schedule show`,
	Aliases: []string{"today", "view"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetScheduleHandler == nil {
			return errors.New("schedule commands not configured")
		}

		result, err := app.GetScheduleHandler.Handle(cmd.Context(), queries.GetScheduleQuery{})
		if err != nil {
			return fmt.Errorf("failed to get schedule: %w", err)
		}

		prefs, err := app.Cache.Prefs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load preferences: %w", err)
		}

		dateStr := time.Now().Format("Monday, January 2, 2006")
		fmt.Fprintf(cmd.OutOrStdout(), "Schedule for %s\n", dateStr)
		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("=", 60))

		if result.Stale {
			fmt.Fprintf(cmd.OutOrStdout(), "\n  Cache is from %s. Run 'dayflow schedule generate' to rebuild.\n", result.GeneratedOn)
		}
		if len(result.Blocks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "\n  No schedule yet.")
			fmt.Fprintln(cmd.OutOrStdout(), "\n  Use 'dayflow task add' to capture work")
			fmt.Fprintln(cmd.OutOrStdout(), "  Use 'dayflow schedule generate' to plan the day")
			return nil
		}

		total := 0
		for _, block := range result.Blocks {
			marker := " "
			if block.Manual {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s - %s  %s (%dm)\n",
				marker,
				domain.FormatClock(block.Start, prefs.Use12HourClock),
				domain.FormatClock(block.End, prefs.Use12HourClock),
				block.Title,
				block.Minutes(),
			)
			if block.TaskID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    Type: %s | Task: %s\n", block.Type, block.TaskID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "    Type: %s\n", block.Type)
			}
			if block.Type == domain.BlockTypeTask {
				total += block.Minutes()
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 60))
		fmt.Fprintf(cmd.OutOrStdout(), "Total: %d blocks, %dm of focused work\n", len(result.Blocks), total)
		return nil
	},
}
