package schedule

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var availableMinMinutes int

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "List open windows between now and sleep",
	Long: `Scan the cached schedule for uncovered time between now and sleep.

Examples:
  dayflow schedule available
  dayflow schedule available --min 30`,
	Aliases: []string{"free", "gaps"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.FreeWindowsHandler == nil {
			return errors.New("schedule commands not configured")
		}

		result, err := app.FreeWindowsHandler.Handle(cmd.Context(), queries.FreeWindowsQuery{
			MinMinutes: availableMinMinutes,
		})
		if err != nil {
			return fmt.Errorf("failed to find free windows: %w", err)
		}

		prefs, err := app.Cache.Prefs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load preferences: %w", err)
		}

		if len(result.Windows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No open windows before sleep.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d open window(s):\n", len(result.Windows))
		for _, w := range result.Windows {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s - %s (%dm)\n",
				domain.FormatClock(w.Start, prefs.Use12HourClock),
				domain.FormatClock(w.End, prefs.Use12HourClock),
				w.Minutes(),
			)
		}
		return nil
	},
}

func init() {
	availableCmd.Flags().IntVar(&availableMinMinutes, "min", 0, "only show windows of at least this many minutes")
}
