package settings

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Manage recurring daily commitments",
}

var (
	recurringTimes    []string
	recurringDuration int
)

var recurringAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a recurring commitment",
	Long: `Add a commitment the scheduler reserves every day.

Examples:
  dayflow settings recurring add Lunch --at 12:30 --duration 45
  dayflow settings recurring add Standup --at 09:00 --at 16:00 --duration 15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Cache == nil {
			return errors.New("settings commands not configured")
		}
		if len(recurringTimes) == 0 {
			return errors.New("at least one --at time is required")
		}
		if recurringDuration <= 0 {
			return errors.New("duration must be positive")
		}
		for _, at := range recurringTimes {
			if _, err := domain.ParseTime(at, time.Now()); err != nil {
				return fmt.Errorf("invalid time %q: %w", at, err)
			}
		}

		prefs, err := app.Cache.Prefs(cmd.Context())
		if err != nil {
			return err
		}
		prefs.RecurringBlocks = append(prefs.RecurringBlocks, domain.RecurringBlock{
			Title:           args[0],
			Times:           recurringTimes,
			DurationMinutes: recurringDuration,
		})
		if err := app.Cache.SavePrefs(cmd.Context(), prefs); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Reserved %q (%dm) at %v every day.\n", args[0], recurringDuration, recurringTimes)
		return nil
	},
}

var recurringRemoveCmd = &cobra.Command{
	Use:   "remove <title>",
	Short: "Remove a recurring commitment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Cache == nil {
			return errors.New("settings commands not configured")
		}

		prefs, err := app.Cache.Prefs(cmd.Context())
		if err != nil {
			return err
		}

		kept := prefs.RecurringBlocks[:0]
		removed := 0
		for _, rb := range prefs.RecurringBlocks {
			if rb.Title == args[0] {
				removed++
				continue
			}
			kept = append(kept, rb)
		}
		if removed == 0 {
			return fmt.Errorf("no recurring commitment named %q", args[0])
		}
		prefs.RecurringBlocks = kept

		if err := app.Cache.SavePrefs(cmd.Context(), prefs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q.\n", args[0])
		return nil
	},
}

func init() {
	recurringAddCmd.Flags().StringArrayVar(&recurringTimes, "at", nil, "daily start time as HH:MM (repeatable)")
	recurringAddCmd.Flags().IntVar(&recurringDuration, "duration", 0, "duration in minutes")

	recurringCmd.AddCommand(recurringAddCmd)
	recurringCmd.AddCommand(recurringRemoveCmd)
}
