package settings

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayflow/adapter/cli"
	"github.com/felixgeelhaar/dayflow/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

// Cmd is the settings command group
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage schedule preferences",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show schedule preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Cache == nil {
			return errors.New("settings commands not configured")
		}

		prefs, err := app.Cache.Prefs(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wake up:      %s\n", prefs.WakeUp)
		fmt.Fprintf(cmd.OutOrStdout(), "Sleep:        %s\n", prefs.Sleep)
		fmt.Fprintf(cmd.OutOrStdout(), "Max session:  %dm\n", prefs.SessionCap())
		fmt.Fprintf(cmd.OutOrStdout(), "12-hour clock: %v\n", prefs.Use12HourClock)
		if len(prefs.RecurringBlocks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Recurring:    none")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Recurring:")
		for _, rb := range prefs.RecurringBlocks {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (%dm) at %v\n", rb.Title, rb.DurationMinutes, rb.Times)
		}
		return nil
	},
}

var (
	setWake       string
	setSleep      string
	setMaxSession int
	setClock12h   bool
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Update schedule preferences",
	Long: `Update one or more schedule preferences. Only the flags you pass change.

Examples:
  dayflow settings set --wake 06:30
  dayflow settings set --sleep 22:00 --max-session 90
  dayflow settings set --clock-12h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Cache == nil {
			return errors.New("settings commands not configured")
		}

		prefs, err := app.Cache.Prefs(cmd.Context())
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("wake") {
			if _, err := domain.ParseTime(setWake, time.Now()); err != nil {
				return fmt.Errorf("invalid wake time: %w", err)
			}
			prefs.WakeUp = setWake
		}
		if cmd.Flags().Changed("sleep") {
			if _, err := domain.ParseTime(setSleep, time.Now()); err != nil {
				return fmt.Errorf("invalid sleep time: %w", err)
			}
			prefs.Sleep = setSleep
		}
		if cmd.Flags().Changed("max-session") {
			if setMaxSession < domain.MinSessionMinutes {
				return fmt.Errorf("max session must be at least %dm", domain.MinSessionMinutes)
			}
			prefs.MaxSessionMinutes = setMaxSession
		}
		if cmd.Flags().Changed("clock-12h") {
			prefs.Use12HourClock = setClock12h
		}

		if err := app.Cache.SavePrefs(cmd.Context(), prefs); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Preferences saved. Run 'dayflow schedule generate' to replan.")
		return nil
	},
}

func init() {
	setCmd.Flags().StringVar(&setWake, "wake", "", "wake-up time as HH:MM")
	setCmd.Flags().StringVar(&setSleep, "sleep", "", "sleep time as HH:MM")
	setCmd.Flags().IntVar(&setMaxSession, "max-session", 0, "longest focus session in minutes")
	setCmd.Flags().BoolVar(&setClock12h, "clock-12h", false, "display times on a 12-hour clock")

	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(recurringCmd)
}
