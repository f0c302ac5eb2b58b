package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage your daily schedule",
	Long:  `Generate, view, and repair your daily schedule of focus sessions and breaks.`,
}

func init() {
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(availableCmd)
	Cmd.AddCommand(retryCmd)
	Cmd.AddCommand(shrinkCmd)
	Cmd.AddCommand(delayCmd)
}
