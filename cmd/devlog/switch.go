package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:   "switch-to [project] [note]",
	Short: "Explicitly activate a project",
	Long: `Switch-to pins the active project regardless of the current folder. The
choice sticks across directory changes until the registry no longer backs it,
at which point folder inference takes over again.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		note := ""
		if len(args) > 1 {
			note = args[1]
		}

		service := newService()
		rec, err := service.SwitchProject(context.Background(), args[0], note)
		if err != nil {
			fatal("Failed to switch project", err)
		}

		fmt.Printf("Switched to project %q\n", rec.Current)
	},
}

func init() {
	rootCmd.AddCommand(switchCmd)
}
