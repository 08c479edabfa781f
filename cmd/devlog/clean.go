package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var cleanGlobal bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete every log at a scope",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		if err := service.DeleteAllLogs(context.Background(), !cleanGlobal); err != nil {
			fatal("Failed to clean logs", err)
		}

		scope := "local"
		if cleanGlobal {
			scope = "global"
		}
		fmt.Printf("All %s logs deleted\n", scope)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVarP(&cleanGlobal, "global", "g", false, "Clean the global store")
}
