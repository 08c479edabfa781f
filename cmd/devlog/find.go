package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rupanjan/devlog"
)

var findScope string

var findCmd = &cobra.Command{
	Use:   "find [id]",
	Short: "Find a log by its id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal("Invalid log id", err)
		}

		service := newService()
		logs, err := service.FindLog(context.Background(), id, devlog.ParseScope(findScope))
		if err != nil {
			fatal("Failed to find log", err)
		}

		if len(logs) == 0 {
			fmt.Printf("No log found with id %d\n", id)
			return
		}
		fmt.Print(devlog.RenderLogs(logs))
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().StringVarP(&findScope, "scope", "s", "local", "Scope to read: local, global or all")
}
