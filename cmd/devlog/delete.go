package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteGlobal bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a log by its id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fatal("Invalid log id", err)
		}

		service := newService()
		removed, err := service.DeleteLog(context.Background(), id, !deleteGlobal)
		if err != nil {
			fatal("Failed to delete log", err)
		}

		if removed {
			fmt.Printf("Log %d deleted\n", id)
		} else {
			fmt.Printf("No log found with id %d\n", id)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteGlobal, "global", "g", false, "Delete from the global store")
}
