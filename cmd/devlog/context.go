package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rupanjan/devlog"
)

var contextState bool

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show the current project context",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		if contextState {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(service.State()); err != nil {
				fatal("Failed to encode state", err)
			}
			return
		}

		rec, err := service.Context(context.Background())
		if err != nil {
			fatal("Failed to read context", err)
		}
		fmt.Print(devlog.RenderContext(rec))
		fmt.Printf("Effective project: %s\n", service.Project())
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().BoolVar(&contextState, "state", false, "Dump internal service state as JSON")
}
