package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rupanjan/devlog"
)

var (
	allScope string
	allJSON  bool
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List all logs at a scope",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		scope := allScope
		if scope == "" {
			scope = service.Config().Scope
		}

		logs, err := service.AllLogs(context.Background(), devlog.ParseScope(scope))
		if err != nil {
			fatal("Failed to list logs", err)
		}

		if allJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(logs); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Print(devlog.RenderLogs(logs))
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
	allCmd.Flags().StringVarP(&allScope, "scope", "s", "", "Scope to read: local, global or all")
	allCmd.Flags().BoolVar(&allJSON, "json", false, "Output in JSON format")
}
