package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Show the latest note in the current project",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		project, activity, ok, err := service.Resume(context.Background())
		if err != nil {
			fatal("Failed to read context", err)
		}
		if project == "" {
			fmt.Println("No active project. Use 'devlog switch-to <name>' or log from a project folder.")
			return
		}
		if !ok || activity.LastNote == "" {
			fmt.Printf("Project %q has no notes yet.\n", project)
			return
		}

		fmt.Printf("Project %q, last touched %s:\n  %s\n",
			project,
			time.UnixMilli(activity.Timestamp).Format("2006-01-02 15:04:05"),
			activity.LastNote)
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}
