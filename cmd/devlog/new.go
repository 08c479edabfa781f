package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	newTags   []string
	newAuthor string
	newProj   string
	newGlobal bool
)

var newCmd = &cobra.Command{
	Use:   "new [content]",
	Short: "Create a new log entry",
	Long: `Create a timestamped log entry under the effective project. Entries go to
the project's local store by default; use --global for the shared store.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		entry, err := service.NewLog(context.Background(), args[0], newTags, newAuthor, newProj, !newGlobal)
		if err != nil {
			fatal("Failed to save log", err)
		}

		fmt.Printf("Log %d saved under project %q\n", entry.ID, entry.Project)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringSliceVarP(&newTags, "tags", "t", nil, "Comma-separated tags")
	newCmd.Flags().StringVarP(&newAuthor, "author", "a", "", "Author of the entry")
	newCmd.Flags().StringVarP(&newProj, "project", "p", "", "Project override (defaults to the effective project)")
	newCmd.Flags().BoolVarP(&newGlobal, "global", "g", false, "Write to the global store instead of the local one")
}
