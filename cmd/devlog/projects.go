package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List registered projects and their folders",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()

		table, err := service.Projects(context.Background())
		if err != nil {
			fatal("Failed to list projects", err)
		}
		if len(table) == 0 {
			fmt.Println("No projects registered yet.")
			return
		}

		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("%s -> %s\n", name, table[name])
		}
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
