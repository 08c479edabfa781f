package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rupanjan/devlog"
)

var (
	searchProject   string
	searchAuthor    string
	searchTags      string
	searchAfter     string
	searchBefore    string
	searchExact     bool
	searchThreshold float64
	searchLimit     int
	searchScope     string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search logs with filters and fuzzy matching",
	Long: `Search ranks logs against a free-text query. Structured filters narrow the
candidates first; the query then matches fuzzily unless --exact is given.
Project filters accept globs, e.g. --project "web*".`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		filters := devlog.Filters{
			Project: searchProject,
			Author:  searchAuthor,
			Tags:    searchTags,
		}
		var err error
		if filters.After, err = parseDate(searchAfter); err != nil {
			fatal("Invalid --after date", err)
		}
		if filters.Before, err = parseDate(searchBefore); err != nil {
			fatal("Invalid --before date", err)
		}

		service := newService()
		start := time.Now()

		results, err := service.Search(context.Background(), query, filters, devlog.ParseScope(searchScope), devlog.SearchOptions{
			Exact:     searchExact,
			Threshold: searchThreshold,
			Limit:     searchLimit,
		})
		if err != nil {
			fatal("Search failed", err)
		}

		fmt.Print(devlog.RenderResults(results, query))
		fmt.Printf("Found %d results in %.2fms\n", len(results), float64(time.Since(start).Microseconds())/1000)
	},
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchProject, "project", "p", "", "Filter by project (exact name or glob)")
	searchCmd.Flags().StringVarP(&searchAuthor, "author", "a", "", "Filter by author (substring)")
	searchCmd.Flags().StringVarP(&searchTags, "tags", "t", "", "Filter by tags (comma-separated, any match)")
	searchCmd.Flags().StringVar(&searchAfter, "after", "", "Only logs on or after this date")
	searchCmd.Flags().StringVar(&searchBefore, "before", "", "Only logs on or before this date")
	searchCmd.Flags().BoolVar(&searchExact, "exact", false, "Exact substring matching only")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0, "Fuzzy similarity threshold (0=exact, 1=anything)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results")
	searchCmd.Flags().StringVarP(&searchScope, "scope", "s", "local", "Scope to search: local, global or all")
}
