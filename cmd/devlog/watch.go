package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/rupanjan/devlog"
)

var watchScope string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow a store and print new logs as they arrive",
	Long: `Watch observes the store file for the given scope and prints entries as
other invocations append them. Useful in a second terminal while working.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := newService()
		scope := devlog.ParseScope(watchScope)
		if scope == devlog.ScopeAll {
			fatal("Cannot watch scope", fmt.Errorf("%q does not resolve to a single store file", scope))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		path := service.StorePath(scope)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			fatal("Failed to prepare store directory", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			fatal("Failed to create watcher", err)
		}
		defer watcher.Close()

		// Watch the directory, not the file: atomic writes replace the file
		// by rename, which would drop a watch on the file itself.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			fatal("Failed to watch store directory", err)
		}

		lastSeen, err := maxLogID(ctx, service, scope)
		if err != nil {
			fatal("Failed to read store", err)
		}

		fmt.Printf("Watching %s (ctrl-c to stop)\n", path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				lastSeen, err = printNewLogs(ctx, service, scope, lastSeen)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Failed to re-read store: %v\n", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
			}
		}
	},
}

func maxLogID(ctx context.Context, service *devlog.Service, scope devlog.Scope) (int64, error) {
	logs, err := service.AllLogs(ctx, scope)
	if err != nil {
		return 0, err
	}
	var newest int64
	for _, e := range logs {
		if e.ID > newest {
			newest = e.ID
		}
	}
	return newest, nil
}

func printNewLogs(ctx context.Context, service *devlog.Service, scope devlog.Scope, lastSeen int64) (int64, error) {
	logs, err := service.AllLogs(ctx, scope)
	if err != nil {
		return lastSeen, err
	}

	var fresh []devlog.LogEntry
	newest := lastSeen
	for _, e := range logs {
		if e.ID > lastSeen {
			fresh = append(fresh, e)
		}
		if e.ID > newest {
			newest = e.ID
		}
	}
	if len(fresh) > 0 {
		fmt.Print(devlog.RenderLogs(fresh))
	}
	return newest, nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchScope, "scope", "s", "local", "Scope to watch: local or global")
}
