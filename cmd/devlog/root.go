package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rupanjan/devlog"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devlog",
	Short: "A personal developer journal with project context and fuzzy search",
	Long: `Devlog records timestamped notes tagged with project, author and free-form
tags, scoped per working directory or shared globally. Logging from inside a
folder lands in the right project automatically.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		maybeShowWelcome()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// newService builds the per-invocation journal service. Every command goes
// through it, so the effective project is always resolved before work runs.
func newService() *devlog.Service {
	service, err := devlog.New(devlog.WithLogger(slog.Default()))
	if err != nil {
		fatal("Failed to initialize devlog", err)
	}
	return service
}
