// Package devlog is the composition root for the devlog journal.
//
// It connects the core domain (log entries, project context, registry
// contracts) with the filesystem adapters using the Hexagonal Architecture
// pattern.
//
// Philosophy:
//
// Devlog is a personal developer journal. Notes are timestamped, tagged with
// a project, an author and free-form labels, and land either in a local
// store inside the project's folder or in a single global store. A project
// context mechanism associates filesystem folders with named projects, so
// logging from inside a folder lands in the right project without explicit
// bookkeeping.
//
// Features:
//
//   - **Hexagonal Architecture**: core domain isolated from persistence details.
//   - **Atomic storage**: every write goes through temp-write-then-rename,
//     guarded by a cross-process lock.
//   - **Self-healing stores**: missing, empty or corrupt JSON files are
//     reinitialized, never fatal at read time.
//   - **Scoped reads**: local, global, or an aggregate over every registered
//     folder.
//   - **Fuzzy search**: weighted-field similarity with structured filters,
//     recomputed on every query.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := devlog.New(
//		devlog.WithLogger(logger),
//	)
//
//	// Save a log entry
//	entry, err := svc.NewLog(ctx, "Fixed navbar issue", []string{"bug", "ui"}, "Ray", "", true)
package devlog
