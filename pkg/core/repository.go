package core

import "context"

// LogStore defines the contract for storing and retrieving log entries.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (filesystem, SQL, in-memory fakes).
type LogStore interface {
	// Read returns every entry at the given scope. A missing, empty or
	// corrupt backing file is reinitialized and read as empty, never
	// surfaced as a read error.
	Read(ctx context.Context, scope Scope) ([]LogEntry, error)

	// Insert appends an entry and persists the whole store. The full file is
	// rewritten on every mutation; there is no streaming append format.
	Insert(ctx context.Context, entry LogEntry, scope Scope) error

	// Delete removes every entry with the given id and reports whether any
	// were removed. Deleting an absent id is not an error.
	Delete(ctx context.Context, id int64, scope Scope) (bool, error)

	// DeleteAll truncates the store at the given scope to empty.
	DeleteAll(ctx context.Context, scope Scope) error

	// ReadAcrossFolders concatenates the global store's entries with the
	// entries of every folder the registry knows about. A folder whose local
	// file is missing or unreadable contributes zero entries and does not
	// abort the aggregate read.
	ReadAcrossFolders(ctx context.Context) ([]LogEntry, error)
}

// Registry defines the durable bidirectional mapping between project names
// and filesystem folders.
type Registry interface {
	// Register binds name to folder unless name is already bound to a
	// different folder, in which case the call is a no-op: the existing
	// mapping always wins.
	Register(ctx context.Context, name, folder string) error

	// FolderByProject resolves a project name to its folder.
	FolderByProject(ctx context.Context, name string) (string, bool, error)

	// ProjectByFolder resolves a folder to its project by exact path
	// equality after normalization.
	ProjectByFolder(ctx context.Context, folder string) (string, bool, error)

	// AllProjects returns the full name -> folder table.
	AllProjects(ctx context.Context) (map[string]string, error)

	// Folders returns every registered folder path.
	Folders(ctx context.Context) ([]string, error)
}

// ContextStore persists the single project-context record. Reads always
// reload from durable storage; each CLI invocation is a fresh process and
// keeps no cache across runs.
type ContextStore interface {
	// Load reads the persisted context, returning empty defaults when the
	// backing file is missing or unreadable.
	Load(ctx context.Context) (Context, error)

	// Save rewrites the persisted context.
	Save(ctx context.Context, c Context) error
}
