// Package core holds the journal's domain entities and the port interfaces
// the storage adapters implement.
package core

import "time"

// DefaultAuthor is used when a log is created without an author.
const DefaultAuthor = "Anonymous"

// LogEntry represents a single journal note. Entries are immutable after
// creation; the only lifecycle transition is deletion.
type LogEntry struct {
	// ID is the creation time in milliseconds since epoch. It doubles as the
	// entry's unique identifier. Two entries created in the same millisecond
	// collide and the last write wins; this is an accepted limitation of the
	// format, not something the store tries to fix.
	ID      int64    `json:"id"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Project string   `json:"project"`
	Tags    []string `json:"tags"`
}

// NewLogEntry builds an entry applying the defaulting rules in one place:
// empty author becomes DefaultAuthor, the ID is derived from now.
func NewLogEntry(content string, tags []string, author, project string, now time.Time) LogEntry {
	if author == "" {
		author = DefaultAuthor
	}
	return LogEntry{
		ID:      now.UnixMilli(),
		Content: content,
		Author:  author,
		Project: project,
		Tags:    tags,
	}
}

// Timestamp returns the creation time encoded in the ID.
func (e LogEntry) Timestamp() time.Time {
	return time.UnixMilli(e.ID)
}

// Scope selects which store(s) a read draws from.
type Scope string

const (
	// ScopeLocal targets the store of the current effective project's folder.
	ScopeLocal Scope = "local"
	// ScopeGlobal targets the single shared store.
	ScopeGlobal Scope = "global"
	// ScopeAll aggregates the global store plus every registered folder.
	ScopeAll Scope = "all"
)

// ParseScope normalizes a user-supplied scope string. Unknown values fall
// back to ScopeLocal, matching the CLI's historic default.
func ParseScope(s string) Scope {
	switch Scope(s) {
	case ScopeGlobal:
		return ScopeGlobal
	case ScopeAll:
		return ScopeAll
	default:
		return ScopeLocal
	}
}

// ProjectActivity is the lightweight per-project record kept in the context:
// the most recent note and when the project was last touched.
type ProjectActivity struct {
	LastNote  string `json:"last_note"`
	Timestamp int64  `json:"timestamp"`
}

// Context tracks the currently active project and how it was chosen.
// A single persistent record, read and rewritten on nearly every command.
type Context struct {
	// Current is the active project name, empty when none.
	Current string `json:"current"`
	// Manual is true when Current was set by an explicit switch rather than
	// inferred from the working folder.
	Manual bool `json:"manual"`
	// LastFolder is the folder the context was last evaluated in.
	LastFolder string `json:"lastFolder"`
	// Projects maps project names to their activity records.
	Projects map[string]ProjectActivity `json:"projects"`
}

// NewContext returns a context with empty defaults, as created on first use.
func NewContext() Context {
	return Context{Projects: make(map[string]ProjectActivity)}
}

// Touch upserts the activity record for the given project. An empty lastNote
// keeps the previous one.
func (c *Context) Touch(project, lastNote string, now time.Time) {
	if c.Projects == nil {
		c.Projects = make(map[string]ProjectActivity)
	}
	rec := c.Projects[project]
	if lastNote != "" {
		rec.LastNote = lastNote
	}
	rec.Timestamp = now.UnixMilli()
	c.Projects[project] = rec
}
