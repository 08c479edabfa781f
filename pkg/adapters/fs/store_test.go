package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rupanjan/devlog/pkg/core"
)

func newTestStore(t *testing.T) (*Store, *Registry, Layout, string) {
	t.Helper()

	home := t.TempDir()
	workDir := filepath.Join(t.TempDir(), "myproject")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatal(err)
	}

	layout := Layout{Home: home}
	registry := NewRegistry(layout, nil)
	store := NewStore(layout, workDir, registry, nil)
	return store, registry, layout, workDir
}

func entry(id int64, content string) core.LogEntry {
	return core.LogEntry{
		ID:      id,
		Content: content,
		Author:  core.DefaultAuthor,
		Project: "myproject",
	}
}

func TestStoreInsertAndRead(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	for _, scope := range []core.Scope{core.ScopeLocal, core.ScopeGlobal} {
		t.Run(string(scope), func(t *testing.T) {
			e := entry(time.Now().UnixMilli(), "wrote a test for "+string(scope))
			if err := store.Insert(ctx, e, scope); err != nil {
				t.Fatalf("Insert failed: %v", err)
			}

			logs, err := store.Read(ctx, scope)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if len(logs) != 1 {
				t.Fatalf("Expected 1 log, got %d", len(logs))
			}
			if logs[0].ID != e.ID || logs[0].Content != e.Content {
				t.Errorf("Roundtrip mismatch: %+v", logs[0])
			}
		})
	}
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	e := entry(1234, "to be deleted")
	if err := store.Insert(ctx, e, core.ScopeLocal); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Delete(ctx, e.ID, core.ScopeLocal)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !removed {
		t.Error("Expected first delete to report removal")
	}

	removed, err = store.Delete(ctx, e.ID, core.ScopeLocal)
	if err != nil {
		t.Fatalf("Second delete failed: %v", err)
	}
	if removed {
		t.Error("Expected second delete to be a no-op")
	}

	logs, err := store.Read(ctx, core.ScopeLocal)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 0 {
		t.Errorf("Expected empty store, got %d logs", len(logs))
	}
}

func TestStoreDeleteAll(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	for _, scope := range []core.Scope{core.ScopeLocal, core.ScopeGlobal} {
		if err := store.Insert(ctx, entry(1, "a"), scope); err != nil {
			t.Fatal(err)
		}
		if err := store.Insert(ctx, entry(2, "b"), scope); err != nil {
			t.Fatal(err)
		}

		if err := store.DeleteAll(ctx, scope); err != nil {
			t.Fatalf("DeleteAll(%s) failed: %v", scope, err)
		}

		logs, err := store.Read(ctx, scope)
		if err != nil {
			t.Fatal(err)
		}
		if len(logs) != 0 {
			t.Errorf("Expected empty %s store, got %d logs", scope, len(logs))
		}
	}
}

func TestStoreReadRepair(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(t *testing.T, path string)
	}{
		{
			name:    "Missing File",
			prepare: func(t *testing.T, path string) {},
		},
		{
			name: "Empty File",
			prepare: func(t *testing.T, path string) {
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, []byte("   \n"), 0644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "Corrupt JSON",
			prepare: func(t *testing.T, path string) {
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, _, layout, _ := newTestStore(t)
			path := layout.GlobalStorePath()
			tc.prepare(t, path)

			logs, err := store.Read(context.Background(), core.ScopeGlobal)
			if err != nil {
				t.Fatalf("Read should self-heal, got error: %v", err)
			}
			if len(logs) != 0 {
				t.Errorf("Expected empty logs after repair, got %d", len(logs))
			}

			// The file must have been rewritten to the canonical empty shape.
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Repaired file not written: %v", err)
			}
			if string(data) == "" {
				t.Error("Repaired file is empty")
			}
		})
	}
}

func TestStoreReadAcrossFolders(t *testing.T) {
	store, registry, layout, workDir := newTestStore(t)
	ctx := context.Background()

	// One global entry.
	if err := store.Insert(ctx, entry(1, "global note"), core.ScopeGlobal); err != nil {
		t.Fatal(err)
	}

	// One entry in the current folder's local store.
	if err := registry.Register(ctx, "myproject", workDir); err != nil {
		t.Fatal(err)
	}
	if err := store.Insert(ctx, entry(2, "local note"), core.ScopeLocal); err != nil {
		t.Fatal(err)
	}

	// A second registered folder with its own store, written directly.
	otherDir := filepath.Join(t.TempDir(), "other")
	if err := os.MkdirAll(filepath.Dir(layout.LocalStorePath(otherDir)), 0755); err != nil {
		t.Fatal(err)
	}
	otherStore := NewStore(layout, otherDir, registry, nil)
	if err := registry.Register(ctx, "other", otherDir); err != nil {
		t.Fatal(err)
	}
	if err := otherStore.Insert(ctx, entry(3, "other note"), core.ScopeLocal); err != nil {
		t.Fatal(err)
	}

	// A registered folder whose store file is corrupt: skipped, not fatal.
	badDir := filepath.Join(t.TempDir(), "bad")
	badPath := layout.LocalStorePath(badDir)
	if err := os.MkdirAll(filepath.Dir(badPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(badPath, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(ctx, "bad", badDir); err != nil {
		t.Fatal(err)
	}

	logs, err := store.ReadAcrossFolders(ctx)
	if err != nil {
		t.Fatalf("ReadAcrossFolders failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("Expected 3 logs (global + 2 locals), got %d", len(logs))
	}

	// Scope "all" through Read must agree.
	viaRead, err := store.Read(ctx, core.ScopeAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(viaRead) != len(logs) {
		t.Errorf("Read(all) returned %d logs, ReadAcrossFolders %d", len(viaRead), len(logs))
	}
}

func TestStoreAggregateReadDoesNotPlantDirectories(t *testing.T) {
	store, registry, layout, _ := newTestStore(t)
	ctx := context.Background()

	emptyDir := t.TempDir()
	if err := registry.Register(ctx, "visited", emptyDir); err != nil {
		t.Fatal(err)
	}

	if _, err := store.ReadAcrossFolders(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(layout.LocalStorePath(emptyDir)); !os.IsNotExist(err) {
		t.Error("Aggregate read created a store file in a folder it only visited")
	}
}
