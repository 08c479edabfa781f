package devlog

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupanjan/devlog/pkg/core"
	"github.com/rupanjan/devlog/pkg/search"
)

// testClock hands out strictly increasing times one millisecond apart, so
// every log created in a test gets a distinct ID.
func testClock() func() time.Time {
	var ticks int64
	base := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		n := atomic.AddInt64(&ticks, 1)
		return base.Add(time.Duration(n) * time.Millisecond)
	}
}

func makeDir(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	return dir
}

func newTestService(t *testing.T, home, workDir string, extra ...Option) *Service {
	t.Helper()
	opts := append([]Option{
		WithHome(home),
		WithWorkDir(workDir),
		WithConfig(DefaultConfig()),
		WithClock(testClock()),
	}, extra...)

	service, err := New(opts...)
	require.NoError(t, err)
	return service
}

func TestServiceInfersProjectFromFolder(t *testing.T) {
	home := t.TempDir()
	workDir := makeDir(t, "webapp")

	service := newTestService(t, home, workDir)
	assert.Equal(t, "webapp", service.Project())

	// The folder was registered and the context persisted on construction.
	projects, err := service.Projects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workDir, projects["webapp"])

	rec, err := service.Context(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "webapp", rec.Current)
	assert.False(t, rec.Manual)
	assert.Equal(t, workDir, rec.LastFolder)
	assert.Contains(t, rec.Projects, "webapp")
}

func TestServiceReusesExistingRegistration(t *testing.T) {
	home := t.TempDir()
	workDir := makeDir(t, "webapp")

	first := newTestService(t, home, workDir)
	require.Equal(t, "webapp", first.Project())

	// A second invocation in the same folder resolves to the same project
	// without creating a duplicate registration.
	second := newTestService(t, home, workDir)
	assert.Equal(t, "webapp", second.Project())

	projects, err := second.Projects(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestNewLog(t *testing.T) {
	ctx := context.Background()

	t.Run("Roundtrip With Defaults", func(t *testing.T) {
		service := newTestService(t, t.TempDir(), makeDir(t, "webapp"))

		entry, err := service.NewLog(ctx, "fixed the login bug", []string{"auth"}, "", "", true)
		require.NoError(t, err)
		assert.Equal(t, "webapp", entry.Project)
		assert.Equal(t, core.DefaultAuthor, entry.Author)
		assert.NotZero(t, entry.ID)

		found, err := service.FindLog(ctx, entry.ID, core.ScopeLocal)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, entry, found[0])
	})

	t.Run("Configured Author Is Applied", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Author = "rupanjan"
		service := newTestService(t, t.TempDir(), makeDir(t, "webapp"), WithConfig(cfg))

		entry, err := service.NewLog(ctx, "note", nil, "", "", true)
		require.NoError(t, err)
		assert.Equal(t, "rupanjan", entry.Author)
	})

	t.Run("Explicit Author Wins", func(t *testing.T) {
		service := newTestService(t, t.TempDir(), makeDir(t, "webapp"))

		entry, err := service.NewLog(ctx, "note", nil, "sam", "", true)
		require.NoError(t, err)
		assert.Equal(t, "sam", entry.Author)
	})

	t.Run("Rejects Blank Content", func(t *testing.T) {
		service := newTestService(t, t.TempDir(), makeDir(t, "webapp"))

		_, err := service.NewLog(ctx, "   \t ", nil, "", "", true)
		assert.ErrorIs(t, err, core.ErrEmptyContent)
	})

	t.Run("Updates Project Activity", func(t *testing.T) {
		service := newTestService(t, t.TempDir(), makeDir(t, "webapp"))

		_, err := service.NewLog(ctx, "wired up the payment flow", nil, "", "", true)
		require.NoError(t, err)

		project, activity, ok, err := service.Resume(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "webapp", project)
		assert.Equal(t, "wired up the payment flow", activity.LastNote)
		assert.NotZero(t, activity.Timestamp)
	})
}

func TestFindLogAbsentIDIsNotAnError(t *testing.T) {
	service := newTestService(t, t.TempDir(), makeDir(t, "webapp"))

	found, err := service.FindLog(context.Background(), 12345, core.ScopeLocal)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDeleteLog(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, t.TempDir(), makeDir(t, "webapp"))

	entry, err := service.NewLog(ctx, "temporary note", nil, "", "", true)
	require.NoError(t, err)

	removed, err := service.DeleteLog(ctx, entry.ID, true)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = service.DeleteLog(ctx, entry.ID, true)
	require.NoError(t, err)
	assert.False(t, removed, "repeat delete must be a no-op")
}

func TestDeleteAllLogsIsScoped(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, t.TempDir(), makeDir(t, "webapp"))

	_, err := service.NewLog(ctx, "local note", nil, "", "", true)
	require.NoError(t, err)
	_, err = service.NewLog(ctx, "global note", nil, "", "", false)
	require.NoError(t, err)

	require.NoError(t, service.DeleteAllLogs(ctx, true))

	local, err := service.AllLogs(ctx, core.ScopeLocal)
	require.NoError(t, err)
	assert.Empty(t, local)

	global, err := service.AllLogs(ctx, core.ScopeGlobal)
	require.NoError(t, err)
	assert.Len(t, global, 1, "global scope must be untouched")
}

func TestScopeAllAggregatesStores(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()

	webapp := newTestService(t, home, makeDir(t, "webapp"))
	_, err := webapp.NewLog(ctx, "webapp local note", nil, "", "", true)
	require.NoError(t, err)
	_, err = webapp.NewLog(ctx, "shared global note", nil, "", "", false)
	require.NoError(t, err)

	docs := newTestService(t, home, makeDir(t, "docs"))
	_, err = docs.NewLog(ctx, "docs local note", nil, "", "", true)
	require.NoError(t, err)

	all, err := docs.AllLogs(ctx, core.ScopeAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestScopeAllCountsASharedFolderOnce(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	workDir := makeDir(t, "scratch")

	service := newTestService(t, home, workDir)
	_, err := service.NewLog(ctx, "only note", nil, "", "", true)
	require.NoError(t, err)

	// Switching binds a second project name to the same folder. The folder's
	// local store must still contribute its entries exactly once.
	_, err = service.SwitchProject(ctx, "webapp", "")
	require.NoError(t, err)

	all, err := service.AllLogs(ctx, core.ScopeAll)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSwitchProject(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	workDir := makeDir(t, "scratch")

	service := newTestService(t, home, workDir)
	require.Equal(t, "scratch", service.Project())

	rec, err := service.SwitchProject(ctx, "webapp", "resuming the login work")
	require.NoError(t, err)
	assert.Equal(t, "webapp", rec.Current)
	assert.True(t, rec.Manual)
	assert.Equal(t, "webapp", service.Project())
	assert.Equal(t, "resuming the login work", rec.Projects["webapp"].LastNote)

	// The manual choice survives the next invocation in the same folder.
	next := newTestService(t, home, workDir)
	assert.Equal(t, "webapp", next.Project())
}

func TestManualContextDegradesInUnregisteredFolder(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	workDir := makeDir(t, "scratch")

	service := newTestService(t, home, workDir)
	_, err := service.SwitchProject(ctx, "webapp", "")
	require.NoError(t, err)

	// Moving to a folder the registry has never seen clears manual mode and
	// falls back to folder inference.
	elsewhere := makeDir(t, "sidequest")
	next := newTestService(t, home, elsewhere)
	assert.Equal(t, "sidequest", next.Project())

	rec, err := next.Context(ctx)
	require.NoError(t, err)
	assert.False(t, rec.Manual)
	assert.Equal(t, "sidequest", rec.Current)
}

func TestSearchEndToEnd(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, t.TempDir(), makeDir(t, "webapp"))

	_, err := service.NewLog(ctx, "fixed the navbar styling", []string{"css"}, "", "", true)
	require.NoError(t, err)
	_, err = service.NewLog(ctx, "rewrote the billing job", nil, "", "", true)
	require.NoError(t, err)

	results, err := service.Search(ctx, "nav bar", search.Filters{}, core.ScopeLocal, search.Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "fixed the navbar styling", results[0].Entry.Content)
}

// recordingContextStore keeps the context in memory and counts saves.
type recordingContextStore struct {
	rec   core.Context
	saves int
}

func (r *recordingContextStore) Load(ctx context.Context) (core.Context, error) {
	if r.rec.Projects == nil {
		return core.NewContext(), nil
	}
	return r.rec, nil
}

func (r *recordingContextStore) Save(ctx context.Context, rec core.Context) error {
	r.saves++
	return nil
}

func TestUpdateContextWithoutCurrentProjectIsANoOp(t *testing.T) {
	ctx := context.Background()
	fake := &recordingContextStore{}

	service := newTestService(t, t.TempDir(), makeDir(t, "webapp"), WithContextStore(fake))

	// Saves from construction are expected; UpdateContext must add none when
	// the store keeps reporting an empty context.
	before := fake.saves
	require.NoError(t, service.UpdateContext(ctx, "a note that has nowhere to go"))
	assert.Equal(t, before, fake.saves)
}

func TestServiceStorePath(t *testing.T) {
	home := t.TempDir()
	workDir := makeDir(t, "webapp")
	service := newTestService(t, home, workDir)

	local := service.StorePath(core.ScopeLocal)
	global := service.StorePath(core.ScopeGlobal)

	assert.Equal(t, filepath.Join(workDir, ".devtrack", "logs.json"), local)
	assert.Equal(t, filepath.Join(home, ".devlog", "db.json"), global)
}
