package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nalgeon/be"
	"github.com/strager/tinyc"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "history.db"))
	be.Err(t, err, nil)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewRun(t *testing.T) {
	source := "int x;\nint x;\ny = 1"
	run := NewRun(source, tinyc.Analyze(source))

	be.True(t, run.ID != "")
	be.True(t, !run.CreatedAt.IsZero())
	be.Equal(t, run.Source, source)
	be.Equal(t, run.Tokens, 10)
	be.Equal(t, run.SyntaxErrors, 1)
	be.Equal(t, run.SemanticErrors, 2)
	be.Equal(t, run.Symbols, 1)
	be.Equal(t, run.Clean(), false)

	other := NewRun(source, tinyc.Analyze(source))
	be.True(t, other.ID != run.ID)
}

func TestRecordAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := NewRun("int a;", tinyc.Analyze("int a;"))
	be.Err(t, store.Record(ctx, run), nil)

	got, err := store.Get(ctx, run.ID)
	be.Err(t, err, nil)
	be.Equal(t, got.ID, run.ID)
	be.Equal(t, got.Source, "int a;")
	be.Equal(t, got.Tokens, 4)
	be.Equal(t, got.Symbols, 1)
	be.True(t, got.Clean())
	be.True(t, got.CreatedAt.Equal(run.CreatedAt))
}

func TestGetNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	be.True(t, errors.Is(err, ErrNotFound))
}

func TestRecordRequiresID(t *testing.T) {
	store := openTestStore(t)

	err := store.Record(context.Background(), &Run{Source: "x"})
	be.True(t, err != nil)
}

func TestRecordDuplicateID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := &Run{ID: "same", Source: "a"}
	be.Err(t, store.Record(ctx, run), nil)
	be.True(t, store.Record(ctx, run) != nil)
}

func TestRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		run := &Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute), Source: id}
		be.Err(t, store.Record(ctx, run), nil)
	}

	runs, err := store.Recent(ctx, 2)
	be.Err(t, err, nil)
	be.Equal(t, len(runs), 2)
	be.Equal(t, runs[0].ID, "third")
	be.Equal(t, runs[1].ID, "second")

	runs, err = store.Recent(ctx, 0)
	be.Err(t, err, nil)
	be.Equal(t, len(runs), 3)
	be.Equal(t, runs[2].ID, "first")
}

func TestRecentEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.Recent(context.Background(), 5)
	be.Err(t, err, nil)
	be.Equal(t, runs, []*Run{})
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := OpenSQLite(path)
	be.Err(t, err, nil)
	be.Err(t, store.Record(ctx, &Run{ID: "kept", Source: "int k;"}), nil)
	be.Err(t, store.Close(), nil)

	store, err = OpenSQLite(path)
	be.Err(t, err, nil)
	defer store.Close()

	got, err := store.Get(ctx, "kept")
	be.Err(t, err, nil)
	be.Equal(t, got.Source, "int k;")
}

func TestStoreInterface(t *testing.T) {
	var s Store = openTestStore(t)
	be.True(t, s != nil)
}
