package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cmdflash/internal/spacedrep"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil ent driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", kvTable,
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, kvTable, name)
}

func TestKVGetMissing(t *testing.T) {
	repo := openTestStore(t).KVRepo()

	got, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKVPutGet(t *testing.T) {
	repo := openTestStore(t).KVRepo()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "progress", []byte(`{"a":1}`)))

	got, err := repo.Get(ctx, "progress")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestKVPutOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.KVRepo()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "progress", []byte("first")))
	require.NoError(t, repo.Put(ctx, "progress", []byte("second")))

	got, err := repo.Get(ctx, "progress")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	var rows int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM "+kvTable).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestKVKeysAreIndependent(t *testing.T) {
	repo := openTestStore(t).KVRepo()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "a", []byte("1")))
	require.NoError(t, repo.Put(ctx, "b", []byte("2")))
	require.NoError(t, repo.Delete(ctx, "a"))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))
}

func TestKVDeleteIsIdempotent(t *testing.T) {
	repo := openTestStore(t).KVRepo()
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "missing"))
	require.NoError(t, repo.Put(ctx, "k", []byte("v")))
	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k"))

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.KVRepo().Put(ctx, "k", []byte("kept")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.KVRepo().Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(got))
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("CMDFLASH_DB", want)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}

func TestDefaultDBPathXDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("CMDFLASH_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "cmdflash", "cmdflash.db"), got)
}

func TestKVRepoBacksScheduler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sched.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	sched := spacedrep.NewScheduler(s.KVRepo())
	sched.UpdateCardProgress(ctx, "git-basics", "init", true)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	raw, err := s.KVRepo().Get(ctx, spacedrep.StorageKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"git-basics"`)

	cp, ok := spacedrep.NewScheduler(s.KVRepo()).LookupCardProgress(ctx, "git-basics", "init")
	require.True(t, ok)
	assert.Equal(t, spacedrep.LevelLearning, cp.MasteryLevel)
	assert.Equal(t, 1, cp.ReviewCount)
}
