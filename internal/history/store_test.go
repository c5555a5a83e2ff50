package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newSQLiteTestStore(t *testing.T, limit int) *SQLStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), limit)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// exerciseStore checks the behaviour every backend shares. The store must
// start empty and use DefaultLimit.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	names := []string{"One", "Two", "Three", "Four", "Five", "Six"}
	for i, name := range names {
		err := s.Record(ctx, Entry{
			GameName:   name,
			TagLine:    "BR1",
			Region:     "americas",
			Platform:   "br1",
			SearchedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record(%s) error = %v", name, err)
		}
	}

	got, err := s.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	want := []string{"Six", "Five", "Four", "Three", "Two"}
	assertNames(t, got, want)

	// searching an existing player again, in different case, moves them up
	err = s.Record(ctx, Entry{
		GameName:      "three",
		TagLine:       "br1",
		Region:        "americas",
		Platform:      "br1",
		ProfileIconID: 29,
		SearchedAt:    base.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Record(three) error = %v", err)
	}

	got, err = s.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	assertNames(t, got, []string{"three", "Six", "Five", "Four", "Two"})
	if got[0].ProfileIconID != 29 {
		t.Errorf("ProfileIconID = %d, want 29", got[0].ProfileIconID)
	}
	if !got[0].SearchedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("SearchedAt = %v, want %v", got[0].SearchedAt, base.Add(time.Hour))
	}

	if err := s.Record(ctx, Entry{GameName: "", TagLine: "BR1"}); err == nil {
		t.Error("expected error for empty game name")
	}
}

func assertNames(t *testing.T, got []Entry, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].GameName != want[i] {
			names := make([]string, len(got))
			for j, e := range got {
				names[j] = e.GameName
			}
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, newSQLiteTestStore(t, 0))
}

func TestSQLiteStore_EmptyRecent(t *testing.T) {
	s := newSQLiteTestStore(t, 3)

	got, err := s.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Recent() = %v, want empty", got)
	}
}

func TestSQLiteStore_CustomLimit(t *testing.T) {
	s := newSQLiteTestStore(t, 2)
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		s.Record(ctx, Entry{GameName: name, TagLine: "X", SearchedAt: time.Unix(int64(i), 0)})
	}

	got, err := s.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	assertNames(t, got, []string{"C", "B"})
}

func TestSQLiteStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path, 0)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := s.Record(ctx, Entry{GameName: "Keep", TagLine: "ME"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(path, 0)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	assertNames(t, got, []string{"Keep"})
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: "redis"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpen_MissingSettings(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Options{Backend: BackendTurso}); err == nil {
		t.Error("expected error for turso without URL")
	}
	if _, err := Open(ctx, Options{Backend: BackendPostgres}); err == nil {
		t.Error("expected error for postgres without DATABASE_URL")
	}
}

func TestOpen_SQLite(t *testing.T) {
	s, err := Open(context.Background(), Options{
		Backend: BackendSQLite,
		Path:    filepath.Join(t.TempDir(), "h.db"),
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if _, ok := s.(*SQLStore); !ok {
		t.Errorf("Open() = %T, want *SQLStore", s)
	}
}

func TestTursoStore_Integration(t *testing.T) {
	url := os.Getenv("TEST_TURSO_URL")
	if url == "" {
		t.Skip("TEST_TURSO_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewTursoStore(ctx, url, os.Getenv("TEST_TURSO_TOKEN"), 0)
	if err != nil {
		t.Fatalf("NewTursoStore() error = %v", err)
	}
	defer s.Close()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_searches`); err != nil {
		t.Fatalf("failed to reset table: %v", err)
	}
	exerciseStore(t, s)
}

func TestPostgresStore_Integration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, url, 0)
	if err != nil {
		t.Fatalf("NewPostgresStore() error = %v", err)
	}
	defer s.Close()

	if _, err := s.pool.Exec(ctx, `DELETE FROM recent_searches`); err != nil {
		t.Fatalf("failed to reset table: %v", err)
	}
	exerciseStore(t, s)
}
