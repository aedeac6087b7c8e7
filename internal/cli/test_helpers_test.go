package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/haeun-lim/haru/internal/event"
	"github.com/haeun-lim/haru/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testStore creates a temporary SQLite database with migrations applied and
// returns a storage.Store along with a cleanup function.
func testStore(t *testing.T) (*storage.SQLiteStore, func()) {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	require.NoError(t, err)

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		db.Close()
	}
	return store, cleanup
}

// seedEvent inserts an event and returns its generated ID.
func seedEvent(t *testing.T, store *storage.SQLiteStore, ev event.Event) string {
	t.Helper()
	require.NoError(t, store.AddEvent(context.Background(), &ev))
	return ev.ID
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
