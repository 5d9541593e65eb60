package credstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openStore(t *testing.T, dir string) *SQLiteStore {
	t.Helper()
	store, err := Open(context.Background(), dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, t.TempDir())

	_, ok, err := store.Load(ctx)
	require.NoError(t, err, "absent credential is not an error")
	require.False(t, ok)

	rec := Record{Token: "tok-1", Email: "user@example.com", SavedAt: time.Now()}
	require.NoError(t, store.Save(ctx, rec))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec.Token, got.Token)
	require.Equal(t, rec.Email, got.Email)

	require.NoError(t, store.Clear(ctx))
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, t.TempDir())

	require.NoError(t, store.Save(ctx, Record{Token: "old", Email: "a@b.c", SavedAt: time.Now()}))
	require.NoError(t, store.Save(ctx, Record{Token: "new", Email: "a@b.c", SavedAt: time.Now()}))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new", got.Token)
}

func TestClearIdempotent(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, t.TempDir())

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := openStore(t, dir)
	require.NoError(t, first.Save(ctx, Record{Token: "tok", Email: "user@example.com", SavedAt: time.Now()}))
	require.NoError(t, first.Close())

	second := openStore(t, dir)
	got, ok, err := second.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok", got.Token)
	require.Equal(t, "user@example.com", got.Email)
}

func TestTokenSealedAtRest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := openStore(t, dir)

	const token = "very-secret-bearer-token"
	require.NoError(t, store.Save(ctx, Record{Token: token, Email: "user@example.com", SavedAt: time.Now()}))

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	require.NoError(t, err)
	defer db.Close()

	var ciphertext []byte
	require.NoError(t, db.QueryRow(`SELECT ciphertext FROM credentials`).Scan(&ciphertext))
	require.NotContains(t, string(ciphertext), token)

	raw, err := os.ReadFile(filepath.Join(dir, dbFileName))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), token), "token must not appear in the db file")
}

func TestUnsealableRecordIsAbsent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := openStore(t, dir)
	require.NoError(t, store.Save(ctx, Record{Token: "tok", Email: "user@example.com", SavedAt: time.Now()}))
	require.NoError(t, store.Close())

	// Losing the key file makes the sealed row unreadable; the store must
	// fall back to the normal logged-out condition.
	require.NoError(t, os.Remove(filepath.Join(dir, keyFileName)))

	reopened := openStore(t, dir)
	_, ok, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKeyFilePermissions(t *testing.T) {
	dir := t.TempDir()
	openStore(t, dir)

	info, err := os.Stat(filepath.Join(dir, keyFileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
