package credstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/rbmoura/sysportal/internal/client/credstore/migrations"
	"github.com/rbmoura/sysportal/internal/common"
	"github.com/rbmoura/sysportal/internal/cryptox"
	"github.com/rbmoura/sysportal/internal/dbx"
)

const (
	dbFileName  = "portal.db"
	keyFileName = "portal.key"

	// sessionKey is the fixed row key: the store holds exactly one
	// credential.
	sessionKey = "session"

	// Key-file layout: 32 bytes of secret followed by 16 bytes of salt.
	keyFileLen = 48
)

// SQLiteStore is the durable Store implementation. The record is sealed
// with AES-GCM before it touches disk; the seal key is derived from a
// per-install random key file kept next to the database.
type SQLiteStore struct {
	db      *sql.DB
	sealKey []byte
}

// NewSQLiteStore wraps an already migrated database handle. Callers outside
// tests normally use Open.
func NewSQLiteStore(db *sql.DB, sealKey []byte) *SQLiteStore {
	return &SQLiteStore{db: db, sealKey: sealKey}
}

// Open creates (or reuses) the credential database and key file inside
// dataDir and returns a ready Store.
func Open(ctx context.Context, dataDir string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrStorageUnavailable, err)
	}

	sealKey, err := loadOrCreateSealKey(filepath.Join(dataDir, keyFileName))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return NewSQLiteStore(db, sealKey), nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// loadOrCreateSealKey reads the per-install key file, generating it on
// first use with 0600 permissions.
func loadOrCreateSealKey(path string) ([]byte, error) {
	material, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		material = common.GenerateRandByteArray(keyFileLen)
		if err := os.WriteFile(path, material, 0o600); err != nil {
			return nil, fmt.Errorf("write key file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	if len(material) != keyFileLen {
		return nil, fmt.Errorf("key file %s has unexpected size %d", path, len(material))
	}
	return cryptox.DeriveSealKey(material[:32], material[32:]), nil
}

func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	ciphertext, nonce, err := cryptox.Seal(rec, s.sealKey)
	if err != nil {
		return fmt.Errorf("%w: seal: %v", ErrStorageUnavailable, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO credentials (key, ciphertext, nonce, saved_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET ciphertext = excluded.ciphertext, nonce = excluded.nonce, saved_at = excluded.saved_at
		`, sessionKey, ciphertext, nonce, rec.SavedAt.UTC())
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: save: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Record, bool, error) {
	var ciphertext, nonce []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT ciphertext, nonce FROM credentials WHERE key = ?`, sessionKey,
	).Scan(&ciphertext, &nonce)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("%w: load: %v", ErrStorageUnavailable, err)
	}

	var rec Record
	if err := cryptox.Open(ciphertext, nonce, s.sealKey, &rec); err != nil {
		// An unsealable record (lost key file, corrupt row) degrades to
		// the normal logged-out condition rather than blocking startup.
		return Record{}, false, nil
	}
	return rec, true, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, sessionKey); err != nil {
		return fmt.Errorf("%w: clear: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
