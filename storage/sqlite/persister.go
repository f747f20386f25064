// Package sqlite persists collection documents as rows of a SQLite state table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/cookbook/storage"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DB is a SQLite database holding one row per collection document.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the SQLite database at path.
// Use ":memory:" for a private in-memory database.
func Open(path string) (*DB, error) {
	if path == "" {
		path = "cookbook.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases shared across persisters
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &DB{db: db, path: path}, nil
}

// Path returns the configured database path.
func (d *DB) Path() string { return d.path }

// Close closes the database.
func (d *DB) Close() error { return d.db.Close() }

// Persister implements storage.Persister for one bucket of the state table.
type Persister struct {
	db     *DB
	bucket string
}

var _ storage.Persister = (*Persister)(nil)

// NewPersister creates a persister for bucket.
func NewPersister(db *DB, bucket string) *Persister {
	return &Persister{db: db, bucket: bucket}
}

// ReadDocument returns the bucket payload, or nil, nil if the bucket has no row.
func (p *Persister) ReadDocument(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := p.db.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, p.bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", p.bucket, err)
	}
	return payload, nil
}

// WriteDocument upserts the bucket payload in a transaction.
func (p *Persister) WriteDocument(ctx context.Context, data []byte) (retErr error) {
	tx, err := p.db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, p.bucket, data); err != nil {
		return fmt.Errorf("upsert %s: %w", p.bucket, err)
	}
	return tx.Commit()
}

// Close is a no-op; the shared DB is closed by its owner.
func (p *Persister) Close() error { return nil }
