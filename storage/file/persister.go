// Package file persists collection documents as JSON files on the local filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/cookbook/storage"
)

// TempSuffix is appended to the document path while a write is in flight.
const TempSuffix = ".tmp"

// Persister implements storage.Persister for a single JSON file.
//
// Writes go to <path>.tmp, are synced, and are renamed over <path>, so the
// document on disk is always either the previous or the new version.
type Persister struct {
	path   string
	logger *slog.Logger
}

var _ storage.Persister = (*Persister)(nil)

// Option configures a Persister.
type Option func(*Persister)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Persister) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPersister creates a file persister for path, creating its parent
// directory when needed.
func NewPersister(path string, opts ...Option) (*Persister, error) {
	if path == "" {
		return nil, errors.New("file persister: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	p := &Persister{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Path returns the document path.
func (p *Persister) Path() string { return p.path }

// ReadDocument returns the file contents. A missing file yields nil, nil.
// A file that cannot be opened is logged and treated as missing.
func (p *Persister) ReadDocument(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("cannot open document, starting empty", "path", p.path, "err", err)
		}
		return nil, nil
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}
	return data, nil
}

// WriteDocument atomically replaces the file with data.
func (p *Persister) WriteDocument(ctx context.Context, data []byte) (retErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp := p.path + TempSuffix

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("replace %s: %w", p.path, err)
	}
	return nil
}

// Close is a no-op; the file is only held open during reads and writes.
func (p *Persister) Close() error { return nil }
