package collection

import (
	"context"
	"slices"

	"github.com/poiesic/cookbook/storage"
)

// MemoryPersister keeps the document in memory. It backs the "memory"
// storage driver and tests. Setting WriteErr makes every write fail.
type MemoryPersister struct {
	data     []byte
	writes   int
	closed   bool
	WriteErr error
}

var _ storage.Persister = (*MemoryPersister)(nil)

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// NewMemoryPersisterWith creates an in-memory persister holding document.
func NewMemoryPersisterWith(document []byte) *MemoryPersister {
	return &MemoryPersister{data: slices.Clone(document)}
}

// ReadDocument returns a copy of the stored document, or nil if none was written.
func (m *MemoryPersister) ReadDocument(ctx context.Context) ([]byte, error) {
	if m.closed {
		return nil, storage.ErrStorageClosed
	}
	return slices.Clone(m.data), nil
}

// WriteDocument replaces the stored document unless WriteErr is set.
func (m *MemoryPersister) WriteDocument(ctx context.Context, data []byte) error {
	if m.closed {
		return storage.ErrStorageClosed
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.data = slices.Clone(data)
	m.writes++
	return nil
}

// Document returns a copy of the stored document.
func (m *MemoryPersister) Document() []byte {
	return slices.Clone(m.data)
}

// Writes returns the number of successful writes.
func (m *MemoryPersister) Writes() int {
	return m.writes
}

func (m *MemoryPersister) Close() error {
	m.closed = true
	return nil
}
