// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cookbook/storage"
)

// DocumentInfo describes the last write of a document.
type DocumentInfo struct {
	Revision  uint64    `json:"revision"`
	Checksum  string    `json:"checksum"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DocumentPersister implements storage.Persister for one named document
// inside a shared Backend.
type DocumentPersister struct {
	backend *Backend
	name    string
}

var _ storage.Persister = (*DocumentPersister)(nil)

// NewDocumentPersister creates a persister for the document called name.
func NewDocumentPersister(backend *Backend, name string) *DocumentPersister {
	return &DocumentPersister{
		backend: backend,
		name:    name,
	}
}

// ReadDocument retrieves the document.
// Returns nil, nil if it was never written.
func (p *DocumentPersister) ReadDocument(ctx context.Context) ([]byte, error) {
	if p.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	var data []byte
	err := p.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentKey(p.name))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	}, false)
	return data, err
}

// WriteDocument stores data and its revision info in one transaction.
func (p *DocumentPersister) WriteDocument(ctx context.Context, data []byte) error {
	if p.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.backend.WithTx(func(tx *badger.Txn) error {
		info, err := readInfo(tx, p.name)
		if err != nil {
			return err
		}
		next := DocumentInfo{
			Checksum:  storage.Checksum(data),
			Size:      len(data),
			UpdatedAt: time.Now().UTC(),
		}
		if info != nil {
			next.Revision = info.Revision
		}
		next.Revision++

		encoded, err := json.Marshal(next)
		if err != nil {
			return err
		}
		if err := tx.Set(makeDocumentKey(p.name), slices.Clone(data)); err != nil {
			return err
		}
		if err := tx.Set(makeDocumentInfoKey(p.name), encoded); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Info returns the revision info of the document.
// Returns nil, nil if it was never written.
func (p *DocumentPersister) Info(ctx context.Context) (*DocumentInfo, error) {
	var info *DocumentInfo
	err := p.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		info, err = readInfo(tx, p.name)
		return err
	}, false)
	return info, err
}

// Close is a no-op; the shared Backend is closed by its owner.
func (p *DocumentPersister) Close() error {
	return nil
}

func readInfo(tx *badger.Txn, name string) (*DocumentInfo, error) {
	item, err := tx.Get(makeDocumentInfoKey(name))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var info DocumentInfo
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}
