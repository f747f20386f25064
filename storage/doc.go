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


// Package storage provides the storage abstraction layer for cookbook.
//
// This package defines repository interfaces that decouple storage implementation
// from business logic, plus the Persister contract that moves whole collection
// documents to and from durable storage.
//
// # Architecture
//
// Storage is split in two layers:
//
//   - Repositories (package collection): one per record kind, holding the
//     loaded collection in memory and owning the JSON document format
//     ({"recipes": [...]}, {"restaurants": [...]}, {"users": [...]}).
//   - Persisters: move opaque document bytes atomically. The file persister
//     writes <path>.tmp and renames it over <path>; the badger and sqlite
//     persisters replace the document inside a single transaction.
//
// Every mutating repository call is persist-or-rollback: if the persister
// fails, the in-memory collection is restored before the error is returned,
// so memory and storage never diverge after a call returns.
//
// # Usage
//
//	p, err := file.NewPersister(filepath.Join(dir, "recipes.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	repo := collection.NewRecipeRepository(p)
//	if err := repo.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo := collection.NewRecipeRepository(collection.NewMemoryPersister())
//
// # Thread Safety
//
// Repositories are not safe for concurrent use. The tool runs one
// synchronous operation at a time per process.
package storage
