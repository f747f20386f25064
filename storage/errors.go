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


package storage

import "errors"

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID indicates an insert whose ID is already taken.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrMalformedDocument indicates the stored document could not be parsed.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrInvalidRecord indicates a stored element could not be decoded into a record.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrPersistFailed indicates the document could not be written durably.
	ErrPersistFailed = errors.New("persist failed")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrUnknownDriver indicates an unsupported storage driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")
)
