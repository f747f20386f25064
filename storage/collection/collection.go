// Package collection implements the JSON document store shared by every
// record kind and the entity repositories built on top of it.
package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/poiesic/cookbook/core"
	"github.com/poiesic/cookbook/storage"
)

// MaxID is the highest ID a stored record may carry. It keeps the next ID
// representable.
const MaxID = core.ID(math.MaxInt64 - 1)

// Codec describes how a record kind is addressed and decoded.
type Codec[T any] struct {
	// Field is the top-level array field of the document, e.g. "recipes".
	Field string
	// ID returns the record's identifier.
	ID func(T) core.ID
	// WithID returns a copy of the record carrying id.
	WithID func(T, core.ID) T
	// Decode builds a record from one array element, validating it.
	Decode func(json.RawMessage) (T, error)
	// Clone returns a deep copy with nil slices replaced by empty ones.
	Clone func(T) T
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer storage.Observer
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithObserver reports every load, save and remove to observer.
func WithObserver(observer storage.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// Collection holds every record of one kind in memory and persists the
// whole set as a single JSON document through a storage.Persister.
//
// Mutations are persist-or-rollback: when the persister fails, the
// in-memory change is undone before the error is returned.
type Collection[T any] struct {
	codec     Codec[T]
	persister storage.Persister
	items     []T
	nextID    core.ID
	closed    bool
	logger    *slog.Logger
	observer  storage.Observer
}

// New creates an empty collection. Call Load to read the stored document.
func New[T any](codec Codec[T], persister storage.Persister, opts ...Option) *Collection[T] {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return &Collection[T]{
		codec:     codec,
		persister: persister,
		nextID:    1,
		logger:    o.logger,
		observer:  o.observer,
	}
}

// Field returns the document field the collection is stored under.
func (c *Collection[T]) Field() string {
	return c.codec.Field
}

// Load replaces the in-memory collection with the stored document.
//
// A missing or empty document yields an empty collection. A document that is
// not valid JSON, or whose field is not an array, empties the collection,
// resets the ID sequence and returns storage.ErrMalformedDocument. Elements
// that fail to decode are logged and skipped.
func (c *Collection[T]) Load(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.observe("load", start, err) }()

	if c.closed {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := c.persister.ReadDocument(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.codec.Field, err)
	}

	c.items = nil
	c.nextID = 1

	if len(bytes.TrimSpace(data)) == 0 {
		c.logger.Debug("no stored document, starting empty", "collection", c.codec.Field)
		return nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %w", storage.ErrMalformedDocument, c.codec.Field, err)
	}

	raw, ok := doc[c.codec.Field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		c.logger.Debug("document has no records", "collection", c.codec.Field)
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return fmt.Errorf("%w: %s: field is not an array: %w", storage.ErrMalformedDocument, c.codec.Field, err)
	}

	items := make([]T, 0, len(elements))
	seen := make(map[core.ID]bool, len(elements))
	skipped := 0
	for i, element := range elements {
		record, err := c.codec.Decode(element)
		if err != nil {
			c.logger.Warn("skipping invalid record", "collection", c.codec.Field, "index", i, "err", err)
			skipped++
			continue
		}
		id := c.codec.ID(record)
		if !validID(id) {
			c.logger.Warn("skipping record with an id out of range", "collection", c.codec.Field, "index", i, "id", id)
			skipped++
			continue
		}
		if seen[id] {
			c.logger.Warn("skipping record with duplicate id", "collection", c.codec.Field, "index", i, "id", id)
			skipped++
			continue
		}
		seen[id] = true
		items = append(items, c.codec.Clone(record))
	}

	c.items = items
	c.EnsureNextIDIsCorrect()

	c.logger.Debug("collection loaded",
		"collection", c.codec.Field,
		"records", len(c.items),
		"skipped", skipped,
		"nextId", c.nextID,
		"checksum", storage.Checksum(data))
	return nil
}

// SaveAll writes the whole collection through the persister.
// Errors wrap storage.ErrPersistFailed.
func (c *Collection[T]) SaveAll(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.observe("save", start, err) }()

	if c.closed {
		return fmt.Errorf("%w: %w", storage.ErrPersistFailed, storage.ErrStorageClosed)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrPersistFailed, err)
	}

	data, err := c.encode()
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", storage.ErrPersistFailed, c.codec.Field, err)
	}

	if err := c.persister.WriteDocument(ctx, data); err != nil {
		c.logger.Error("failed to persist collection", "collection", c.codec.Field, "err", err)
		return fmt.Errorf("%w: %s: %w", storage.ErrPersistFailed, c.codec.Field, err)
	}

	c.logger.Debug("collection saved",
		"collection", c.codec.Field,
		"records", len(c.items),
		"checksum", storage.Checksum(data))
	return nil
}

// FindByID returns a copy of the record with id.
func (c *Collection[T]) FindByID(id core.ID) (T, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return c.codec.Clone(c.items[idx]), true
}

// FindAll returns copies of every record in insertion order.
func (c *Collection[T]) FindAll() []T {
	return c.Filter(nil)
}

// Filter returns copies of the records accepted by keep, in insertion order.
// A nil keep accepts everything.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if keep == nil || keep(item) {
			out = append(out, c.codec.Clone(item))
		}
	}
	return out
}

// Len returns the number of records held.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Upsert persists record. When isNew is true the record is appended and its
// ID must not be taken; otherwise it replaces the record with the same ID.
// On persistence failure the previous in-memory state is restored.
func (c *Collection[T]) Upsert(ctx context.Context, record T, isNew bool) error {
	id := c.codec.ID(record)
	if !validID(id) {
		return fmt.Errorf("%w: id %d is out of range 1..%d", storage.ErrInvalidRecord, id, MaxID)
	}
	record = c.codec.Clone(record)
	idx := c.indexOf(id)

	if isNew {
		if idx >= 0 {
			return fmt.Errorf("%w: %s %d", storage.ErrDuplicateID, c.codec.Field, id)
		}
		c.items = append(c.items, record)
		if err := c.SaveAll(ctx); err != nil {
			c.items = c.items[:len(c.items)-1]
			return err
		}
		return nil
	}

	if idx < 0 {
		return fmt.Errorf("%w: %s %d", storage.ErrNotFound, c.codec.Field, id)
	}
	previous := c.items[idx]
	c.items[idx] = record
	if err := c.SaveAll(ctx); err != nil {
		c.items[idx] = previous
		return err
	}
	return nil
}

// Save inserts or replaces record and returns its ID.
//
// A record with ID <= 0 receives the next ID. A record with a positive ID
// replaces the stored record with that ID, or is inserted as-is when no such
// record exists. The ID sequence always stays ahead of the highest ID.
// On failure the collection and the sequence are unchanged.
func (c *Collection[T]) Save(ctx context.Context, record T) (core.ID, error) {
	id := c.codec.ID(record)
	isNew := true
	if !id.Assigned() {
		id = c.nextID
		record = c.codec.WithID(record, id)
	} else if c.indexOf(id) >= 0 {
		isNew = false
	}

	if err := c.Upsert(ctx, record, isNew); err != nil {
		return 0, err
	}

	if id >= c.nextID {
		c.nextID = id + 1
	}
	return id, nil
}

// Remove deletes the record with id and persists the change.
// On persistence failure the record is restored at its original position.
func (c *Collection[T]) Remove(ctx context.Context, id core.ID) (err error) {
	start := time.Now()
	defer func() { c.observe("remove", start, err) }()

	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s %d", storage.ErrNotFound, c.codec.Field, id)
	}

	removed := c.items[idx]
	c.items = slices.Delete(c.items, idx, idx+1)
	if err := c.SaveAll(ctx); err != nil {
		c.items = slices.Insert(c.items, idx, removed)
		return err
	}
	return nil
}

// NextID returns the ID the next new record will receive.
func (c *Collection[T]) NextID() core.ID {
	return c.nextID
}

// SetNextID sets the ID sequence, raising next to max(ID)+1 if it would
// collide with a stored record.
func (c *Collection[T]) SetNextID(next core.ID) {
	c.nextID = max(next, c.maxID()+1, 1)
}

// EnsureNextIDIsCorrect raises the ID sequence to max(ID)+1 (1 when empty)
// if it has fallen behind. It never lowers the sequence.
func (c *Collection[T]) EnsureNextIDIsCorrect() {
	c.nextID = max(c.nextID, c.maxID()+1, 1)
}

// Close releases the persister. Further loads and saves fail.
func (c *Collection[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.persister.Close()
}

func validID(id core.ID) bool {
	return id.Assigned() && id <= MaxID
}

func (c *Collection[T]) indexOf(id core.ID) int {
	if !id.Assigned() {
		return -1
	}
	return slices.IndexFunc(c.items, func(item T) bool {
		return c.codec.ID(item) == id
	})
}

func (c *Collection[T]) maxID() core.ID {
	var highest core.ID
	for _, item := range c.items {
		highest = max(highest, c.codec.ID(item))
	}
	return highest
}

func (c *Collection[T]) encode() ([]byte, error) {
	items := make([]T, len(c.items))
	for i, item := range c.items {
		items[i] = c.codec.Clone(item)
	}
	data, err := json.MarshalIndent(map[string][]T{c.codec.Field: items}, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (c *Collection[T]) observe(operation string, start time.Time, err error) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveOperation(c.codec.Field, operation, time.Since(start), err)
}
