// Package repository provides typed record operations over a storage.Adapter.
package repository

import (
	"context"
	"sync"
	"time"

	"career-guide/errors"
	"career-guide/models"
	"career-guide/storage"

	"github.com/google/uuid"
)

// Store is the process-wide handle every repository goes through. It owns
// the adapter, the id generator and clock, and one mutex per collection.
type Store struct {
	adapter storage.Adapter
	newID   func() string
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Option func(*Store)

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(adapter storage.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

// Record is satisfied by a pointer to any model embedding models.Base.
type Record[T any] interface {
	*T
	Meta() *models.Base
}

// Collection is the generic find/create/update layer over one named collection.
type Collection[T any, PT Record[T]] struct {
	name  string
	store *Store
}

func NewCollection[T any, PT Record[T]](store *Store, name string) *Collection[T, PT] {
	return &Collection[T, PT]{name: name, store: store}
}

func (c *Collection[T, PT]) Name() string {
	return c.name
}

func (c *Collection[T, PT]) All(ctx context.Context) []T {
	return storage.Read[T](ctx, c.store.adapter, c.name)
}

// load is the read used before a write. Only a missing collection counts as
// empty; any other failure is returned so the write cannot replace records
// it never saw.
func (c *Collection[T, PT]) load(ctx context.Context) ([]T, error) {
	records, err := storage.Decode[T](ctx, c.store.adapter, c.name)
	if errors.IsKind(err, errors.NotFound) {
		return []T{}, nil
	}
	return records, err
}

// FindBy returns the first record matching pred.
func (c *Collection[T, PT]) FindBy(ctx context.Context, pred func(*T) bool) (T, bool) {
	records := c.All(ctx)
	for i := range records {
		if pred(&records[i]) {
			return records[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T, PT]) FindByID(ctx context.Context, id string) (T, bool) {
	return c.FindBy(ctx, func(rec *T) bool { return PT(rec).Meta().ID == id })
}

// Filter returns every matching record in stored order. Never nil.
func (c *Collection[T, PT]) Filter(ctx context.Context, pred func(*T) bool) []T {
	out := make([]T, 0)
	for _, rec := range c.All(ctx) {
		if pred(&rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Create assigns a fresh id, stamps createdAt == updatedAt and appends rec.
func (c *Collection[T, PT]) Create(ctx context.Context, rec T) (T, error) {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	meta := PT(&rec).Meta()
	now := c.store.now()
	meta.ID = c.store.newID()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if err := storage.Write(ctx, c.store.adapter, c.name, append(records, rec)); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Update applies mutate to the record with the given id and persists the
// collection. found is false when no record has that id. The id and
// createdAt cannot be changed by mutate; updatedAt never moves backwards.
func (c *Collection[T, PT]) Update(ctx context.Context, id string, mutate func(*T)) (rec T, found bool, err error) {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return rec, false, err
	}
	for i := range records {
		meta := PT(&records[i]).Meta()
		if meta.ID != id {
			continue
		}
		prev := *meta

		mutate(&records[i])

		meta = PT(&records[i]).Meta()
		meta.ID = prev.ID
		meta.CreatedAt = prev.CreatedAt
		meta.UpdatedAt = c.store.now()
		if meta.UpdatedAt.Before(prev.UpdatedAt) {
			meta.UpdatedAt = prev.UpdatedAt
		}

		if err := storage.Write(ctx, c.store.adapter, c.name, records); err != nil {
			return rec, true, err
		}
		return records[i], true, nil
	}
	return rec, false, nil
}

// Seed writes recs when the collection holds nothing. Records keep a preset
// id; missing ids and timestamps are filled in. It reports whether it wrote.
func (c *Collection[T, PT]) Seed(ctx context.Context, recs []T) (bool, error) {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	existing, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	now := c.store.now()
	out := make([]T, len(recs))
	for i, rec := range recs {
		meta := PT(&rec).Meta()
		if meta.ID == "" {
			meta.ID = c.store.newID()
		}
		if meta.CreatedAt.IsZero() {
			meta.CreatedAt = now
		}
		if meta.UpdatedAt.IsZero() {
			meta.UpdatedAt = meta.CreatedAt
		}
		out[i] = rec
	}
	if err := storage.Write(ctx, c.store.adapter, c.name, out); err != nil {
		return false, err
	}
	return true, nil
}
