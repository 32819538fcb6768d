package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/ports"
)

// Store bundles what every collection needs: a backend, an observer and a clock.
type Store struct {
	backend  Backend
	observer Observer
	now      func() time.Time
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithObserver reports every storage operation to o.
func WithObserver(o Observer) StoreOption {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock overrides the time source used for createdAt stamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store over backend.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend:  backend,
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// HealthCheck checks the underlying backend.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.backend.HealthCheck(ctx)
}

// Collection is a typed JSON array persisted under a single name.
type Collection[T entities.Record] struct {
	store    *Store
	name     string
	less     func(a, b T) bool
	onInsert func(existing []T, record T)
}

// CollectionOption configures a Collection
type CollectionOption[T entities.Record] func(*Collection[T])

// WithNaturalOrder sets the tie-break used between records that share a sort index.
func WithNaturalOrder[T entities.Record](less func(a, b T) bool) CollectionOption[T] {
	return func(c *Collection[T]) {
		c.less = less
	}
}

// WithInsertHook runs fn on every new record before it is stored.
func WithInsertHook[T entities.Record](fn func(existing []T, record T)) CollectionOption[T] {
	return func(c *Collection[T]) {
		c.onInsert = fn
	}
}

// NewCollection creates a collection named name in store.
func NewCollection[T entities.Record](store *Store, name string, opts ...CollectionOption[T]) *Collection[T] {
	c := &Collection[T]{store: store, name: name}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// List returns every record ordered by sort index, then by natural order.
func (c *Collection[T]) List(ctx context.Context) (records []T, err error) {
	defer func() { c.store.observer.ObserveStorage(c.name, "list", err) }()

	records, err = c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.sort(records)
	return records, nil
}

// Featured returns the records flagged as featured, in list order.
func (c *Collection[T]) Featured(ctx context.Context) ([]T, error) {
	records, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]T, 0, len(records))
	for _, r := range records {
		if r.IsFeatured() {
			featured = append(featured, r)
		}
	}
	return featured, nil
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(ctx context.Context, id int) (record T, err error) {
	defer func() { c.store.observer.ObserveStorage(c.name, "get", err) }()

	records, err := c.load(ctx)
	if err != nil {
		return record, err
	}
	if i := indexOf(records, id); i >= 0 {
		return records[i], nil
	}
	return record, ports.ErrNotFound
}

// Create assigns the next id and a creation time to record and appends it.
func (c *Collection[T]) Create(ctx context.Context, record T) (T, error) {
	err := c.mutate(ctx, "create", func(records []T) ([]T, error) {
		record.SetID(nextID(records))
		record.SetCreatedAt(c.store.now().UTC())
		if c.onInsert != nil {
			c.onInsert(records, record)
		}
		return append(records, record), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// Update applies fn to the stored record with the given id.
func (c *Collection[T]) Update(ctx context.Context, id int, fn func(T) error) (T, error) {
	var updated T
	err := c.mutate(ctx, "update", func(records []T) ([]T, error) {
		i := indexOf(records, id)
		if i < 0 {
			return nil, ports.ErrNotFound
		}
		if err := fn(records[i]); err != nil {
			return nil, err
		}
		records[i].SetID(id)
		updated = records[i]
		return records, nil
	})
	return updated, err
}

// Delete removes the record with the given id.
func (c *Collection[T]) Delete(ctx context.Context, id int) error {
	return c.mutate(ctx, "delete", func(records []T) ([]T, error) {
		i := indexOf(records, id)
		if i < 0 {
			return nil, ports.ErrNotFound
		}
		return append(records[:i], records[i+1:]...), nil
	})
}

// Reorder gives each listed record its index in ids as sort index. Records
// that are not listed move behind them with entities.UnsortedPosition. The
// stored array is rewritten in the new order.
func (c *Collection[T]) Reorder(ctx context.Context, ids []int) ([]T, error) {
	positions := make(map[int]int, len(ids))
	for i, id := range ids {
		if _, seen := positions[id]; !seen {
			positions[id] = i
		}
	}

	var reordered []T
	err := c.mutate(ctx, "reorder", func(records []T) ([]T, error) {
		for _, r := range records {
			if pos, ok := positions[r.GetID()]; ok {
				r.SetPosition(pos)
			} else {
				r.SetPosition(entities.UnsortedPosition)
			}
		}
		c.sort(records)
		reordered = records
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return reordered, nil
}

// appendPosition places a new record behind every record that already has a
// sort index. Until the collection is first reordered every index is zero and
// the natural order decides.
func appendPosition[T entities.Record](existing []T, record T) {
	if record.Position() != 0 {
		return
	}
	if last := lastPosition(existing); last > 0 {
		record.SetPosition(last + 1)
	}
}

func lastPosition[T entities.Record](records []T) int {
	last := 0
	for _, r := range records {
		if p := r.Position(); p > last {
			last = p
		}
	}
	return last
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.backend.Read(ctx, c.name)
	if errors.Is(err, ErrBlobNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	return c.decode(data)
}

func (c *Collection[T]) mutate(ctx context.Context, op string, fn func([]T) ([]T, error)) (err error) {
	defer func() { c.store.observer.ObserveStorage(c.name, op, err) }()

	return c.store.backend.Mutate(ctx, c.name, func(current []byte) ([]byte, error) {
		records, err := c.decode(current)
		if err != nil {
			return nil, err
		}
		next, err := fn(records)
		if err != nil {
			return nil, err
		}
		return encode(next)
	})
}

func (c *Collection[T]) decode(data []byte) ([]T, error) {
	records := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("collection %s is corrupt: %w", c.name, err)
	}

	// A literal null element would otherwise surface as a nil record.
	kept := records[:0]
	for _, r := range records {
		if !isNil(r) {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

func (c *Collection[T]) sort(records []T) {
	sort.SliceStable(records, func(i, j int) bool {
		pi, pj := records[i].Position(), records[j].Position()
		if pi != pj {
			return pi < pj
		}
		if c.less != nil {
			return c.less(records[i], records[j])
		}
		return false
	})
}

func encode(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return append(data, '\n'), nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func indexOf[T entities.Record](records []T, id int) int {
	for i, r := range records {
		if r.GetID() == id {
			return i
		}
	}
	return -1
}

func nextID[T entities.Record](records []T) int {
	max := 0
	for _, r := range records {
		if id := r.GetID(); id > max {
			max = id
		}
	}
	return max + 1
}
