package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/folio/portfolio/internal/ports"
)

// Document is a single JSON object persisted under a name.
type Document[T any] struct {
	store *Store
	name  string
}

// NewDocument creates a document named name in store.
func NewDocument[T any](store *Store, name string) *Document[T] {
	return &Document[T]{store: store, name: name}
}

// Get returns the stored value, or ports.ErrNotFound if it was never saved.
func (d *Document[T]) Get(ctx context.Context) (value *T, err error) {
	defer func() { d.store.observer.ObserveStorage(d.name, "get", err) }()

	data, err := d.store.backend.Read(ctx, d.name)
	if errors.Is(err, ErrBlobNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d.decode(data)
}

// Save replaces the stored value.
func (d *Document[T]) Save(ctx context.Context, value *T) (err error) {
	defer func() { d.store.observer.ObserveStorage(d.name, "save", err) }()

	return d.store.backend.Mutate(ctx, d.name, func([]byte) ([]byte, error) {
		return encode(value)
	})
}

// Update applies fn to the stored value.
func (d *Document[T]) Update(ctx context.Context, fn func(*T) error) (updated *T, err error) {
	defer func() { d.store.observer.ObserveStorage(d.name, "update", err) }()

	err = d.store.backend.Mutate(ctx, d.name, func(current []byte) ([]byte, error) {
		value, err := d.decode(current)
		if err != nil {
			return nil, err
		}
		if err := fn(value); err != nil {
			return nil, err
		}
		updated = value
		return encode(value)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (d *Document[T]) decode(data []byte) (*T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ports.ErrNotFound
	}
	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, fmt.Errorf("document %s is corrupt: %w", d.name, err)
	}
	return &value, nil
}
