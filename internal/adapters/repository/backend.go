package repository

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by a Backend when a collection has never been written.
var ErrBlobNotFound = errors.New("collection does not exist")

// MutateFunc receives the current encoded collection (nil when it does not
// exist yet) and returns the bytes to store. Returning ErrSkipWrite leaves the
// stored value untouched.
type MutateFunc func(current []byte) ([]byte, error)

// ErrSkipWrite aborts a mutation without treating it as a failure.
var ErrSkipWrite = errors.New("skip write")

// Backend persists encoded collections by name.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Mutate(ctx context.Context, name string, fn MutateFunc) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// Observer receives the outcome of every storage operation.
type Observer interface {
	ObserveStorage(collection, op string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveStorage(string, string, error) {}
