// Package store persists committed shape lists under string keys.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/sketchboard/internal/shape"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrUnknownDriver = errors.New("unknown store driver")
)

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Backend is a key/value store of opaque documents.
type Backend interface {
	// Get returns ErrNotFound when key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Options configures Open.
type Options struct {
	Driver      string
	DataDir     string
	DatabaseURL string
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		return NewFile(opts.DataDir)
	case DriverPostgres:
		return NewPostgres(ctx, opts.DatabaseURL)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
}

// Key returns the storage key of a board's shape list.
func Key(base, boardID string) string {
	if boardID == "" {
		return base
	}
	return base + ":" + boardID
}

// ShapeStore loads and saves one shape list under a fixed key.
type ShapeStore struct {
	backend Backend
	key     string
}

func NewShapeStore(backend Backend, key string) *ShapeStore {
	return &ShapeStore{backend: backend, key: key}
}

// Key returns the storage key.
func (s *ShapeStore) Key() string { return s.key }

// Load returns the stored shapes, or an empty list when nothing was saved yet.
func (s *ShapeStore) Load(ctx context.Context) ([]shape.Shape, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return []shape.Shape{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}

	shapes, err := shape.UnmarshalShapes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return shapes, nil
}

// Save replaces the stored list.
func (s *ShapeStore) Save(ctx context.Context, shapes []shape.Shape) error {
	data, err := shape.MarshalShapes(shapes)
	if err != nil {
		return fmt.Errorf("encode shapes: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("put %s: %w", s.key, err)
	}
	slog.Debug("shapes saved", "key", s.key, "count", len(shapes))
	return nil
}
