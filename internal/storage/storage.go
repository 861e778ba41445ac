package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwebster45206/vault-world/internal/manual"
)

var ErrNotFound = errors.New("result not found")

// Storage persists generation results.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	SaveResult(ctx context.Context, r *manual.Result) error
	LoadResult(ctx context.Context, id uuid.UUID) (*manual.Result, error)
	DeleteResult(ctx context.Context, id uuid.UUID) error
	// ListResults returns the ids of results that have not expired.
	ListResults(ctx context.Context) ([]uuid.UUID, error)
}
