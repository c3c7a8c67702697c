package ports

import (
	"context"
	"errors"
	"time"

	"kundli/internal/domain"
)

// ErrChartNotFound is returned by ChartStore.Delete when no chart has the given ID
var ErrChartNotFound = errors.New("chart not found")

// ChartRecord is a cached chart together with its lookup metadata
type ChartRecord struct {
	ID        string
	Key       string // Hash of the canonical input tuple
	Label     string
	Provider  string
	CreatedAt time.Time
	Chart     domain.Kundli
}

// ChartStore caches computed charts. Charts are deterministic for a given key,
// so a stored chart is always valid for that key.
type ChartStore interface {
	// Lifecycle
	Close() error

	// Lookup. A miss returns nil, nil.
	GetByKey(ctx context.Context, key string) (*ChartRecord, error)
	GetByID(ctx context.Context, id string) (*ChartRecord, error)
	List(ctx context.Context) ([]ChartRecord, error)

	// Mutation
	Put(ctx context.Context, rec *ChartRecord) error
	Delete(ctx context.Context, id string) error
}
