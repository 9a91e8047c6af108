// Package querycontext loads one dataset, registers it as the relation "df"
// in a private in-memory SQLite database and serves bounded, read-only
// operations over it.
//
// Engine access is serialized: queries run on a pool of one connection, so
// concurrent SQL calls queue on it. Every SQL call runs under a statement
// timeout which also bounds the time spent waiting for the connection. The
// database is held open by a separate loader connection, so a query
// connection dropped after a timeout or cancellation is replaced without
// losing the relation.
// Schema, head and summary read the immutable dataset directly and never
// touch the engine.
package querycontext

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/averycrespi/csvquery-mcp/internal/dataset"
	"github.com/averycrespi/csvquery-mcp/pkg/types"
)

const (
	// RelationName is the name the dataset is registered under
	RelationName = "df"
	// DefaultLimitCap is the maximum number of records any operation returns
	DefaultLimitCap = 10_000
	// DefaultQueryTimeout bounds each SQL call, including queueing for the engine
	DefaultQueryTimeout = 30 * time.Second
)

var _ types.Querier = &QueryContext{}

// QueryContext owns a loaded dataset and the engine it is registered in
type QueryContext struct {
	path         string
	data         *dataset.Dataset
	engine       *engine
	db           *sql.DB
	limitCap     int
	queryTimeout time.Duration

	summaryOnce    sync.Once
	summaryPayload string
	summaryErr     error
}

// Option configures a QueryContext
type Option func(*QueryContext)

// WithLimitCap sets the maximum number of records returned by head and sql.
// Values below 1 are ignored.
func WithLimitCap(limitCap int) Option {
	return func(q *QueryContext) {
		if limitCap >= 1 {
			q.limitCap = limitCap
		}
	}
}

// WithQueryTimeout sets the per-call SQL timeout. Values below or equal to
// zero are ignored, so every call stays bounded.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(q *QueryContext) {
		if timeout > 0 {
			q.queryTimeout = timeout
		}
	}
}

// New loads the tabular source at path and registers it as relation "df".
// Any failure is returned as a *LoadError.
func New(ctx context.Context, path string, opts ...Option) (*QueryContext, error) {
	data, err := dataset.Load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	q, err := NewFromDataset(ctx, data, opts...)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	q.path = path

	slog.Info("Loaded dataset",
		"path", path,
		"relation", RelationName,
		"rows", data.NumRows(),
		"columns", data.NumColumns())

	return q, nil
}

// NewFromDataset registers an already loaded dataset in a fresh engine
func NewFromDataset(ctx context.Context, data *dataset.Dataset, opts ...Option) (*QueryContext, error) {
	q := &QueryContext{
		data:         data,
		limitCap:     DefaultLimitCap,
		queryTimeout: DefaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(q)
	}

	e, err := openEngine(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to register relation %s: %w", RelationName, err)
	}
	q.engine = e
	q.db = e.db

	return q, nil
}

// Close releases the engine
func (q *QueryContext) Close() error {
	return q.engine.Close()
}

// Path returns the source path the dataset was loaded from, if any
func (q *QueryContext) Path() string {
	return q.path
}

// LimitCap returns the maximum number of records an operation returns
func (q *QueryContext) LimitCap() int {
	return q.limitCap
}

// Dataset returns the loaded dataset
func (q *QueryContext) Dataset() *dataset.Dataset {
	return q.data
}

// clamp bounds a caller-supplied count into [1, limitCap]
func (q *QueryContext) clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > q.limitCap {
		return q.limitCap
	}
	return n
}
