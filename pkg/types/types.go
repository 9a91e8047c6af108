package types

import "context"

// Querier defines the read-only operations served over the loaded dataset.
// Every method returns the serialized JSON payload handed back to callers.
type Querier interface {
	Schema() (string, error)
	Head(n int) (string, error)
	SQL(ctx context.Context, query string, limit int) (string, error)
	Summary() (string, error)
}
