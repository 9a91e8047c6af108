package querycontext

import "fmt"

// LoadError reports a dataset that is missing, unreadable or not tabular.
// It is fatal to construction; no partial context is returned.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// QueryError reports SQL the engine rejected or could not finish. The message
// carries the engine's diagnostic.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
