package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/latoulicious/artgallery/pkg/logging"
)

var (
	// ErrUnavailable reports that the database could not answer
	ErrUnavailable = errors.New("catalog data source unavailable")
	// ErrFixtureUnavailable reports that the fixture could not be loaded
	ErrFixtureUnavailable = errors.New("catalog fixture unavailable")
)

// QueryError describes a failed catalog operation. It matches both its
// Kind (ErrUnavailable or ErrFixtureUnavailable) and the underlying cause
// with errors.Is.
type QueryError struct {
	Op   string
	Mode Mode
	Kind error
	Err  error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("catalog %s (%s): %v", e.Op, e.Mode, e.Kind)
	}
	return fmt.Sprintf("catalog %s (%s): %v: %v", e.Op, e.Mode, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Result is the structured outcome of Run
type Result[T any] struct {
	Data  T      `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the operation succeeded
func (r Result[T]) OK() bool {
	return r.Error == ""
}

// Run executes fn and folds its outcome into a Result. Failures are logged
// and reported as a message instead of an error value.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	data, err := fn(ctx)
	if err != nil {
		logging.GetGlobalLoggerFactory().CreateLogger("catalog").Error("Catalog query failed", err, nil)
		return Result[T]{Error: err.Error()}
	}
	return Result[T]{Data: data}
}
