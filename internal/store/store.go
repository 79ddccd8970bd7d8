package store

import (
	"context"
	"errors"

	"github.com/seantiz/directory/internal/model"
)

// ErrTableNotFound is returned when the employees table does not exist.
var ErrTableNotFound = errors.New("employees table not found")

// ErrMissingID is returned by Put when the record carries no identifier.
var ErrMissingID = errors.New("employee id is required")

// Store defines the persistence operations for employee records.
//
// Put performs no existence check: writing an existing id replaces the
// record. Scan returns records in no particular order.
type Store interface {
	Scan(ctx context.Context) ([]model.Employee, error)
	Put(ctx context.Context, e *model.Employee) error
	Close() error
}
