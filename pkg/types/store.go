package types

import (
	"context"
	"errors"
)

// Predicate restricts a fetch to rows whose Field value is a member of
// Values. A single-element Values is the degenerate equality case.
type Predicate struct {
	Field  string
	Values []string
}

// Validate checks that the predicate is well-formed. An empty value set is
// valid and matches nothing.
func (p Predicate) Validate() error {
	if p.Field == "" {
		return ErrInvalidPredicate
	}
	return nil
}

// Reader is the read-only store interface consumed by the export core.
// Both operations take one predicate and return all matching rows (or their
// identifiers) in one logical call. The store is expected to present a
// consistent read view for the duration of an export.
type Reader interface {
	// FetchIDs returns the primary keys of rows of the given entity type
	// matching the predicate. Order is unspecified; an empty result is not
	// an error.
	FetchIDs(ctx context.Context, entity string, p Predicate) ([]string, error)

	// FetchRows returns the full rows of the given entity type matching the
	// predicate.
	FetchRows(ctx context.Context, entity string, p Predicate) ([]Row, error)
}

// Writer is the insert-only store interface consumed by the clone pipeline.
type Writer interface {
	// InsertRow inserts one row into the given entity table. The row must
	// already carry its primary key.
	InsertRow(ctx context.Context, entity string, row Row) error
}

// Store operation errors.
var (
	ErrStoreClosed      = errors.New("store is closed")
	ErrUnknownEntity    = errors.New("unknown entity type")
	ErrInvalidPredicate = errors.New("predicate field must not be empty")
	ErrMissingKey       = errors.New("row is missing its primary key")
)

// Export errors.
var (
	ErrMissionNotFound = errors.New("mission not found")
)
