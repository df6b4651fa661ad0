// Package runtime holds the store handle and the error taxonomy shared by the
// query builder and the record mappers.
package runtime

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyPersisted is returned when creating a record that already has an id.
	ErrAlreadyPersisted = errors.New("record already persisted")

	// ErrNotPersisted is returned when updating a record that has no id.
	ErrNotPersisted = errors.New("record not persisted")

	// ErrInvalidModel is returned when an invalid model is provided.
	ErrInvalidModel = errors.New("invalid model")

	// ErrNoPrimaryKey is returned when a table has no primary key.
	ErrNoPrimaryKey = errors.New("no primary key defined")

	// ErrNoConnection is returned when no database connection is available.
	ErrNoConnection = errors.New("no database connection")
)

// SQLSTATE codes inspected by the classification helpers.
const (
	UniqueViolationCode     = "23505"
	ForeignKeyViolationCode = "23503"
	NotNullViolationCode    = "23502"
)

// QueryError represents a query execution error.
type QueryError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v\nQuery: %s", e.Err, e.Query)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a create or update attempted on a record in the
// wrong lifecycle state. Err is ErrAlreadyPersisted or ErrNotPersisted.
type PersistenceError struct {
	Table string
	ID    int64
	Err   error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s id=%d: %v", e.Table, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AsPgError extracts the server error from err, if any.
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, UniqueViolationCode)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, ForeignKeyViolationCode)
}

// IsNotNullViolation reports whether err is a NOT NULL violation.
func IsNotNullViolation(err error) bool {
	return hasCode(err, NotNullViolationCode)
}

func hasCode(err error, code string) bool {
	pe, ok := AsPgError(err)
	return ok && pe.Code == code
}
