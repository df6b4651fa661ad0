// Package builder provides a type-safe query builder for PostgreSQL.
package builder

import (
	"github.com/marshallshelly/pebble-quora/pkg/schema"
)

// SelectQuery represents a SELECT query with type safety.
type SelectQuery[T any] struct {
	db       *DB
	table    *schema.TableMetadata
	err      error
	columns  []string
	where    []Condition
	joins    []Join
	groupBy  []string
	orderBy  []OrderBy
	limit    *int
	distinct bool
}

// InsertQuery represents an INSERT ... RETURNING * query.
type InsertQuery[T any] struct {
	db     *DB
	table  *schema.TableMetadata
	err    error
	values []T
}

// UpdateQuery represents an UPDATE query.
type UpdateQuery[T any] struct {
	db    *DB
	table *schema.TableMetadata
	err   error
	sets  []assignment
	where []Condition
}

type assignment struct {
	column string
	value  any
}

// Condition is one term of a WHERE clause. Terms are joined with AND.
type Condition struct {
	Column   string
	Operator Operator
	Value    any
}

// Join represents an INNER JOIN clause.
type Join struct {
	Table     string
	Condition string
}

// OrderBy represents an ORDER BY term. Column may be an expression such as
// COUNT(question_likes.id).
type OrderBy struct {
	Column    string
	Direction OrderDirection
}

// Operator represents a comparison operator.
type Operator string

const (
	OpEqual  Operator = "="
	OpIsNull Operator = "IS NULL"
)

// OrderDirection represents the sort direction.
type OrderDirection string

const (
	Asc  OrderDirection = "ASC"
	Desc OrderDirection = "DESC"
)
