package builder

import (
	"github.com/marshallshelly/pebble-quora/pkg/registry"
	"github.com/marshallshelly/pebble-quora/pkg/runtime"
	"github.com/marshallshelly/pebble-quora/pkg/schema"
)

// DB wraps runtime.DB and provides query builder methods.
type DB struct {
	db *runtime.DB
}

// New creates a new query builder DB from a runtime DB.
func New(db *runtime.DB) *DB {
	return &DB{db: db}
}

func (d *DB) runtime() (*runtime.DB, error) {
	if d == nil || d.db == nil {
		return nil, runtime.ErrNoConnection
	}
	return d.db, nil
}

func metadataFor[T any]() (*schema.TableMetadata, error) {
	var model T
	return registry.GetOrRegister(model)
}

// Select creates a new type-safe SELECT query.
// Usage: builder.Select[User](db).Where(...).All(ctx)
func Select[T any](d *DB) *SelectQuery[T] {
	table, err := metadataFor[T]()
	return &SelectQuery[T]{
		db:      d,
		table:   table,
		err:     err,
		columns: []string{"*"},
	}
}

// Insert creates a new type-safe INSERT query.
// Usage: builder.Insert[User](db).Values(user).ExecReturning(ctx)
func Insert[T any](d *DB) *InsertQuery[T] {
	table, err := metadataFor[T]()
	return &InsertQuery[T]{
		db:    d,
		table: table,
		err:   err,
	}
}

// Update creates a new type-safe UPDATE query.
// Usage: builder.Update[User](db).Set("fname", "Ada").Where(...).Exec(ctx)
func Update[T any](d *DB) *UpdateQuery[T] {
	table, err := metadataFor[T]()
	return &UpdateQuery[T]{
		db:    d,
		table: table,
		err:   err,
	}
}
