// Package record implements the create/find/update contract shared by every
// table-backed record type.
package record

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/marshallshelly/pebble-quora/pkg/builder"
	"github.com/marshallshelly/pebble-quora/pkg/registry"
	"github.com/marshallshelly/pebble-quora/pkg/runtime"
	"github.com/marshallshelly/pebble-quora/pkg/schema"
)

// Mapper maps one record type T to its table. T must be a struct with a
// single integer primary key; the zero key means the record is not persisted.
type Mapper[T any] struct {
	db    *builder.DB
	table *schema.TableMetadata
	idCol *schema.ColumnMetadata
}

// New builds a Mapper for T, registering T in the global registry.
func New[T any](db *builder.DB) (*Mapper[T], error) {
	var zero T
	table, err := registry.GetOrRegister(zero)
	if err != nil {
		return nil, err
	}

	idCol, err := table.IDColumn()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", runtime.ErrNoPrimaryKey, err)
	}
	switch idCol.GoType.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
	default:
		return nil, fmt.Errorf("%w: primary key %s.%s must be an integer, got %s",
			runtime.ErrInvalidModel, table.Name, idCol.Name, idCol.GoType)
	}

	return &Mapper[T]{db: db, table: table, idCol: idCol}, nil
}

// Table returns the mapped table's metadata.
func (m *Mapper[T]) Table() *schema.TableMetadata {
	return m.table
}

// ID returns the primary key of rec, 0 when unpersisted.
func (m *Mapper[T]) ID(rec *T) int64 {
	return m.idField(rec).Int()
}

// Persisted reports whether rec carries a store-assigned id.
func (m *Mapper[T]) Persisted(rec *T) bool {
	return m.ID(rec) != 0
}

func (m *Mapper[T]) idField(rec *T) reflect.Value {
	return reflect.ValueOf(rec).Elem().FieldByName(m.idCol.GoField)
}

// Select starts a query over the table ordered by primary key, so that
// "first match" is well defined when several rows qualify.
func (m *Mapper[T]) Select() *builder.SelectQuery[T] {
	return builder.Select[T](m.db).OrderByAsc(m.table.QualifiedColumn(m.idCol.Name))
}

// All returns every row of the table.
func (m *Mapper[T]) All(ctx context.Context) ([]T, error) {
	return m.Select().All(ctx)
}

// FindByID returns the record with the given id, or nil if absent.
func (m *Mapper[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	return m.FindOne(ctx, builder.Eq(m.idCol.Name, id))
}

// FindOne returns the first matching record by primary key, or nil when
// nothing matches. Absence is not an error.
func (m *Mapper[T]) FindOne(ctx context.Context, conds ...builder.Condition) (*T, error) {
	q := m.Select()
	for _, c := range conds {
		q.Where(c)
	}

	rec, err := q.First(ctx)
	if errors.Is(err, runtime.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// FindAll returns every matching record ordered by primary key.
func (m *Mapper[T]) FindAll(ctx context.Context, conds ...builder.Condition) ([]T, error) {
	q := m.Select()
	for _, c := range conds {
		q.Where(c)
	}
	return q.All(ctx)
}

// Count returns the number of matching records.
func (m *Mapper[T]) Count(ctx context.Context, conds ...builder.Condition) (int64, error) {
	q := builder.Select[T](m.db)
	for _, c := range conds {
		q.Where(c)
	}
	return q.Count(ctx)
}

// Exists reports whether any record matches.
func (m *Mapper[T]) Exists(ctx context.Context, conds ...builder.Condition) (bool, error) {
	q := builder.Select[T](m.db)
	for _, c := range conds {
		q.Where(c)
	}
	return q.Exists(ctx)
}

// Create inserts rec and copies the stored row, including the generated id,
// back into it.
func (m *Mapper[T]) Create(ctx context.Context, rec *T) error {
	if id := m.ID(rec); id != 0 {
		return &runtime.PersistenceError{Table: m.table.Name, ID: id, Err: runtime.ErrAlreadyPersisted}
	}

	rows, err := builder.Insert[T](m.db).Values(*rec).ExecReturning(ctx)
	if err != nil {
		return err
	}
	if len(rows) != 1 {
		return fmt.Errorf("insert into %s returned %d rows", m.table.Name, len(rows))
	}

	*rec = rows[0]
	return nil
}

// Update writes every non-key column of rec to the row with rec's id. The
// write is issued even when nothing changed.
func (m *Mapper[T]) Update(ctx context.Context, rec *T) error {
	id := m.ID(rec)
	if id == 0 {
		return &runtime.PersistenceError{Table: m.table.Name, Err: runtime.ErrNotPersisted}
	}

	_, err := builder.Update[T](m.db).
		SetStruct(*rec).
		Where(builder.Eq(m.idCol.Name, id)).
		Exec(ctx)
	return err
}
