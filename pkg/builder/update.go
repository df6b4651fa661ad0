package builder

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Set sets a column value. Setting the same column twice keeps the position
// of the first call and the value of the last.
func (q *UpdateQuery[T]) Set(column string, value any) *UpdateQuery[T] {
	for i := range q.sets {
		if q.sets[i].column == column {
			q.sets[i].value = value
			return q
		}
	}
	q.sets = append(q.sets, assignment{column: column, value: value})
	return q
}

// SetStruct sets every non-primary-key column from model, in declaration order.
func (q *UpdateQuery[T]) SetStruct(model T) *UpdateQuery[T] {
	if q.table == nil {
		return q
	}
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	for _, col := range q.table.Columns {
		if q.table.IsPrimaryKey(col.Name) {
			continue
		}
		field := v.FieldByName(col.GoField)
		if !field.IsValid() {
			continue
		}
		q.Set(col.Name, field.Interface())
	}
	return q
}

// Where adds a WHERE condition.
func (q *UpdateQuery[T]) Where(condition Condition) *UpdateQuery[T] {
	q.where = append(q.where, condition)
	return q
}

// ToSQL generates the UPDATE SQL and arguments.
func (q *UpdateQuery[T]) ToSQL() (string, []any, error) {
	if q.table == nil {
		return "", nil, fmt.Errorf("table metadata not available: %w", q.err)
	}
	if len(q.sets) == 0 {
		return "", nil, fmt.Errorf("no columns to update")
	}

	var sql strings.Builder
	args := make([]any, 0, len(q.sets)+len(q.where))

	sql.WriteString("UPDATE ")
	sql.WriteString(q.table.Name)
	sql.WriteString(" SET ")

	setClauses := make([]string, len(q.sets))
	for i, set := range q.sets {
		setClauses[i] = fmt.Sprintf("%s = $%d", set.column, i+1)
		args = append(args, set.value)
	}
	sql.WriteString(strings.Join(setClauses, ", "))

	whereSQL, whereArgs, err := NewWhereBuilderWithStart(len(q.sets)+1, q.where...).Build()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
	}
	if whereSQL != "" {
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
		args = append(args, whereArgs...)
	}

	return sql.String(), args, nil
}

// Exec executes the UPDATE and returns the number of affected rows.
func (q *UpdateQuery[T]) Exec(ctx context.Context) (int64, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return 0, err
	}
	db, err := q.db.runtime()
	if err != nil {
		return 0, err
	}
	return db.Exec(ctx, sql, args...)
}
