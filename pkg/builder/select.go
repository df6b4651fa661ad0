package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

// Columns specifies which columns to select.
func (q *SelectQuery[T]) Columns(cols ...string) *SelectQuery[T] {
	q.columns = cols
	return q
}

// Where adds a WHERE condition.
func (q *SelectQuery[T]) Where(condition Condition) *SelectQuery[T] {
	q.where = append(q.where, condition)
	return q
}

// OrderBy adds an ORDER BY term.
func (q *SelectQuery[T]) OrderBy(column string, direction OrderDirection) *SelectQuery[T] {
	q.orderBy = append(q.orderBy, OrderBy{Column: column, Direction: direction})
	return q
}

// OrderByAsc adds an ascending ORDER BY term.
func (q *SelectQuery[T]) OrderByAsc(column string) *SelectQuery[T] {
	return q.OrderBy(column, Asc)
}

// OrderByDesc adds a descending ORDER BY term.
func (q *SelectQuery[T]) OrderByDesc(column string) *SelectQuery[T] {
	return q.OrderBy(column, Desc)
}

// Limit sets the LIMIT clause.
func (q *SelectQuery[T]) Limit(limit int) *SelectQuery[T] {
	q.limit = &limit
	return q
}

// Distinct adds DISTINCT to the query.
func (q *SelectQuery[T]) Distinct() *SelectQuery[T] {
	q.distinct = true
	return q
}

// GroupBy adds a GROUP BY clause.
func (q *SelectQuery[T]) GroupBy(columns ...string) *SelectQuery[T] {
	q.groupBy = append(q.groupBy, columns...)
	return q
}

// InnerJoin adds an INNER JOIN.
func (q *SelectQuery[T]) InnerJoin(table string, condition string) *SelectQuery[T] {
	q.joins = append(q.joins, Join{Table: table, Condition: condition})
	return q
}

func (q *SelectQuery[T]) writeFrom(sql *strings.Builder) {
	sql.WriteString(" FROM ")
	sql.WriteString(q.table.Name)

	for _, join := range q.joins {
		sql.WriteString(" INNER JOIN ")
		sql.WriteString(join.Table)
		sql.WriteString(" ON ")
		sql.WriteString(join.Condition)
	}
}

func (q *SelectQuery[T]) writeWhere(sql *strings.Builder) ([]any, error) {
	whereSQL, args, err := NewWhereBuilder(q.where...).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build WHERE clause: %w", err)
	}
	if whereSQL != "" {
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
	}
	return args, nil
}

// ToSQL generates the SQL query and arguments.
func (q *SelectQuery[T]) ToSQL() (string, []any, error) {
	if q.table == nil {
		return "", nil, fmt.Errorf("table metadata not available: %w", q.err)
	}

	var sql strings.Builder

	sql.WriteString("SELECT ")
	if q.distinct {
		sql.WriteString("DISTINCT ")
	}
	if len(q.columns) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(q.columns, ", "))
	}

	q.writeFrom(&sql)

	args, err := q.writeWhere(&sql)
	if err != nil {
		return "", nil, err
	}

	if len(q.groupBy) > 0 {
		sql.WriteString(" GROUP BY ")
		sql.WriteString(strings.Join(q.groupBy, ", "))
	}

	if len(q.orderBy) > 0 {
		orderParts := make([]string, len(q.orderBy))
		for i, order := range q.orderBy {
			orderParts[i] = order.Column + " " + string(order.Direction)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(orderParts, ", "))
	}

	if q.limit != nil {
		fmt.Fprintf(&sql, " LIMIT %d", *q.limit)
	}

	return sql.String(), args, nil
}

// All executes the query and returns all results. No match yields an empty,
// non-nil slice.
func (q *SelectQuery[T]) All(ctx context.Context) ([]T, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return nil, err
	}
	db, err := q.db.runtime()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	results, err := collectRows[T](rows, q.table)
	if err != nil {
		return nil, &runtime.QueryError{Query: sql, Err: err}
	}
	return results, nil
}

// First executes the query with LIMIT 1 and returns the first result, or
// runtime.ErrNotFound.
func (q *SelectQuery[T]) First(ctx context.Context) (*T, error) {
	q.Limit(1)

	results, err := q.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, runtime.ErrNotFound
	}
	return &results[0], nil
}

// Count executes a COUNT(*) over the query's joins and filters. Ordering and
// limits are ignored.
func (q *SelectQuery[T]) Count(ctx context.Context) (int64, error) {
	if q.table == nil {
		return 0, fmt.Errorf("table metadata not available: %w", q.err)
	}

	var sql strings.Builder
	sql.WriteString("SELECT COUNT(*)")
	q.writeFrom(&sql)
	args, err := q.writeWhere(&sql)
	if err != nil {
		return 0, err
	}

	db, err := q.db.runtime()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.QueryRow(ctx, sql.String(), args...).Scan(&count); err != nil {
		return 0, &runtime.QueryError{Query: sql.String(), Err: err}
	}
	return count, nil
}

// Exists checks if any rows match the query.
func (q *SelectQuery[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
