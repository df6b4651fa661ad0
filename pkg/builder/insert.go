package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

// Values sets the rows to insert.
func (q *InsertQuery[T]) Values(values ...T) *InsertQuery[T] {
	q.values = append(q.values, values...)
	return q
}

// ToSQL generates the INSERT SQL and arguments. Every stored column is
// returned so generated ids flow back to the caller.
func (q *InsertQuery[T]) ToSQL() (string, []any, error) {
	if q.table == nil {
		return "", nil, fmt.Errorf("table metadata not available: %w", q.err)
	}
	if len(q.values) == 0 {
		return "", nil, fmt.Errorf("no values to insert")
	}

	var sql strings.Builder
	var args []any
	paramNum := 1

	columns, _, err := structToValues(q.values[0], q.table, true)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract values: %w", err)
	}

	sql.WriteString("INSERT INTO ")
	sql.WriteString(q.table.Name)
	if len(columns) == 0 {
		sql.WriteString(" DEFAULT VALUES")
	} else {
		sql.WriteString(" (")
		sql.WriteString(strings.Join(columns, ", "))
		sql.WriteString(") VALUES ")

		valueClauses := make([]string, len(q.values))
		for i, val := range q.values {
			rowColumns, rowValues, err := structToValues(val, q.table, true)
			if err != nil {
				return "", nil, fmt.Errorf("failed to extract values from row %d: %w", i, err)
			}
			if len(rowColumns) != len(columns) {
				return "", nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(rowColumns), len(columns))
			}

			placeholders := make([]string, len(rowValues))
			for j := range rowValues {
				placeholders[j] = fmt.Sprintf("$%d", paramNum)
				paramNum++
			}
			args = append(args, rowValues...)
			valueClauses[i] = "(" + strings.Join(placeholders, ", ") + ")"
		}
		sql.WriteString(strings.Join(valueClauses, ", "))
	}

	sql.WriteString(" RETURNING *")

	return sql.String(), args, nil
}

// ExecReturning executes the INSERT and returns the inserted rows, including
// database-generated values.
func (q *InsertQuery[T]) ExecReturning(ctx context.Context) ([]T, error) {
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
