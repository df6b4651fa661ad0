package builder

import (
	"fmt"
	"strings"
)

// WhereBuilder renders conditions into a WHERE clause with numbered
// placeholders. Values are always bound, never interpolated.
type WhereBuilder struct {
	conditions []Condition
	paramStart int
}

// NewWhereBuilder creates a new WhereBuilder numbering from $1.
func NewWhereBuilder(conditions ...Condition) *WhereBuilder {
	return NewWhereBuilderWithStart(1, conditions...)
}

// NewWhereBuilderWithStart creates a WhereBuilder numbering from $paramStart.
// UPDATE uses it to number WHERE placeholders after the SET values.
func NewWhereBuilderWithStart(paramStart int, conditions ...Condition) *WhereBuilder {
	return &WhereBuilder{
		conditions: conditions,
		paramStart: paramStart,
	}
}

// Build generates the WHERE clause SQL and arguments.
func (w *WhereBuilder) Build() (string, []any, error) {
	if len(w.conditions) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(w.conditions))
	var args []any
	for _, cond := range w.conditions {
		switch cond.Operator {
		case OpEqual:
			parts = append(parts, fmt.Sprintf("%s = $%d", cond.Column, w.paramStart+len(args)))
			args = append(args, cond.Value)
		case OpIsNull:
			parts = append(parts, cond.Column+" IS NULL")
		default:
			return "", nil, fmt.Errorf("unknown operator: %s", cond.Operator)
		}
	}
	return "WHERE " + strings.Join(parts, " AND "), args, nil
}

// Eq creates an equality condition.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Operator: OpEqual, Value: value}
}

// IsNull creates an IS NULL condition.
func IsNull(column string) Condition {
	return Condition{Column: column, Operator: OpIsNull}
}
