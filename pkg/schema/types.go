package schema

import (
	"reflect"
)

// inferSQLType picks a column type for fields whose tag names none.
// Pointer fields map like their element and are nullable.
func inferSQLType(t reflect.Type) (sqlType string, nullable bool) {
	if t.Kind() == reflect.Pointer {
		t, nullable = t.Elem(), true
	}
	switch t.Kind() {
	case reflect.String:
		return "text", nullable
	case reflect.Int64, reflect.Int:
		return "bigint", nullable
	case reflect.Int32:
		return "integer", nullable
	case reflect.Bool:
		return "boolean", nullable
	}
	return "", nullable
}
