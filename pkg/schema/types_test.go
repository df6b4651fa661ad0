package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferSQLType(t *testing.T) {
	tests := []struct {
		name     string
		goType   reflect.Type
		sqlType  string
		nullable bool
	}{
		{"string", reflect.TypeFor[string](), "text", false},
		{"int64", reflect.TypeFor[int64](), "bigint", false},
		{"int", reflect.TypeFor[int](), "bigint", false},
		{"int32", reflect.TypeFor[int32](), "integer", false},
		{"bool", reflect.TypeFor[bool](), "boolean", false},
		{"*int64", reflect.TypeFor[*int64](), "bigint", true},
		{"*string", reflect.TypeFor[*string](), "text", true},
		{"float64", reflect.TypeFor[float64](), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlType, nullable := inferSQLType(tt.goType)
			assert.Equal(t, tt.sqlType, sqlType)
			assert.Equal(t, tt.nullable, nullable)
		})
	}
}
