package builder

import (
	"fmt"

	"github.com/marshallshelly/pebble-quora/pkg/schema"
)

// Col returns the database column name for a Go field of T, so column names
// live only in struct tags.
//
//	builder.Eq(builder.Col[models.Reply]("AuthorID"), id) // reply_author = $1
//
// T is registered on first use. Col panics if T cannot be parsed or has no
// tagged field named goFieldName.
func Col[T any](goFieldName string) string {
	table := mustTable[T]()
	column := table.GetColumnByField(goFieldName)
	if column == nil {
		panic(fmt.Sprintf("builder: %s has no column for field %q", table.Name, goFieldName))
	}
	return column.Name
}

// QualifiedCol is Col prefixed with T's table name.
func QualifiedCol[T any](goFieldName string) string {
	return TableName[T]() + "." + Col[T](goFieldName)
}

// TableName returns the table name for T. It panics if T cannot be parsed.
func TableName[T any]() string {
	return mustTable[T]().Name
}

func mustTable[T any]() *schema.TableMetadata {
	table, err := metadataFor[T]()
	if err != nil {
		panic(fmt.Sprintf("builder: %v", err))
	}
	return table
}
