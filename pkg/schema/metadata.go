// Package schema extracts table metadata from tagged Go structs.
package schema

import (
	"fmt"
	"reflect"
)

// TableMetadata describes a table backing a Go struct.
type TableMetadata struct {
	Name        string
	GoType      reflect.Type
	Columns     []ColumnMetadata
	PrimaryKey  *PrimaryKeyMetadata
	ForeignKeys []ForeignKeyMetadata
}

// ColumnMetadata describes a single column and the struct field it maps to.
type ColumnMetadata struct {
	Name          string
	GoField       string
	GoType        reflect.Type
	SQLType       string
	Nullable      bool
	AutoIncrement bool
}

// PrimaryKeyMetadata describes a primary key constraint.
type PrimaryKeyMetadata struct {
	Name    string
	Columns []string
}

// ForeignKeyMetadata describes a foreign key constraint.
type ForeignKeyMetadata struct {
	Name              string
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
	OnDelete          ReferenceAction
	OnUpdate          ReferenceAction
}

// ReferenceAction is the action taken on a referenced row change.
type ReferenceAction string

const (
	NoAction ReferenceAction = "NO ACTION"
	Restrict ReferenceAction = "RESTRICT"
	Cascade  ReferenceAction = "CASCADE"
	SetNull  ReferenceAction = "SET NULL"
)

// IsPrimaryKey reports whether the column is part of the primary key.
func (t *TableMetadata) IsPrimaryKey(column string) bool {
	if t.PrimaryKey == nil {
		return false
	}
	for _, c := range t.PrimaryKey.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// GetColumnByName returns the column with the given name, or nil.
func (t *TableMetadata) GetColumnByName(name string) *ColumnMetadata {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// GetColumnByField returns the column mapped to the given Go field, or nil.
func (t *TableMetadata) GetColumnByField(field string) *ColumnMetadata {
	for i := range t.Columns {
		if t.Columns[i].GoField == field {
			return &t.Columns[i]
		}
	}
	return nil
}

// IDColumn returns the single primary key column.
// Tables with no primary key or a composite one are rejected.
func (t *TableMetadata) IDColumn() (*ColumnMetadata, error) {
	if t.PrimaryKey == nil || len(t.PrimaryKey.Columns) == 0 {
		return nil, fmt.Errorf("table %s has no primary key", t.Name)
	}
	if len(t.PrimaryKey.Columns) > 1 {
		return nil, fmt.Errorf("table %s has a composite primary key", t.Name)
	}
	col := t.GetColumnByName(t.PrimaryKey.Columns[0])
	if col == nil {
		return nil, fmt.Errorf("primary key column %s not found on %s", t.PrimaryKey.Columns[0], t.Name)
	}
	return col, nil
}

// QualifiedColumn returns "table.column".
func (t *TableMetadata) QualifiedColumn(column string) string {
	return t.Name + "." + column
}

// ReferencedTables returns the distinct tables this table points at,
// excluding self-references.
func (t *TableMetadata) ReferencedTables() []string {
	seen := make(map[string]bool)
	var out []string
	for _, fk := range t.ForeignKeys {
		if fk.ReferencedTable == t.Name || seen[fk.ReferencedTable] {
			continue
		}
		seen[fk.ReferencedTable] = true
		out = append(out, fk.ReferencedTable)
	}
	return out
}
