// Package ddl bootstraps the forum schema from registered table metadata.
// It only creates and drops tables; there is no diffing or versioning.
package ddl

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/pebble-quora/pkg/schema"
)

// PlannerOptions configures statement generation.
type PlannerOptions struct {
	// IfNotExists adds IF NOT EXISTS to CREATE TABLE statements so that
	// bootstrapping an existing schema is a no-op.
	IfNotExists bool

	// Cascade adds CASCADE to DROP TABLE statements.
	Cascade bool
}

// Planner generates CREATE and DROP TABLE statements.
type Planner struct {
	options PlannerOptions
}

// NewPlanner creates a planner with IF NOT EXISTS enabled.
func NewPlanner() *Planner {
	return &Planner{options: PlannerOptions{IfNotExists: true}}
}

// NewPlannerWithOptions creates a planner with custom options.
func NewPlannerWithOptions(opts PlannerOptions) *Planner {
	return &Planner{options: opts}
}

// CreateStatements returns one CREATE TABLE per table, referenced tables
// first.
func (p *Planner) CreateStatements(tables []*schema.TableMetadata) ([]string, error) {
	ordered, err := Order(tables)
	if err != nil {
		return nil, err
	}
	stmts := make([]string, len(ordered))
	for i, t := range ordered {
		stmts[i] = p.CreateTable(t)
	}
	return stmts, nil
}

// DropStatements returns one DROP TABLE per table, referencing tables first.
func (p *Planner) DropStatements(tables []*schema.TableMetadata) ([]string, error) {
	ordered, err := Order(tables)
	if err != nil {
		return nil, err
	}
	stmts := make([]string, 0, len(ordered))
	for i := len(ordered) - 1; i >= 0; i-- {
		stmts = append(stmts, p.DropTable(ordered[i].Name))
	}
	return stmts, nil
}

// CreateTable generates a CREATE TABLE statement.
func (p *Planner) CreateTable(table *schema.TableMetadata) string {
	var singlePK string
	if table.PrimaryKey != nil && len(table.PrimaryKey.Columns) == 1 {
		singlePK = table.PrimaryKey.Columns[0]
	}

	parts := make([]string, 0, len(table.Columns)+len(table.ForeignKeys)+1)
	for _, col := range table.Columns {
		def := p.columnDefinition(col, col.Name == singlePK)
		parts = append(parts, "    "+def)
	}

	if table.PrimaryKey != nil && len(table.PrimaryKey.Columns) > 1 {
		parts = append(parts, fmt.Sprintf("    CONSTRAINT %s PRIMARY KEY (%s)",
			table.PrimaryKey.Name, strings.Join(table.PrimaryKey.Columns, ", ")))
	}

	for _, fk := range table.ForeignKeys {
		parts = append(parts, "    "+p.foreignKeyDefinition(fk))
	}

	create := "CREATE TABLE"
	if p.options.IfNotExists {
		create = "CREATE TABLE IF NOT EXISTS"
	}
	return fmt.Sprintf("%s %s (\n%s\n);", create, table.Name, strings.Join(parts, ",\n"))
}

// columnDefinition renders one column. Primary keys are implicitly NOT NULL.
func (p *Planner) columnDefinition(col schema.ColumnMetadata, primaryKey bool) string {
	parts := []string{col.Name, col.SQLType}

	if primaryKey {
		return strings.Join(append(parts, "PRIMARY KEY"), " ")
	}
	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	return strings.Join(parts, " ")
}

func (p *Planner) foreignKeyDefinition(fk schema.ForeignKeyMetadata) string {
	parts := []string{
		fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s)", fk.Name, strings.Join(fk.Columns, ", ")),
		fmt.Sprintf("REFERENCES %s (%s)", fk.ReferencedTable, strings.Join(fk.ReferencedColumns, ", ")),
	}
	if fk.OnDelete != schema.NoAction && fk.OnDelete != "" {
		parts = append(parts, "ON DELETE "+string(fk.OnDelete))
	}
	if fk.OnUpdate != schema.NoAction && fk.OnUpdate != "" {
		parts = append(parts, "ON UPDATE "+string(fk.OnUpdate))
	}
	return strings.Join(parts, " ")
}

// DropTable generates a DROP TABLE statement.
func (p *Planner) DropTable(name string) string {
	if p.options.Cascade {
		return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", name)
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", name)
}

// Order sorts tables so that every table comes after the tables it
// references. Among tables that are ready at the same step the input order
// is kept. Self-references are allowed; references to tables outside the set
// and cycles are errors.
func Order(tables []*schema.TableMetadata) ([]*schema.TableMetadata, error) {
	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.Name] = true
	}
	for _, t := range tables {
		for _, ref := range t.ReferencedTables() {
			if !known[ref] {
				return nil, fmt.Errorf("table %s references unknown table %s", t.Name, ref)
			}
		}
	}

	placed := make(map[string]bool, len(tables))
	ordered := make([]*schema.TableMetadata, 0, len(tables))
	for len(ordered) < len(tables) {
		next := -1
		for i, t := range tables {
			if placed[t.Name] {
				continue
			}
			if ready(t, placed) {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("foreign key cycle among tables %s", strings.Join(pending(tables, placed), ", "))
		}
		placed[tables[next].Name] = true
		ordered = append(ordered, tables[next])
	}
	return ordered, nil
}

func ready(t *schema.TableMetadata, placed map[string]bool) bool {
	for _, ref := range t.ReferencedTables() {
		if !placed[ref] {
			return false
		}
	}
	return true
}

func pending(tables []*schema.TableMetadata, placed map[string]bool) []string {
	var names []string
	for _, t := range tables {
		if !placed[t.Name] {
			names = append(names, t.Name)
		}
	}
	return names
}
