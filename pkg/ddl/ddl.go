package ddl

import (
	"context"
	"fmt"

	"github.com/marshallshelly/pebble-quora/pkg/registry"
	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

// CreateTables creates every table registered in reg, in foreign key order.
// Existing tables are left untouched.
func CreateTables(ctx context.Context, db *runtime.DB, reg *registry.Registry) error {
	stmts, err := NewPlanner().CreateStatements(reg.Tables())
	if err != nil {
		return err
	}
	return execAll(ctx, db, stmts)
}

// DropTables drops every table registered in reg, dependents first.
func DropTables(ctx context.Context, db *runtime.DB, reg *registry.Registry) error {
	stmts, err := NewPlannerWithOptions(PlannerOptions{Cascade: true}).DropStatements(reg.Tables())
	if err != nil {
		return err
	}
	return execAll(ctx, db, stmts)
}

func execAll(ctx context.Context, db *runtime.DB, stmts []string) error {
	log := db.Logger()
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ddl: %w", err)
		}
		log.Debug().Str("sql", stmt).Msg("schema statement applied")
	}
	return nil
}
