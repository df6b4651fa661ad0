package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-quora/cmd/quora/output"
	"github.com/marshallshelly/pebble-quora/pkg/ddl"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/registry"
)

var (
	dropFirst bool
	printOnly bool
)

var initCmd = &cobra.Command{
	Use:   "init [TABLE...]",
	Short: "Create the forum tables",
	Long: `Create the users, questions, replies, question_follows and question_likes
tables if they do not exist yet.

Examples:
  quora init                 # Create missing tables
  quora init --print         # Print the statements without connecting
  quora init --print replies # Print one table's statement
  quora init --drop          # Drop and recreate every table`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := forumRegistry()
		if err != nil {
			return err
		}

		if len(args) > 0 && !printOnly {
			return fmt.Errorf("table names are only accepted with --print")
		}

		if printOnly {
			stmts, err := createStatements(reg, args)
			if err != nil {
				return err
			}
			for _, stmt := range stmts {
				fmt.Println(stmt)
				fmt.Println()
			}
			return nil
		}

		return withSession(cmd, func(ctx context.Context, s *session) error {
			if dropFirst {
				if err := ddl.DropTables(ctx, s.db, reg); err != nil {
					return err
				}
				output.Warning("Dropped %d table(s)", len(reg.Tables()))
			}
			if err := ddl.CreateTables(ctx, s.db, reg); err != nil {
				return err
			}
			output.Success("Schema ready (%d tables)", len(reg.Tables()))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&dropFirst, "drop", false, "Drop existing forum tables first")
	initCmd.Flags().BoolVar(&printOnly, "print", false, "Print the CREATE statements and exit")
}

// createStatements plans every table, or only the named ones in the order
// given.
func createStatements(reg *registry.Registry, names []string) ([]string, error) {
	planner := ddl.NewPlanner()
	if len(names) == 0 {
		return planner.CreateStatements(reg.Tables())
	}
	stmts := make([]string, len(names))
	for i, name := range names {
		table, err := reg.GetByName(name)
		if err != nil {
			return nil, err
		}
		stmts[i] = planner.CreateTable(table)
	}
	return stmts, nil
}

func forumRegistry() (*registry.Registry, error) {
	reg := registry.NewRegistry()
	if err := reg.RegisterAll(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to register models: %w", err)
	}
	return reg, nil
}
