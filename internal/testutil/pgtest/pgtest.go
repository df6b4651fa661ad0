//go:build integration

// Package pgtest starts a throwaway PostgreSQL container with the forum
// schema for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marshallshelly/pebble-quora/pkg/ddl"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/registry"
	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

// Start runs postgres:alpine, bootstraps the forum tables and returns a
// connected handle. The container is terminated when t finishes.
func Start(t *testing.T) *runtime.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("quora"),
		postgres.WithUsername("quora"),
		postgres.WithPassword("quora"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := runtime.ConnectWithURL(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(ctx) })

	reg := registry.NewRegistry()
	if err := reg.RegisterAll(models.All()...); err != nil {
		t.Fatalf("failed to register models: %v", err)
	}
	if err := ddl.CreateTables(ctx, db, reg); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
	return db
}

// Truncate empties every forum table and restarts id sequences at 1.
func Truncate(t *testing.T, db *runtime.DB) {
	t.Helper()

	reg := registry.NewRegistry()
	if err := reg.RegisterAll(models.All()...); err != nil {
		t.Fatalf("failed to register models: %v", err)
	}
	names := make([]string, 0, len(models.All()))
	for _, table := range reg.Tables() {
		names = append(names, table.Name)
	}

	sql := fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(names, ", "))
	if _, err := db.Exec(context.Background(), sql); err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}
}
