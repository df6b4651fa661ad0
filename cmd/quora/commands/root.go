// Package commands implements the quora command tree.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-quora/internal/config"
	"github.com/marshallshelly/pebble-quora/internal/logger"
	"github.com/marshallshelly/pebble-quora/pkg/quora"
	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

var (
	// Global flags
	dbURL      string
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "quora",
	Short: "Quora - a small question and answer forum on PostgreSQL",
	Long: `Quora manages a question and answer forum stored in PostgreSQL.

Users ask questions, reply to questions or to other replies, and follow or
like questions. Settings come from QUORA_ environment variables (a .env file
is read first); --db overrides QUORA_DATABASE.URL.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides QUORA_DATABASE.URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// session is an open connection plus the store built on it.
type session struct {
	db    *runtime.DB
	store *quora.Store
	log   zerolog.Logger
}

func (s *session) Close(ctx context.Context) {
	if err := s.db.Close(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to close the database connection")
	}
}

// openSession loads config, builds the logger and connects.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if verbose {
		cfg.Log.Level = zerolog.LevelDebugValue
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	opts := []runtime.Option{runtime.WithLogger(log)}
	if cfg.Log.TraceSQL {
		opts = append(opts, runtime.WithTracer(logger.NewTracer(log)))
	}

	var db *runtime.DB
	if cfg.Database.URL != "" {
		db, err = runtime.ConnectWithURL(ctx, cfg.Database.URL, opts...)
	} else {
		db, err = runtime.Connect(ctx, cfg.Database.Runtime(), opts...)
	}
	if err != nil {
		return nil, err
	}

	store, err := quora.New(db)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	return &session{db: db, store: store, log: log}, nil
}

// withSession runs fn against a fresh session and closes it afterwards.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close(ctx)
	return fn(ctx, s)
}
