package runtime

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// Conn is the subset of *pgx.Conn the store handle needs.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is the store handle: one open connection, created once and passed to
// every component that needs it. It is not safe for concurrent use.
type DB struct {
	conn   Conn
	pgConn *pgx.Conn
	config *Config
	log    zerolog.Logger
}

// Config represents database configuration.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// Option customizes a connection.
type Option func(*options)

type options struct {
	log    zerolog.Logger
	tracer pgx.QueryTracer
}

// WithLogger sets the lifecycle logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracer attaches a pgx query tracer to the connection.
func WithTracer(t pgx.QueryTracer) Option {
	return func(o *options) { o.tracer = t }
}

// NewDB wraps an existing connection. Tests use it with fakes.
func NewDB(conn Conn, opts ...Option) *DB {
	o := buildOptions(opts)
	db := &DB{
		conn:   conn,
		config: &Config{},
		log:    o.log,
	}
	if pc, ok := conn.(*pgx.Conn); ok {
		db.pgConn = pc
	}
	return db
}

// Connect opens a connection from discrete settings.
func Connect(ctx context.Context, config *Config, opts ...Option) (*DB, error) {
	db, err := ConnectWithURL(ctx, buildConnectionString(config), opts...)
	if err != nil {
		return nil, err
	}
	db.config = config
	return db, nil
}

// ConnectWithURL opens a connection using a connection URL or DSN.
func ConnectWithURL(ctx context.Context, url string, opts ...Option) (*DB, error) {
	o := buildOptions(opts)

	connConfig, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection URL: %w", err)
	}
	if o.tracer != nil {
		connConfig.Tracer = o.tracer
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	o.log.Info().
		Str("host", connConfig.Host).
		Str("database", connConfig.Database).
		Msg("connected to the database")

	return &DB{
		conn:   conn,
		pgConn: conn,
		config: &Config{
			Host:     connConfig.Host,
			Port:     int(connConfig.Port),
			Database: connConfig.Database,
			User:     connConfig.User,
		},
		log: o.log,
	}, nil
}

func buildOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PgConn returns the underlying *pgx.Conn, or nil when wrapping a fake.
func (db *DB) PgConn() *pgx.Conn {
	return db.pgConn
}

// Config returns the settings the handle was opened with.
func (db *DB) Config() *Config {
	return db.config
}

// Logger returns the handle's logger.
func (db *DB) Logger() zerolog.Logger {
	return db.log
}

// Close closes the connection.
func (db *DB) Close(ctx context.Context) error {
	if db.pgConn == nil {
		return nil
	}
	db.log.Info().Msg("closing database connection")
	return db.pgConn.Close(ctx)
}

// Ping verifies the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.pgConn == nil {
		return ErrNoConnection
	}
	return db.pgConn.Ping(ctx)
}

// Exec executes a query without returning any rows.
func (db *DB) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	if db.conn == nil {
		return 0, ErrNoConnection
	}
	result, err := db.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, &QueryError{Query: sql, Err: err}
	}
	return result.RowsAffected(), nil
}

// Query executes a query that returns rows.
func (db *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if db.conn == nil {
		return nil, ErrNoConnection
	}
	rows, err := db.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, &QueryError{Query: sql, Err: err}
	}
	return rows, nil
}

// QueryRow executes a query that returns at most one row. Without a
// connection the returned row's Scan fails with ErrNoConnection.
func (db *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if db.conn == nil {
		return errRow{err: ErrNoConnection}
	}
	return db.conn.QueryRow(ctx, sql, args...)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// buildConnectionString builds a PostgreSQL connection string from config.
func buildConnectionString(config *Config) string {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	port := config.Port
	if port == 0 {
		port = 5432
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		config.Host, port, config.User, config.Database, sslMode)
	if config.Password != "" {
		dsn += " password=" + config.Password
	}
	return dsn
}

// DefaultConfig returns a default database configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		Database: "quora",
		User:     "postgres",
		SSLMode:  "prefer",
	}
}
