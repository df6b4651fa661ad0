// Package testutil holds test doubles and database harnesses.
package testutil

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Result is one scripted response of a FakeConn.
type Result struct {
	Columns  []string
	Rows     [][]any
	Affected int64
	Err      error
}

// Call records a statement sent to a FakeConn.
type Call struct {
	SQL  string
	Args []any
}

// FakeConn is a scripted runtime.Conn. Each Exec, Query or QueryRow consumes
// the next queued Result; an empty queue answers with zero rows.
type FakeConn struct {
	mu      sync.Mutex
	results []Result
	calls   []Call
}

// NewFakeConn returns a FakeConn answering with results in order.
func NewFakeConn(results ...Result) *FakeConn {
	return &FakeConn{results: results}
}

// Push queues more results.
func (c *FakeConn) Push(results ...Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, results...)
}

// Calls returns the statements received so far.
func (c *FakeConn) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// LastCall returns the most recent statement, or a zero Call.
func (c *FakeConn) LastCall() Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.calls) == 0 {
		return Call{}
	}
	return c.calls[len(c.calls)-1]
}

func (c *FakeConn) next(sql string, args []any) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{SQL: sql, Args: args})
	if len(c.results) == 0 {
		return Result{}
	}
	r := c.results[0]
	c.results = c.results[1:]
	return r
}

// Exec implements runtime.Conn.
func (c *FakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r := c.next(sql, args)
	if r.Err != nil {
		return pgconn.CommandTag{}, r.Err
	}
	return pgconn.NewCommandTag(fmt.Sprintf("FAKE %d", r.Affected)), nil
}

// Query implements runtime.Conn.
func (c *FakeConn) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r := c.next(sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return NewRows(r.Columns, r.Rows), nil
}

// QueryRow implements runtime.Conn.
func (c *FakeConn) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r := c.next(sql, args)
	if r.Err != nil {
		return &Row{err: r.Err}
	}
	return &Row{rows: NewRows(r.Columns, r.Rows)}
}

// Rows is an in-memory pgx.Rows. Values are assigned to scan targets by
// reflection; nil becomes the zero value (a nil pointer for *T targets).
type Rows struct {
	fields []pgconn.FieldDescription
	data   [][]any
	pos    int
	closed bool
	err    error
}

var _ pgx.Rows = (*Rows)(nil)

// NewRows builds Rows with the given column labels.
func NewRows(columns []string, data [][]any) *Rows {
	fields := make([]pgconn.FieldDescription, len(columns))
	for i, name := range columns {
		fields[i] = pgconn.FieldDescription{Name: name}
	}
	return &Rows{fields: fields, data: data, pos: -1}
}

func (r *Rows) Close()                                       { r.closed = true }
func (r *Rows) Err() error                                   { return r.err }
func (r *Rows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *Rows) RawValues() [][]byte                          { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

// Next advances to the next row.
func (r *Rows) Next() bool {
	if r.closed || r.err != nil {
		return false
	}
	r.pos++
	if r.pos >= len(r.data) {
		r.closed = true
		return false
	}
	return true
}

// Values returns the current row.
func (r *Rows) Values() ([]any, error) {
	if r.pos < 0 || r.pos >= len(r.data) {
		return nil, fmt.Errorf("no current row")
	}
	return r.data[r.pos], nil
}

// Scan assigns the current row to dest.
func (r *Rows) Scan(dest ...any) error {
	row, err := r.Values()
	if err != nil {
		return err
	}
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i := range dest {
		if err := assign(dest[i], row[i]); err != nil {
			r.err = fmt.Errorf("scan column %s: %w", r.fields[i].Name, err)
			return r.err
		}
	}
	return nil
}

// Row is the single-row counterpart of Rows.
type Row struct {
	rows *Rows
	err  error
}

// Scan implements pgx.Row.
func (r *Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	defer r.rows.Close()
	if !r.rows.Next() {
		return pgx.ErrNoRows
	}
	return r.rows.Scan(dest...)
}

func assign(dest, value any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("destination %T is not a pointer", dest)
	}
	target := dv.Elem()

	if value == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	src := reflect.ValueOf(value)
	switch {
	case target.Kind() == reflect.Interface:
		target.Set(src)
	case src.Type().AssignableTo(target.Type()):
		target.Set(src)
	case target.Kind() == reflect.Pointer && src.Type().ConvertibleTo(target.Type().Elem()):
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(src.Convert(target.Type().Elem()))
		target.Set(p)
	case src.Type().ConvertibleTo(target.Type()):
		target.Set(src.Convert(target.Type()))
	default:
		return fmt.Errorf("cannot assign %T to %s", value, target.Type())
	}
	return nil
}
