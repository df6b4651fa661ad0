package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/pebble-quora/internal/testutil"
	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

func TestInsertQuery_ToSQL(t *testing.T) {
	db := New(nil)

	tests := []struct {
		name       string
		setupQuery func() *InsertQuery[testAccount]
		wantSQL    string
		wantArgs   []any
		wantErr    bool
	}{
		{
			name: "single row skips serial key",
			setupQuery: func() *InsertQuery[testAccount] {
				return Insert[testAccount](db).Values(testAccount{Fname: "Ada", Lname: "Lovelace"})
			},
			wantSQL:  "INSERT INTO test_account (fname, lname) VALUES ($1, $2) RETURNING *",
			wantArgs: []any{"Ada", "Lovelace"},
		},
		{
			name: "multiple rows",
			setupQuery: func() *InsertQuery[testAccount] {
				return Insert[testAccount](db).Values(
					testAccount{Fname: "Ada", Lname: "Lovelace"},
					testAccount{Fname: "Grace", Lname: "Hopper"},
				)
			},
			wantSQL:  "INSERT INTO test_account (fname, lname) VALUES ($1, $2), ($3, $4) RETURNING *",
			wantArgs: []any{"Ada", "Lovelace", "Grace", "Hopper"},
		},
		{
			name:       "no values",
			setupQuery: func() *InsertQuery[testAccount] { return Insert[testAccount](db) },
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.setupQuery().ToSQL()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestInsertQuery_NullablePointer(t *testing.T) {
	parent := int64(7)
	sql, args, err := Insert[testPost](New(nil)).
		Values(testPost{Title: "child", AccountID: 1, ParentID: &parent}).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO test_post (title, account_id, parent_id) VALUES ($1, $2, $3) RETURNING *", sql)
	require.Len(t, args, 3)
	assert.Equal(t, &parent, args[2])
}

func TestInsertQuery_ExecReturning(t *testing.T) {
	conn := testutil.NewFakeConn(testutil.Result{
		Columns: []string{"id", "fname", "lname"},
		Rows:    [][]any{{int64(1), "Ada", "Lovelace"}},
	})

	rows, err := Insert[testAccount](New(runtime.NewDB(conn))).
		Values(testAccount{Fname: "Ada", Lname: "Lovelace"}).
		ExecReturning(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, "INSERT INTO test_account (fname, lname) VALUES ($1, $2) RETURNING *", conn.LastCall().SQL)
}
