package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/pebble-quora/internal/testutil"
	"github.com/marshallshelly/pebble-quora/pkg/quora"
	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}

	a, b, err := parseIDPair([]string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(2), b)
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"init", "seed", "users", "questions", "replies", "browse"} {
		assert.True(t, names[want], want)
	}
}

func TestForumRegistry(t *testing.T) {
	reg, err := forumRegistry()
	require.NoError(t, err)
	assert.Len(t, reg.Tables(), 5)
}

func TestCreateStatements_NamedTables(t *testing.T) {
	reg, err := forumRegistry()
	require.NoError(t, err)

	all, err := createStatements(reg, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	some, err := createStatements(reg, []string{"replies", "users"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Contains(t, some[0], "CREATE TABLE IF NOT EXISTS replies (")
	assert.Contains(t, some[1], "CREATE TABLE IF NOT EXISTS users (")

	_, err = createStatements(reg, []string{"comments"})
	assert.ErrorContains(t, err, "table comments not registered")
}

func TestSeed_StopsOnStoreError(t *testing.T) {
	conn := testutil.NewFakeConn(testutil.Result{Err: assert.AnError})
	store, err := quora.New(runtime.NewDB(conn))
	require.NoError(t, err)

	n, err := seed(context.Background(), store)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, n)
	assert.Contains(t, conn.LastCall().SQL, "INSERT INTO users")
}

func TestAuthorFlagsAreIndependent(t *testing.T) {
	t.Cleanup(func() {
		listAuthorID, createAuthorID = 0, 0
		listReplyAuthor, createReplyAuthor = 0, 0
	})

	require.NoError(t, questionsListCmd.Flags().Set("author", "3"))
	assert.Equal(t, int64(3), listAuthorID)
	assert.Zero(t, createAuthorID)

	require.NoError(t, repliesCreateCmd.Flags().Set("author", "5"))
	assert.Equal(t, int64(5), createReplyAuthor)
	assert.Zero(t, listReplyAuthor)
}

func TestRepliesList_TopLevelNeedsQuestion(t *testing.T) {
	t.Cleanup(func() { listTopLevel, listReplyAuthor = false, 0 })

	listTopLevel = true
	listReplyAuthor = 2
	err := repliesListCmd.RunE(repliesListCmd, nil)
	assert.ErrorContains(t, err, "--top-level requires --question")
}
