package quora

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/pebble-quora/internal/testutil"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

var (
	userColumns     = []string{"id", "fname", "lname"}
	questionColumns = []string{"id", "title", "body", "author_id"}
	replyColumns    = []string{"id", "question_id", "parent_id", "reply_author", "body"}
	joinColumns     = []string{"id", "user_id", "question_id"}
)

func newStore(t *testing.T, results ...testutil.Result) (*Store, *testutil.FakeConn) {
	t.Helper()
	conn := testutil.NewFakeConn(results...)
	s, err := New(runtime.NewDB(conn))
	require.NoError(t, err)
	return s, conn
}

func TestUsers_Finders(t *testing.T) {
	ctx := context.Background()

	t.Run("find by name", func(t *testing.T) {
		s, conn := newStore(t, testutil.Result{
			Columns: userColumns,
			Rows:    [][]any{{int64(1), "Ada", "Lovelace"}},
		})
		u, err := s.Users.FindByName(ctx, "Ada", "Lovelace")
		require.NoError(t, err)
		assert.Equal(t, &models.User{ID: 1, Fname: "Ada", Lname: "Lovelace"}, u)
		assert.Equal(t, "SELECT * FROM users WHERE fname = $1 AND lname = $2 ORDER BY users.id ASC LIMIT 1", conn.LastCall().SQL)
	})

	t.Run("absent", func(t *testing.T) {
		s, _ := newStore(t)
		u, err := s.Users.FindByFname(ctx, "Nobody")
		require.NoError(t, err)
		assert.Nil(t, u)

		u, err = s.Users.FindByLname(ctx, "Nobody")
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestUsers_AverageKarma(t *testing.T) {
	ctx := context.Background()

	t.Run("no questions is zero", func(t *testing.T) {
		s, conn := newStore(t)
		karma, err := s.Users.AverageKarma(ctx, &models.User{ID: 1})
		require.NoError(t, err)
		assert.Zero(t, karma)
		assert.Len(t, conn.Calls(), 1)
	})

	t.Run("mean over authored questions", func(t *testing.T) {
		s, conn := newStore(t,
			testutil.Result{
				Columns: questionColumns,
				Rows: [][]any{
					{int64(1), "Why?", "...", int64(1)},
					{int64(2), "How?", "...", int64(1)},
				},
			},
			testutil.Result{
				Columns: userColumns,
				Rows: [][]any{
					{int64(2), "Alan", "Turing"},
					{int64(3), "Grace", "Hopper"},
					{int64(4), "Edsger", "Dijkstra"},
				},
			},
			testutil.Result{
				Columns: userColumns,
				Rows:    [][]any{{int64(2), "Alan", "Turing"}},
			},
		)

		karma, err := s.Users.AverageKarma(ctx, &models.User{ID: 1})
		require.NoError(t, err)
		assert.InDelta(t, 2.0, karma, 1e-9)

		calls := conn.Calls()
		require.Len(t, calls, 3)
		assert.Equal(t, "SELECT * FROM questions WHERE author_id = $1 ORDER BY questions.id ASC", calls[0].SQL)
		assert.Equal(t, []any{int64(2)}, calls[2].Args)
	})
}

func TestUsers_CreateLogsAndGuards(t *testing.T) {
	var buf bytes.Buffer
	conn := testutil.NewFakeConn(testutil.Result{
		Columns: userColumns,
		Rows:    [][]any{{int64(1), "Ada", "Lovelace"}},
	})
	s, err := New(runtime.NewDB(conn), WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)

	u := &models.User{Fname: "Ada", Lname: "Lovelace"}
	require.NoError(t, s.Users.Create(context.Background(), u))
	assert.Equal(t, int64(1), u.ID)
	assert.Contains(t, buf.String(), `"table":"users"`)
	assert.Contains(t, buf.String(), `"op":"create"`)

	err = s.Users.Create(context.Background(), u)
	assert.ErrorIs(t, err, runtime.ErrAlreadyPersisted)

	err = s.Users.Update(context.Background(), &models.User{Fname: "X"})
	assert.ErrorIs(t, err, runtime.ErrNotPersisted)
	assert.Len(t, conn.Calls(), 1)
}

func TestQuestions_Relationships(t *testing.T) {
	ctx := context.Background()
	q := &models.Question{ID: 5, Title: "Why?", Body: "...", AuthorID: 2}

	tests := []struct {
		name    string
		call    func(s *Store) error
		wantSQL string
		args    []any
	}{
		{
			name: "author",
			call: func(s *Store) error { _, err := s.Questions.Author(ctx, q); return err },
			wantSQL: "SELECT * FROM users WHERE id = $1 ORDER BY users.id ASC LIMIT 1",
			args:    []any{int64(2)},
		},
		{
			name: "replies",
			call: func(s *Store) error { _, err := s.Questions.Replies(ctx, q); return err },
			wantSQL: "SELECT * FROM replies WHERE question_id = $1 ORDER BY replies.id ASC",
			args:    []any{int64(5)},
		},
		{
			name: "followers",
			call: func(s *Store) error { _, err := s.Questions.Followers(ctx, q); return err },
			wantSQL: "SELECT DISTINCT users.* FROM users INNER JOIN question_follows ON users.id = question_follows.user_id " +
				"WHERE question_follows.question_id = $1 ORDER BY users.id ASC",
			args: []any{int64(5)},
		},
		{
			name: "likers",
			call: func(s *Store) error { _, err := s.Questions.Likers(ctx, q); return err },
			wantSQL: "SELECT DISTINCT users.* FROM users INNER JOIN question_likes ON users.id = question_likes.user_id " +
				"WHERE question_likes.question_id = $1 ORDER BY users.id ASC",
			args: []any{int64(5)},
		},
		{
			name: "find by title",
			call: func(s *Store) error { _, err := s.Questions.FindByTitle(ctx, "Why?"); return err },
			wantSQL: "SELECT * FROM questions WHERE title = $1 ORDER BY questions.id ASC LIMIT 1",
			args:    []any{"Why?"},
		},
		{
			name: "most followed",
			call: func(s *Store) error { _, err := s.Questions.MostFollowed(ctx, 2); return err },
			wantSQL: "SELECT questions.* FROM questions INNER JOIN question_follows ON questions.id = question_follows.question_id " +
				"GROUP BY questions.id ORDER BY COUNT(question_follows.id) DESC, questions.id ASC LIMIT 2",
		},
		{
			name: "most liked",
			call: func(s *Store) error { _, err := s.Questions.MostLiked(ctx, 1); return err },
			wantSQL: "SELECT questions.* FROM questions INNER JOIN question_likes ON questions.id = question_likes.question_id " +
				"GROUP BY questions.id ORDER BY COUNT(question_likes.id) DESC, questions.id ASC LIMIT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, conn := newStore(t)
			require.NoError(t, tt.call(s))
			assert.Equal(t, tt.wantSQL, conn.LastCall().SQL)
			assert.Equal(t, tt.args, conn.LastCall().Args)
		})
	}
}

func TestQuestions_MostRankedNonPositive(t *testing.T) {
	s, conn := newStore(t)

	got, err := s.Follows.MostFollowedQuestions(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.Likes.MostLikedQuestions(context.Background(), -3)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Empty(t, conn.Calls())
}

func TestQuestions_NumLikes(t *testing.T) {
	s, _ := newStore(t, testutil.Result{
		Columns: userColumns,
		Rows:    [][]any{{int64(1), "Ada", "Lovelace"}, {int64(2), "Alan", "Turing"}},
	})

	n, err := s.Questions.NumLikes(context.Background(), &models.Question{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReplies_Threading(t *testing.T) {
	ctx := context.Background()
	parentID := int64(1)

	t.Run("top-level reply has no parent", func(t *testing.T) {
		s, conn := newStore(t)
		parent, err := s.Replies.ParentReply(ctx, &models.Reply{ID: 1})
		require.NoError(t, err)
		assert.Nil(t, parent)
		assert.Empty(t, conn.Calls())
	})

	t.Run("parent lookup by id", func(t *testing.T) {
		s, conn := newStore(t, testutil.Result{
			Columns: replyColumns,
			Rows:    [][]any{{int64(1), int64(1), nil, int64(1), "first"}},
		})
		parent, err := s.Replies.ParentReply(ctx, &models.Reply{ID: 2, ParentID: &parentID})
		require.NoError(t, err)
		require.NotNil(t, parent)
		assert.True(t, parent.IsTopLevel())
		assert.Equal(t, []any{int64(1)}, conn.LastCall().Args)
	})

	t.Run("child replies", func(t *testing.T) {
		s, conn := newStore(t, testutil.Result{
			Columns: replyColumns,
			Rows:    [][]any{{int64(2), int64(1), int64(1), int64(2), "second"}},
		})
		children, err := s.Replies.ChildReplies(ctx, &models.Reply{ID: 1})
		require.NoError(t, err)
		require.Len(t, children, 1)
		require.NotNil(t, children[0].ParentID)
		assert.Equal(t, int64(1), *children[0].ParentID)
		assert.Equal(t, "SELECT * FROM replies WHERE parent_id = $1 ORDER BY replies.id ASC", conn.LastCall().SQL)
	})

	t.Run("find by user filters reply author", func(t *testing.T) {
		s, conn := newStore(t)
		_, err := s.Replies.FindByUserID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM replies WHERE reply_author = $1 ORDER BY replies.id ASC", conn.LastCall().SQL)
	})
}

func TestReplies_UpdateWritesUpdate(t *testing.T) {
	s, conn := newStore(t, testutil.Result{Affected: 1})

	r := &models.Reply{ID: 4, QuestionID: 1, AuthorID: 2, Body: "edited"}
	require.NoError(t, s.Replies.Update(context.Background(), r))

	call := conn.LastCall()
	assert.Equal(t, "UPDATE replies SET question_id = $1, parent_id = $2, reply_author = $3, body = $4 WHERE id = $5", call.SQL)
	assert.Equal(t, int64(4), call.Args[4])
}

func TestJoinEntities_Finders(t *testing.T) {
	ctx := context.Background()

	t.Run("follow by user is first match", func(t *testing.T) {
		s, conn := newStore(t, testutil.Result{
			Columns: joinColumns,
			Rows:    [][]any{{int64(1), int64(2), int64(3)}},
		})
		f, err := s.Follows.FindByUserID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, &models.QuestionFollow{ID: 1, UserID: 2, QuestionID: 3}, f)
		assert.Equal(t, "SELECT * FROM question_follows WHERE user_id = $1 ORDER BY question_follows.id ASC LIMIT 1", conn.LastCall().SQL)
	})

	t.Run("likes by question", func(t *testing.T) {
		s, conn := newStore(t, testutil.Result{
			Columns: joinColumns,
			Rows:    [][]any{{int64(1), int64(2), int64(3)}, {int64(2), int64(4), int64(3)}},
		})
		likes, err := s.Likes.FindByQuestionID(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, likes, 2)
		assert.Equal(t, "SELECT * FROM question_likes WHERE question_id = $1 ORDER BY question_likes.id ASC", conn.LastCall().SQL)
	})

	t.Run("liked questions for user", func(t *testing.T) {
		s, conn := newStore(t)
		_, err := s.Users.LikedQuestions(ctx, &models.User{ID: 8})
		require.NoError(t, err)
		assert.Equal(t, "SELECT DISTINCT questions.* FROM questions INNER JOIN question_likes ON questions.id = question_likes.question_id "+
			"WHERE question_likes.user_id = $1 ORDER BY questions.id ASC", conn.LastCall().SQL)
	})

	t.Run("followed questions for user", func(t *testing.T) {
		s, conn := newStore(t)
		_, err := s.Users.FollowedQuestions(ctx, &models.User{ID: 8})
		require.NoError(t, err)
		assert.Contains(t, conn.LastCall().SQL, "INNER JOIN question_follows ON questions.id = question_follows.question_id")
	})
}

func TestReplies_TopLevelAndCount(t *testing.T) {
	ctx := context.Background()

	t.Run("top level", func(t *testing.T) {
		s, conn := newStore(t, testutil.Result{
			Columns: replyColumns,
			Rows:    [][]any{{int64(1), int64(3), nil, int64(2), "First!"}},
		})
		replies, err := s.Replies.TopLevelForQuestionID(ctx, 3)
		require.NoError(t, err)
		require.Len(t, replies, 1)
		assert.True(t, replies[0].IsTopLevel())
		assert.Equal(t, "SELECT * FROM replies WHERE question_id = $1 AND parent_id IS NULL ORDER BY replies.id ASC", conn.LastCall().SQL)
		assert.Equal(t, []any{int64(3)}, conn.LastCall().Args)
	})

	t.Run("count", func(t *testing.T) {
		s, conn := newStore(t, testutil.Result{Columns: []string{"count"}, Rows: [][]any{{int64(4)}}})
		n, err := s.Replies.CountForQuestionID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.Equal(t, "SELECT COUNT(*) FROM replies WHERE question_id = $1", conn.LastCall().SQL)
	})
}

func TestJoinEntities_Exists(t *testing.T) {
	ctx := context.Background()

	s, conn := newStore(t,
		testutil.Result{Columns: []string{"count"}, Rows: [][]any{{int64(1)}}},
		testutil.Result{Columns: []string{"count"}, Rows: [][]any{{int64(0)}}},
	)

	following, err := s.Follows.IsFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, "SELECT COUNT(*) FROM question_follows WHERE user_id = $1 AND question_id = $2", conn.Calls()[0].SQL)

	liked, err := s.Likes.HasLiked(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, "SELECT COUNT(*) FROM question_likes WHERE user_id = $1 AND question_id = $2", conn.Calls()[1].SQL)
}
