// Package quora exposes the forum's entity components. Every component shares
// one store handle and reaches related records through the Store by id.
package quora

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/marshallshelly/pebble-quora/pkg/builder"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/record"
	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

// Store groups the entity components around a single store handle.
type Store struct {
	Users     *Users
	Questions *Questions
	Replies   *Replies
	Follows   *QuestionFollows
	Likes     *QuestionLikes

	db  *builder.DB
	log zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for write events. Defaults to the store
// handle's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New builds a Store over db.
func New(db *runtime.DB, opts ...Option) (*Store, error) {
	s := &Store{db: builder.New(db), log: zerolog.Nop()}
	if db != nil {
		s.log = db.Logger()
	}
	for _, opt := range opts {
		opt(s)
	}

	users, err := record.New[models.User](s.db)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	questions, err := record.New[models.Question](s.db)
	if err != nil {
		return nil, fmt.Errorf("questions: %w", err)
	}
	replies, err := record.New[models.Reply](s.db)
	if err != nil {
		return nil, fmt.Errorf("replies: %w", err)
	}
	follows, err := record.New[models.QuestionFollow](s.db)
	if err != nil {
		return nil, fmt.Errorf("question follows: %w", err)
	}
	likes, err := record.New[models.QuestionLike](s.db)
	if err != nil {
		return nil, fmt.Errorf("question likes: %w", err)
	}

	s.Users = &Users{store: s, m: users}
	s.Questions = &Questions{store: s, m: questions}
	s.Replies = &Replies{store: s, m: replies}
	s.Follows = &QuestionFollows{store: s, m: follows}
	s.Likes = &QuestionLikes{store: s, m: likes}
	return s, nil
}

// logWrite records a successful create or update.
func logWrite[T any](s *Store, op string, m *record.Mapper[T], rec *T) {
	s.log.Debug().
		Str("table", m.Table().Name).
		Str("op", op).
		Int64("id", m.ID(rec)).
		Msg("record written")
}

func create[T any](ctx context.Context, s *Store, m *record.Mapper[T], rec *T) error {
	if err := m.Create(ctx, rec); err != nil {
		return err
	}
	logWrite(s, "create", m, rec)
	return nil
}

func update[T any](ctx context.Context, s *Store, m *record.Mapper[T], rec *T) error {
	if err := m.Update(ctx, rec); err != nil {
		return err
	}
	logWrite(s, "update", m, rec)
	return nil
}
