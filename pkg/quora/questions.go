package quora

import (
	"context"

	"github.com/marshallshelly/pebble-quora/pkg/builder"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/record"
)

// Questions accesses the questions table.
type Questions struct {
	store *Store
	m     *record.Mapper[models.Question]
}

// All returns every question.
func (c *Questions) All(ctx context.Context) ([]models.Question, error) {
	return c.m.All(ctx)
}

// FindByID returns the question with id, or nil.
func (c *Questions) FindByID(ctx context.Context, id int64) (*models.Question, error) {
	return c.m.FindByID(ctx, id)
}

// FindByTitle returns the first question with the title, or nil.
func (c *Questions) FindByTitle(ctx context.Context, title string) (*models.Question, error) {
	return c.m.FindOne(ctx, builder.Eq(builder.Col[models.Question]("Title"), title))
}

// FindByAuthorID returns every question written by the user.
func (c *Questions) FindByAuthorID(ctx context.Context, authorID int64) ([]models.Question, error) {
	return c.m.FindAll(ctx, builder.Eq(builder.Col[models.Question]("AuthorID"), authorID))
}

// Create inserts q and assigns its id.
func (c *Questions) Create(ctx context.Context, q *models.Question) error {
	return create(ctx, c.store, c.m, q)
}

// Update writes q's title, body and author.
func (c *Questions) Update(ctx context.Context, q *models.Question) error {
	return update(ctx, c.store, c.m, q)
}

// Author returns q's author, or nil if the user row is gone.
func (c *Questions) Author(ctx context.Context, q *models.Question) (*models.User, error) {
	return c.store.Users.FindByID(ctx, q.AuthorID)
}

// Replies returns every reply to q, threaded or not.
func (c *Questions) Replies(ctx context.Context, q *models.Question) ([]models.Reply, error) {
	return c.store.Replies.FindByQuestionID(ctx, q.ID)
}

// Followers returns the distinct users following q.
func (c *Questions) Followers(ctx context.Context, q *models.Question) ([]models.User, error) {
	return c.store.Follows.FollowersForQuestionID(ctx, q.ID)
}

// Likers returns the distinct users liking q.
func (c *Questions) Likers(ctx context.Context, q *models.Question) ([]models.User, error) {
	return c.store.Likes.LikersForQuestionID(ctx, q.ID)
}

// NumLikes counts q's distinct likers.
func (c *Questions) NumLikes(ctx context.Context, q *models.Question) (int, error) {
	return c.store.Likes.NumLikesForQuestionID(ctx, q.ID)
}

// MostFollowed returns the n most followed questions.
func (c *Questions) MostFollowed(ctx context.Context, n int) ([]models.Question, error) {
	return c.store.Follows.MostFollowedQuestions(ctx, n)
}

// MostLiked returns the n most liked questions.
func (c *Questions) MostLiked(ctx context.Context, n int) ([]models.Question, error) {
	return c.store.Likes.MostLikedQuestions(ctx, n)
}
