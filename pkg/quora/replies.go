package quora

import (
	"context"

	"github.com/marshallshelly/pebble-quora/pkg/builder"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/record"
)

// Replies accesses the replies table.
type Replies struct {
	store *Store
	m     *record.Mapper[models.Reply]
}

// All returns every reply.
func (c *Replies) All(ctx context.Context) ([]models.Reply, error) {
	return c.m.All(ctx)
}

// FindByID returns the reply with id, or nil.
func (c *Replies) FindByID(ctx context.Context, id int64) (*models.Reply, error) {
	return c.m.FindByID(ctx, id)
}

// FindByQuestionID returns every reply to the question.
func (c *Replies) FindByQuestionID(ctx context.Context, questionID int64) ([]models.Reply, error) {
	return c.m.FindAll(ctx, builder.Eq(builder.Col[models.Reply]("QuestionID"), questionID))
}

// TopLevelForQuestionID returns the replies answering the question directly.
func (c *Replies) TopLevelForQuestionID(ctx context.Context, questionID int64) ([]models.Reply, error) {
	return c.m.FindAll(ctx,
		builder.Eq(builder.Col[models.Reply]("QuestionID"), questionID),
		builder.IsNull(builder.Col[models.Reply]("ParentID")))
}

// CountForQuestionID counts every reply to the question, nested ones included.
func (c *Replies) CountForQuestionID(ctx context.Context, questionID int64) (int64, error) {
	return c.m.Count(ctx, builder.Eq(builder.Col[models.Reply]("QuestionID"), questionID))
}

// FindByUserID returns every reply written by the user.
func (c *Replies) FindByUserID(ctx context.Context, userID int64) ([]models.Reply, error) {
	return c.m.FindAll(ctx, builder.Eq(builder.Col[models.Reply]("AuthorID"), userID))
}

// Create inserts r and assigns its id.
func (c *Replies) Create(ctx context.Context, r *models.Reply) error {
	return create(ctx, c.store, c.m, r)
}

// Update writes r's body and references.
func (c *Replies) Update(ctx context.Context, r *models.Reply) error {
	return update(ctx, c.store, c.m, r)
}

// Author returns r's author, or nil.
func (c *Replies) Author(ctx context.Context, r *models.Reply) (*models.User, error) {
	return c.store.Users.FindByID(ctx, r.AuthorID)
}

// Question returns the question r answers, or nil.
func (c *Replies) Question(ctx context.Context, r *models.Reply) (*models.Question, error) {
	return c.store.Questions.FindByID(ctx, r.QuestionID)
}

// ParentReply returns the reply r answers. Top-level replies have none.
func (c *Replies) ParentReply(ctx context.Context, r *models.Reply) (*models.Reply, error) {
	if r.ParentID == nil {
		return nil, nil
	}
	return c.FindByID(ctx, *r.ParentID)
}

// ChildReplies returns the direct answers to r, not the whole subtree.
func (c *Replies) ChildReplies(ctx context.Context, r *models.Reply) ([]models.Reply, error) {
	return c.m.FindAll(ctx, builder.Eq(builder.Col[models.Reply]("ParentID"), r.ID))
}
