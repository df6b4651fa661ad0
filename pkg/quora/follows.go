package quora

import (
	"context"

	"github.com/marshallshelly/pebble-quora/pkg/builder"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/record"
)

// QuestionFollows accesses the question_follows join table.
type QuestionFollows struct {
	store *Store
	m     *record.Mapper[models.QuestionFollow]
}

// All returns every follow.
func (c *QuestionFollows) All(ctx context.Context) ([]models.QuestionFollow, error) {
	return c.m.All(ctx)
}

// FindByID returns the follow with id, or nil.
func (c *QuestionFollows) FindByID(ctx context.Context, id int64) (*models.QuestionFollow, error) {
	return c.m.FindByID(ctx, id)
}

// FindByUserID returns the user's first follow, or nil.
func (c *QuestionFollows) FindByUserID(ctx context.Context, userID int64) (*models.QuestionFollow, error) {
	return c.m.FindOne(ctx, builder.Eq(builder.Col[models.QuestionFollow]("UserID"), userID))
}

// FindByQuestionID returns every follow of the question.
func (c *QuestionFollows) FindByQuestionID(ctx context.Context, questionID int64) ([]models.QuestionFollow, error) {
	return c.m.FindAll(ctx, builder.Eq(builder.Col[models.QuestionFollow]("QuestionID"), questionID))
}

// IsFollowing reports whether the user already follows the question.
func (c *QuestionFollows) IsFollowing(ctx context.Context, userID, questionID int64) (bool, error) {
	return c.m.Exists(ctx,
		builder.Eq(builder.Col[models.QuestionFollow]("UserID"), userID),
		builder.Eq(builder.Col[models.QuestionFollow]("QuestionID"), questionID))
}

// Create inserts f and assigns its id.
func (c *QuestionFollows) Create(ctx context.Context, f *models.QuestionFollow) error {
	return create(ctx, c.store, c.m, f)
}

// Update writes f's user and question.
func (c *QuestionFollows) Update(ctx context.Context, f *models.QuestionFollow) error {
	return update(ctx, c.store, c.m, f)
}

// FollowersForQuestionID returns the distinct users following the question.
func (c *QuestionFollows) FollowersForQuestionID(ctx context.Context, questionID int64) ([]models.User, error) {
	return usersJoinedTo[models.QuestionFollow](ctx, c.store, questionID)
}

// FollowedQuestionsForUserID returns the distinct questions the user follows.
func (c *QuestionFollows) FollowedQuestionsForUserID(ctx context.Context, userID int64) ([]models.Question, error) {
	return questionsJoinedTo[models.QuestionFollow](ctx, c.store, userID)
}

// MostFollowedQuestions returns up to n questions by descending follow count.
func (c *QuestionFollows) MostFollowedQuestions(ctx context.Context, n int) ([]models.Question, error) {
	return mostJoinedQuestions[models.QuestionFollow](ctx, c.store, n)
}
