package quora

import (
	"context"

	"github.com/marshallshelly/pebble-quora/pkg/builder"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/record"
)

// QuestionLikes accesses the question_likes join table.
type QuestionLikes struct {
	store *Store
	m     *record.Mapper[models.QuestionLike]
}

// All returns every like.
func (c *QuestionLikes) All(ctx context.Context) ([]models.QuestionLike, error) {
	return c.m.All(ctx)
}

// FindByID returns the like with id, or nil.
func (c *QuestionLikes) FindByID(ctx context.Context, id int64) (*models.QuestionLike, error) {
	return c.m.FindByID(ctx, id)
}

// FindByUserID returns the user's first like, or nil.
func (c *QuestionLikes) FindByUserID(ctx context.Context, userID int64) (*models.QuestionLike, error) {
	return c.m.FindOne(ctx, builder.Eq(builder.Col[models.QuestionLike]("UserID"), userID))
}

// FindByQuestionID returns every like of the question.
func (c *QuestionLikes) FindByQuestionID(ctx context.Context, questionID int64) ([]models.QuestionLike, error) {
	return c.m.FindAll(ctx, builder.Eq(builder.Col[models.QuestionLike]("QuestionID"), questionID))
}

// HasLiked reports whether the user already likes the question.
func (c *QuestionLikes) HasLiked(ctx context.Context, userID, questionID int64) (bool, error) {
	return c.m.Exists(ctx,
		builder.Eq(builder.Col[models.QuestionLike]("UserID"), userID),
		builder.Eq(builder.Col[models.QuestionLike]("QuestionID"), questionID))
}

// Create inserts l and assigns its id.
func (c *QuestionLikes) Create(ctx context.Context, l *models.QuestionLike) error {
	return create(ctx, c.store, c.m, l)
}

// Update writes l's user and question.
func (c *QuestionLikes) Update(ctx context.Context, l *models.QuestionLike) error {
	return update(ctx, c.store, c.m, l)
}

// LikersForQuestionID returns the distinct users liking the question.
func (c *QuestionLikes) LikersForQuestionID(ctx context.Context, questionID int64) ([]models.User, error) {
	return usersJoinedTo[models.QuestionLike](ctx, c.store, questionID)
}

// NumLikesForQuestionID is the number of distinct likers of the question.
func (c *QuestionLikes) NumLikesForQuestionID(ctx context.Context, questionID int64) (int, error) {
	likers, err := c.LikersForQuestionID(ctx, questionID)
	if err != nil {
		return 0, err
	}
	return len(likers), nil
}

// LikedQuestionsForUserID returns the distinct questions the user likes.
func (c *QuestionLikes) LikedQuestionsForUserID(ctx context.Context, userID int64) ([]models.Question, error) {
	return questionsJoinedTo[models.QuestionLike](ctx, c.store, userID)
}

// MostLikedQuestions returns up to n questions by descending like count.
func (c *QuestionLikes) MostLikedQuestions(ctx context.Context, n int) ([]models.Question, error) {
	return mostJoinedQuestions[models.QuestionLike](ctx, c.store, n)
}
