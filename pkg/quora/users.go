package quora

import (
	"context"

	"github.com/marshallshelly/pebble-quora/pkg/builder"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/record"
)

// Users accesses the users table.
type Users struct {
	store *Store
	m     *record.Mapper[models.User]
}

// All returns every user.
func (c *Users) All(ctx context.Context) ([]models.User, error) {
	return c.m.All(ctx)
}

// FindByID returns the user with id, or nil.
func (c *Users) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return c.m.FindByID(ctx, id)
}

// FindByName returns the first user with both names, or nil.
func (c *Users) FindByName(ctx context.Context, fname, lname string) (*models.User, error) {
	return c.m.FindOne(ctx,
		builder.Eq(builder.Col[models.User]("Fname"), fname),
		builder.Eq(builder.Col[models.User]("Lname"), lname))
}

// FindByFname returns the first user with the first name, or nil.
func (c *Users) FindByFname(ctx context.Context, fname string) (*models.User, error) {
	return c.m.FindOne(ctx, builder.Eq(builder.Col[models.User]("Fname"), fname))
}

// FindByLname returns the first user with the last name, or nil.
func (c *Users) FindByLname(ctx context.Context, lname string) (*models.User, error) {
	return c.m.FindOne(ctx, builder.Eq(builder.Col[models.User]("Lname"), lname))
}

// Create inserts u and assigns its id.
func (c *Users) Create(ctx context.Context, u *models.User) error {
	return create(ctx, c.store, c.m, u)
}

// Update writes u's names.
func (c *Users) Update(ctx context.Context, u *models.User) error {
	return update(ctx, c.store, c.m, u)
}

// AuthoredQuestions returns the questions u wrote.
func (c *Users) AuthoredQuestions(ctx context.Context, u *models.User) ([]models.Question, error) {
	return c.store.Questions.FindByAuthorID(ctx, u.ID)
}

// AuthoredReplies returns the replies u wrote.
func (c *Users) AuthoredReplies(ctx context.Context, u *models.User) ([]models.Reply, error) {
	return c.store.Replies.FindByUserID(ctx, u.ID)
}

// FollowedQuestions returns the questions u follows.
func (c *Users) FollowedQuestions(ctx context.Context, u *models.User) ([]models.Question, error) {
	return c.store.Follows.FollowedQuestionsForUserID(ctx, u.ID)
}

// LikedQuestions returns the questions u likes.
func (c *Users) LikedQuestions(ctx context.Context, u *models.User) ([]models.Question, error) {
	return c.store.Likes.LikedQuestionsForUserID(ctx, u.ID)
}

// AverageKarma is the mean number of likes over the questions u authored.
// A user with no questions has karma 0.
func (c *Users) AverageKarma(ctx context.Context, u *models.User) (float64, error) {
	questions, err := c.AuthoredQuestions(ctx, u)
	if err != nil {
		return 0, err
	}
	if len(questions) == 0 {
		return 0, nil
	}

	total := 0
	for i := range questions {
		n, err := c.store.Questions.NumLikes(ctx, &questions[i])
		if err != nil {
			return 0, err
		}
		total += n
	}
	return float64(total) / float64(len(questions)), nil
}
