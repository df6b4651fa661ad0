package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-quora/cmd/quora/output"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/quora"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small sample forum",
	Long: `Insert sample users, questions, threaded replies, follows and likes.
Run "quora init" first. Seeding twice inserts the sample twice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			n, err := seed(ctx, s.store)
			if err != nil {
				return err
			}
			output.Success("Inserted %d records", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seed writes the sample forum through the store and returns the number of
// rows created.
func seed(ctx context.Context, store *quora.Store) (int, error) {
	count := 0

	users := []*models.User{
		{Fname: "Ada", Lname: "Lovelace"},
		{Fname: "Alan", Lname: "Turing"},
		{Fname: "Grace", Lname: "Hopper"},
		{Fname: "Edsger", Lname: "Dijkstra"},
	}
	for _, u := range users {
		if err := store.Users.Create(ctx, u); err != nil {
			return count, fmt.Errorf("create user %s: %w", u.FullName(), err)
		}
		count++
	}

	questions := []*models.Question{
		{Title: "Can machines think?", Body: "Asking for a friend.", AuthorID: users[1].ID},
		{Title: "Is GOTO harmful?", Body: "Serious answers only.", AuthorID: users[3].ID},
		{Title: "Who found the first bug?", Body: "It was in a relay.", AuthorID: users[2].ID},
	}
	for _, q := range questions {
		if err := store.Questions.Create(ctx, q); err != nil {
			return count, fmt.Errorf("create question %q: %w", q.Title, err)
		}
		count++
	}

	top := &models.Reply{QuestionID: questions[0].ID, AuthorID: users[0].ID, Body: "Only what we tell them to."}
	if err := store.Replies.Create(ctx, top); err != nil {
		return count, fmt.Errorf("create reply: %w", err)
	}
	count++

	replies := []*models.Reply{
		{QuestionID: questions[0].ID, ParentID: &top.ID, AuthorID: users[1].ID, Body: "That objection has been raised before."},
		{QuestionID: questions[1].ID, AuthorID: users[2].ID, Body: "Considered harmful, considered."},
		{QuestionID: questions[2].ID, AuthorID: users[2].ID, Body: "A moth, taped into the logbook."},
	}
	for _, r := range replies {
		if err := store.Replies.Create(ctx, r); err != nil {
			return count, fmt.Errorf("create reply: %w", err)
		}
		count++
	}

	follows := [][2]int{{0, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 2}}
	for _, f := range follows {
		qf := &models.QuestionFollow{UserID: users[f[0]].ID, QuestionID: questions[f[1]].ID}
		if err := store.Follows.Create(ctx, qf); err != nil {
			return count, fmt.Errorf("create follow: %w", err)
		}
		count++
	}

	likes := [][2]int{{0, 0}, {2, 0}, {0, 1}, {1, 1}, {3, 2}}
	for _, l := range likes {
		ql := &models.QuestionLike{UserID: users[l[0]].ID, QuestionID: questions[l[1]].ID}
		if err := store.Likes.Create(ctx, ql); err != nil {
			return count, fmt.Errorf("create like: %w", err)
		}
		count++
	}

	return count, nil
}
