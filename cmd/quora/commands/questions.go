package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-quora/cmd/quora/output"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/quora"
)

var (
	listAuthorID   int64
	createAuthorID int64
)

var questionsCmd = &cobra.Command{
	Use:     "questions",
	Aliases: []string{"q"},
	Short:   "List, inspect, follow and like questions",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions, optionally by author",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			var (
				qs  []models.Question
				err error
			)
			if listAuthorID > 0 {
				qs, err = s.store.Questions.FindByAuthorID(ctx, listAuthorID)
			} else {
				qs, err = s.store.Questions.All(ctx)
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(qs)
			}
			printQuestions(qs)
			return nil
		})
	},
}

var questionsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a question with its author, replies, followers and likers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			d, err := loadQuestionDetail(ctx, s.store, id)
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(d)
			}

			output.Section(d.Question.Title)
			output.Field("id", d.Question.ID)
			if d.Author != nil {
				output.Field("author", d.Author.FullName())
			}
			output.Field("likes", len(d.Likers))
			output.Field("followers", len(d.Followers))
			fmt.Println()
			fmt.Println(d.Question.Body)

			output.Section("Replies")
			printReplies(d.Replies)
			return nil
		})
	},
}

var questionsCreateCmd = &cobra.Command{
	Use:   "create TITLE BODY",
	Short: "Ask a question",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			q := &models.Question{Title: args[0], Body: args[1], AuthorID: createAuthorID}
			if err := s.store.Questions.Create(ctx, q); err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(q)
			}
			output.Success("Created question %d", q.ID)
			return nil
		})
	},
}

var questionsFollowCmd = &cobra.Command{
	Use:   "follow USER_ID QUESTION_ID",
	Short: "Make a user follow a question",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, questionID, err := parseIDPair(args)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			following, err := s.store.Follows.IsFollowing(ctx, userID, questionID)
			if err != nil {
				return err
			}
			if following {
				output.Warning("User %d already follows question %d", userID, questionID)
				return nil
			}
			f := &models.QuestionFollow{UserID: userID, QuestionID: questionID}
			if err := s.store.Follows.Create(ctx, f); err != nil {
				return err
			}
			output.Success("User %d now follows question %d", userID, questionID)
			return nil
		})
	},
}

var questionsLikeCmd = &cobra.Command{
	Use:   "like USER_ID QUESTION_ID",
	Short: "Record a user liking a question",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, questionID, err := parseIDPair(args)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			liked, err := s.store.Likes.HasLiked(ctx, userID, questionID)
			if err != nil {
				return err
			}
			if liked {
				output.Warning("User %d already likes question %d", userID, questionID)
				return nil
			}
			l := &models.QuestionLike{UserID: userID, QuestionID: questionID}
			if err := s.store.Likes.Create(ctx, l); err != nil {
				return err
			}
			output.Success("User %d likes question %d", userID, questionID)
			return nil
		})
	},
}

var questionsMostFollowedCmd = &cobra.Command{
	Use:   "most-followed [N]",
	Short: "Rank questions by follower count",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRanking(cmd, args, func(ctx context.Context, store *quora.Store, n int) ([]models.Question, error) {
			return store.Questions.MostFollowed(ctx, n)
		})
	},
}

var questionsMostLikedCmd = &cobra.Command{
	Use:   "most-liked [N]",
	Short: "Rank questions by like count",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRanking(cmd, args, func(ctx context.Context, store *quora.Store, n int) ([]models.Question, error) {
			return store.Questions.MostLiked(ctx, n)
		})
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
	questionsCmd.AddCommand(questionsListCmd, questionsShowCmd, questionsCreateCmd,
		questionsFollowCmd, questionsLikeCmd, questionsMostFollowedCmd, questionsMostLikedCmd)

	questionsListCmd.Flags().Int64Var(&listAuthorID, "author", 0, "Only questions by this user id")
	questionsCreateCmd.Flags().Int64Var(&createAuthorID, "author", 0, "Author user id (required)")
	_ = questionsCreateCmd.MarkFlagRequired("author")
}

func runRanking(cmd *cobra.Command, args []string, rank func(context.Context, *quora.Store, int) ([]models.Question, error)) error {
	n := 1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		n = v
	}
	return withSession(cmd, func(ctx context.Context, s *session) error {
		qs, err := rank(ctx, s.store, n)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(qs)
		}
		printQuestions(qs)
		return nil
	})
}

// questionDetail is everything "questions show" and the browser display for
// one question.
type questionDetail struct {
	Question  *models.Question `json:"question"`
	Author    *models.User     `json:"author"`
	Replies   []models.Reply   `json:"replies"`
	Followers []models.User    `json:"followers"`
	Likers    []models.User    `json:"likers"`
}

func loadQuestionDetail(ctx context.Context, store *quora.Store, id int64) (*questionDetail, error) {
	q, err := store.Questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("question %d not found", id)
	}

	d := &questionDetail{Question: q}
	if d.Author, err = store.Questions.Author(ctx, q); err != nil {
		return nil, err
	}
	if d.Replies, err = store.Questions.Replies(ctx, q); err != nil {
		return nil, err
	}
	if d.Followers, err = store.Questions.Followers(ctx, q); err != nil {
		return nil, err
	}
	if d.Likers, err = store.Questions.Likers(ctx, q); err != nil {
		return nil, err
	}
	return d, nil
}

func printQuestions(qs []models.Question) {
	if len(qs) == 0 {
		output.Muted("no questions")
		return
	}
	rows := make([][]string, len(qs))
	for i, q := range qs {
		rows[i] = []string{strconv.FormatInt(q.ID, 10), q.Title, strconv.FormatInt(q.AuthorID, 10)}
	}
	output.Table([]string{"ID", "TITLE", "AUTHOR"}, rows)
}

func parseIDPair(args []string) (int64, int64, error) {
	a, err := parseID(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := parseID(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
