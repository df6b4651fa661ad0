package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-quora/cmd/quora/output"
	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/quora"
)

var (
	listQuestionID  int64
	listReplyAuthor int64
	listTopLevel    bool

	createQuestionID  int64
	createReplyAuthor int64
	createParentID    int64
)

var repliesCmd = &cobra.Command{
	Use:     "replies",
	Aliases: []string{"r"},
	Short:   "Post, edit and navigate replies",
}

var repliesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List replies to a question or by an author",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (listQuestionID > 0) == (listReplyAuthor > 0) {
			return fmt.Errorf("exactly one of --question or --author is required")
		}
		if listTopLevel && listQuestionID == 0 {
			return fmt.Errorf("--top-level requires --question")
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			var (
				rs  []models.Reply
				err error
			)
			switch {
			case listTopLevel:
				rs, err = s.store.Replies.TopLevelForQuestionID(ctx, listQuestionID)
			case listQuestionID > 0:
				rs, err = s.store.Replies.FindByQuestionID(ctx, listQuestionID)
			default:
				rs, err = s.store.Replies.FindByUserID(ctx, listReplyAuthor)
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(rs)
			}
			printReplies(rs)
			return nil
		})
	},
}

var repliesCreateCmd = &cobra.Command{
	Use:   "create BODY",
	Short: "Reply to a question or to another reply",
	Long: `Reply to a question. With --parent the reply answers that reply instead;
its question is taken from the parent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			r := &models.Reply{QuestionID: createQuestionID, AuthorID: createReplyAuthor, Body: args[0]}
			if createParentID > 0 {
				parent, err := s.store.Replies.FindByID(ctx, createParentID)
				if err != nil {
					return err
				}
				if parent == nil {
					return fmt.Errorf("reply %d not found", createParentID)
				}
				r.ParentID = &parent.ID
				r.QuestionID = parent.QuestionID
			}
			if r.QuestionID == 0 {
				return fmt.Errorf("--question or --parent is required")
			}

			if err := s.store.Replies.Create(ctx, r); err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(r)
			}
			output.Success("Created reply %d on question %d", r.ID, r.QuestionID)
			return nil
		})
	},
}

var repliesEditCmd = &cobra.Command{
	Use:   "edit ID BODY",
	Short: "Replace a reply's body",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			r, err := s.store.Replies.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if r == nil {
				return fmt.Errorf("reply %d not found", id)
			}
			r.Body = args[1]
			if err := s.store.Replies.Update(ctx, r); err != nil {
				return err
			}
			output.Success("Updated reply %d", r.ID)
			return nil
		})
	},
}

var repliesThreadCmd = &cobra.Command{
	Use:   "thread ID",
	Short: "Show a reply with its parent and direct answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			r, err := s.store.Replies.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if r == nil {
				return fmt.Errorf("reply %d not found", id)
			}
			parent, err := s.store.Replies.ParentReply(ctx, r)
			if err != nil {
				return err
			}
			children, err := s.store.Replies.ChildReplies(ctx, r)
			if err != nil {
				return err
			}
			author, err := s.store.Replies.Author(ctx, r)
			if err != nil {
				return err
			}

			if jsonOutput {
				return output.JSON(struct {
					Reply    *models.Reply  `json:"reply"`
					Author   *models.User   `json:"author"`
					Parent   *models.Reply  `json:"parent"`
					Children []models.Reply `json:"children"`
				}{r, author, parent, children})
			}

			if parent != nil {
				output.Muted("in reply to #%d: %s", parent.ID, parent.Body)
			} else {
				output.Muted("top-level reply on question %d", r.QuestionID)
			}
			output.Section(fmt.Sprintf("#%d", r.ID))
			if author != nil {
				output.Field("author", author.FullName())
			}
			fmt.Println(r.Body)
			output.Section("Answers")
			printReplies(children)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(repliesCmd)
	repliesCmd.AddCommand(repliesListCmd, repliesCreateCmd, repliesEditCmd, repliesThreadCmd)

	repliesListCmd.Flags().Int64Var(&listQuestionID, "question", 0, "Question id")
	repliesListCmd.Flags().Int64Var(&listReplyAuthor, "author", 0, "Author user id")
	repliesListCmd.Flags().BoolVar(&listTopLevel, "top-level", false, "Only replies answering the question directly")

	repliesCreateCmd.Flags().Int64Var(&createQuestionID, "question", 0, "Question id")
	repliesCreateCmd.Flags().Int64Var(&createReplyAuthor, "author", 0, "Author user id (required)")
	repliesCreateCmd.Flags().Int64Var(&createParentID, "parent", 0, "Parent reply id")
	_ = repliesCreateCmd.MarkFlagRequired("author")
}

func printReplies(rs []models.Reply) {
	if len(rs) == 0 {
		output.Muted("no replies")
		return
	}
	for _, e := range quora.Thread(rs) {
		indent := strings.Repeat("  ", e.Depth)
		fmt.Printf("%s#%d (user %d) %s\n", indent, e.Reply.ID, e.Reply.AuthorID, e.Reply.Body)
	}
}
