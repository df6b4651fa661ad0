package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-quora/cmd/quora/output"
	"github.com/marshallshelly/pebble-quora/pkg/models"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List, inspect and edit users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			users, err := s.store.Users.All(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(users)
			}
			printUsers(users)
			return nil
		})
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a user with their questions, replies and karma",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			u, err := s.store.Users.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("user %d not found", id)
			}

			authored, err := s.store.Users.AuthoredQuestions(ctx, u)
			if err != nil {
				return err
			}
			replies, err := s.store.Users.AuthoredReplies(ctx, u)
			if err != nil {
				return err
			}
			followed, err := s.store.Users.FollowedQuestions(ctx, u)
			if err != nil {
				return err
			}
			liked, err := s.store.Users.LikedQuestions(ctx, u)
			if err != nil {
				return err
			}
			karma, err := s.store.Users.AverageKarma(ctx, u)
			if err != nil {
				return err
			}

			if jsonOutput {
				return output.JSON(struct {
					*models.User
					Questions []models.Question `json:"questions"`
					Replies   []models.Reply    `json:"replies"`
					Followed  []models.Question `json:"followed_questions"`
					Liked     []models.Question `json:"liked_questions"`
					Karma     float64           `json:"average_karma"`
				}{u, authored, replies, followed, liked, karma})
			}

			output.Section(u.FullName())
			output.Field("id", u.ID)
			output.Field("karma", strconv.FormatFloat(karma, 'f', 2, 64))
			output.Field("replies", len(replies))

			output.Section("Questions")
			printQuestions(authored)
			output.Section("Following")
			printQuestions(followed)
			output.Section("Liked")
			printQuestions(liked)
			return nil
		})
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create FNAME LNAME",
	Short: "Create a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			u := &models.User{Fname: args[0], Lname: args[1]}
			if err := s.store.Users.Create(ctx, u); err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(u)
			}
			output.Success("Created user %d (%s)", u.ID, u.FullName())
			return nil
		})
	},
}

var usersRenameCmd = &cobra.Command{
	Use:   "rename ID FNAME LNAME",
	Short: "Change a user's name",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			u, err := s.store.Users.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("user %d not found", id)
			}
			u.Fname, u.Lname = args[1], args[2]
			if err := s.store.Users.Update(ctx, u); err != nil {
				return err
			}
			output.Success("Renamed user %d to %s", u.ID, u.FullName())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersShowCmd, usersCreateCmd, usersRenameCmd)
}

func printUsers(users []models.User) {
	if len(users) == 0 {
		output.Muted("no users")
		return
	}
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{strconv.FormatInt(u.ID, 10), u.Fname, u.Lname}
	}
	output.Table([]string{"ID", "FNAME", "LNAME"}, rows)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
