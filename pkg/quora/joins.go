package quora

import (
	"context"
	"fmt"

	"github.com/marshallshelly/pebble-quora/pkg/builder"
	"github.com/marshallshelly/pebble-quora/pkg/models"
)

// Join tables (QuestionFollow, QuestionLike) share the user_id/question_id
// shape, so the traversals below are written once over the join model J.

// usersJoinedTo returns the distinct users with a J row for questionID.
func usersJoinedTo[J any](ctx context.Context, s *Store, questionID int64) ([]models.User, error) {
	users := builder.TableName[models.User]()
	return s.Users.m.Select().
		Distinct().
		Columns(users+".*").
		InnerJoin(builder.TableName[J](), fmt.Sprintf("%s = %s",
			builder.QualifiedCol[models.User]("ID"), builder.QualifiedCol[J]("UserID"))).
		Where(builder.Eq(builder.QualifiedCol[J]("QuestionID"), questionID)).
		All(ctx)
}

// questionsJoinedTo returns the distinct questions with a J row for userID.
func questionsJoinedTo[J any](ctx context.Context, s *Store, userID int64) ([]models.Question, error) {
	questions := builder.TableName[models.Question]()
	return s.Questions.m.Select().
		Distinct().
		Columns(questions+".*").
		InnerJoin(builder.TableName[J](), fmt.Sprintf("%s = %s",
			builder.QualifiedCol[models.Question]("ID"), builder.QualifiedCol[J]("QuestionID"))).
		Where(builder.Eq(builder.QualifiedCol[J]("UserID"), userID)).
		All(ctx)
}

// mostJoinedQuestions ranks questions by their number of J rows, highest
// first, ties broken by ascending question id. Questions without any J row
// are not ranked.
func mostJoinedQuestions[J any](ctx context.Context, s *Store, n int) ([]models.Question, error) {
	if n <= 0 {
		return []models.Question{}, nil
	}

	questions := builder.TableName[models.Question]()
	questionID := builder.QualifiedCol[models.Question]("ID")
	return builder.Select[models.Question](s.db).
		Columns(questions+".*").
		InnerJoin(builder.TableName[J](), fmt.Sprintf("%s = %s", questionID, builder.QualifiedCol[J]("QuestionID"))).
		GroupBy(questionID).
		OrderByDesc(fmt.Sprintf("COUNT(%s)", builder.QualifiedCol[J]("ID"))).
		OrderByAsc(questionID).
		Limit(n).
		All(ctx)
}
