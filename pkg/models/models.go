// Package models defines the forum's table-backed records. Records refer to
// each other only by id; relationship lookups go through quora.Store.
package models

import "github.com/marshallshelly/pebble-quora/pkg/schema"

func init() {
	schema.RegisterTableName("User", "users")
	schema.RegisterTableName("Question", "questions")
	schema.RegisterTableName("Reply", "replies")
	schema.RegisterTableName("QuestionFollow", "question_follows")
	schema.RegisterTableName("QuestionLike", "question_likes")
}

// User is a forum member.
type User struct {
	ID    int64  `po:"id,primaryKey,bigserial" json:"id"`
	Fname string `po:"fname,text,notNull" json:"fname"`
	Lname string `po:"lname,text,notNull" json:"lname"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return u.Fname + " " + u.Lname
}

// Question is a post authored by a user.
type Question struct {
	ID       int64  `po:"id,primaryKey,bigserial" json:"id"`
	Title    string `po:"title,text,notNull" json:"title"`
	Body     string `po:"body,text,notNull" json:"body"`
	AuthorID int64  `po:"author_id,bigint,notNull,fk(users.id)" json:"author_id"`
}

// Reply answers a question. A nil ParentID marks a top-level reply; otherwise
// it points at the reply being answered.
type Reply struct {
	ID         int64  `po:"id,primaryKey,bigserial" json:"id"`
	QuestionID int64  `po:"question_id,bigint,notNull,fk(questions.id)" json:"question_id"`
	ParentID   *int64 `po:"parent_id,bigint,fk(replies.id)" json:"parent_id,omitempty"`
	AuthorID   int64  `po:"reply_author,bigint,notNull,fk(users.id)" json:"reply_author"`
	Body       string `po:"body,text,notNull" json:"body"`
}

// IsTopLevel reports whether the reply answers the question directly.
func (r Reply) IsTopLevel() bool {
	return r.ParentID == nil
}

// QuestionFollow records a user following a question.
type QuestionFollow struct {
	ID         int64 `po:"id,primaryKey,bigserial" json:"id"`
	UserID     int64 `po:"user_id,bigint,notNull,fk(users.id)" json:"user_id"`
	QuestionID int64 `po:"question_id,bigint,notNull,fk(questions.id)" json:"question_id"`
}

// QuestionLike records a user liking a question.
type QuestionLike struct {
	ID         int64 `po:"id,primaryKey,bigserial" json:"id"`
	UserID     int64 `po:"user_id,bigint,notNull,fk(users.id)" json:"user_id"`
	QuestionID int64 `po:"question_id,bigint,notNull,fk(questions.id)" json:"question_id"`
}

// All returns one zero value of every model, parents before children.
func All() []any {
	return []any{User{}, Question{}, Reply{}, QuestionFollow{}, QuestionLike{}}
}
