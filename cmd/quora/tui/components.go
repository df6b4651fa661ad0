package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/quora"
)

func itoa(n int) string { return strconv.Itoa(n) }

// QuestionItem is a question in the browser list.
type QuestionItem struct {
	Summary QuestionSummary
}

func (i QuestionItem) FilterValue() string { return i.Summary.Question.Title }
func (i QuestionItem) Title() string {
	return fmt.Sprintf("#%d %s", i.Summary.Question.ID, i.Summary.Question.Title)
}
func (i QuestionItem) Description() string {
	return mutedStyle.Render("by "+i.Summary.AuthorName) + "  " +
		FormatCount(i.Summary.Likes, "like", "likes") + "  " +
		FormatCount(i.Summary.Replies, "reply", "replies")
}

// QuestionItemDelegate renders QuestionItems on two lines.
type QuestionItemDelegate struct{}

func (d QuestionItemDelegate) Height() int                             { return 2 }
func (d QuestionItemDelegate) Spacing() int                            { return 1 }
func (d QuestionItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d QuestionItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(QuestionItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}

	_, _ = fmt.Fprint(w, s)
}

// DetailView renders one question and its reply tree.
type DetailView struct {
	Detail *QuestionDetail
}

// View renders the detail view.
func (v DetailView) View() string {
	if v.Detail == nil {
		return mutedStyle.Render("Loading...")
	}
	d := v.Detail

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Question.Title))
	b.WriteString("\n")
	author := "unknown"
	if d.Author != nil {
		author = d.Author.FullName()
	}
	b.WriteString(mutedStyle.Render("asked by " + author))
	b.WriteString("\n\n")
	b.WriteString(d.Question.Body)
	b.WriteString("\n\n")
	b.WriteString(FormatCount(len(d.Likers), "like", "likes") + "  " + FormatCount(len(d.Followers), "follower", "followers"))
	b.WriteString("\n\n")

	if len(d.Thread) == 0 {
		b.WriteString(mutedStyle.Render("No replies yet"))
	}
	for _, e := range d.Thread {
		b.WriteString(strings.Repeat("  ", e.Depth))
		b.WriteString(successStyle.Render("• "))
		b.WriteString(e.Reply.Body)
		b.WriteString(" ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("(#%d, user %d)", e.Reply.ID, e.Reply.AuthorID)))
		b.WriteString("\n")
	}

	return boxStyle.Render(b.String())
}

// QuestionSummary is a list row: a question and its headline counts.
type QuestionSummary struct {
	Question   models.Question
	AuthorName string
	Likes      int
	Replies    int
}

// QuestionDetail is everything the detail view shows.
type QuestionDetail struct {
	Question  models.Question
	Author    *models.User
	Thread    []quora.ThreadEntry
	Followers []models.User
	Likers    []models.User
}
