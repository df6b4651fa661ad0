package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/pebble-quora/pkg/models"
	"github.com/marshallshelly/pebble-quora/pkg/quora"
)

type fakeSource struct {
	summaries []QuestionSummary
	details   map[int64]*QuestionDetail
	err       error
}

func (f fakeSource) Summaries(context.Context) ([]QuestionSummary, error) {
	return f.summaries, f.err
}

func (f fakeSource) Detail(_ context.Context, id int64) (*QuestionDetail, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, errors.New("missing")
}

func newSource() fakeSource {
	q := models.Question{ID: 1, Title: "Can machines think?", Body: "Asking for a friend.", AuthorID: 2}
	parent := int64(10)
	return fakeSource{
		summaries: []QuestionSummary{{Question: q, AuthorName: "Alan Turing", Likes: 2, Replies: 2}},
		details: map[int64]*QuestionDetail{
			1: {
				Question: q,
				Author:   &models.User{ID: 2, Fname: "Alan", Lname: "Turing"},
				Thread: quora.Thread([]models.Reply{
					{ID: 10, QuestionID: 1, AuthorID: 1, Body: "Only what we tell them to."},
					{ID: 11, QuestionID: 1, ParentID: &parent, AuthorID: 2, Body: "Objection noted."},
				}),
			},
		},
	}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (BrowseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(BrowseModel)
	require.True(t, ok)
	return bm, cmd
}

func loaded(t *testing.T, src fakeSource) BrowseModel {
	t.Helper()
	m := NewBrowseModel(src)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	msg := loadSummariesCmd(src)()
	m, _ = update(t, m, msg)
	return m
}

func TestBrowse_ListsQuestions(t *testing.T) {
	m := loaded(t, newSource())

	assert.Equal(t, ModeList, m.Mode())
	assert.Contains(t, m.View(), "Can machines think?")
}

func TestBrowse_OpenAndCloseDetail(t *testing.T) {
	src := newSource()
	m := loaded(t, src)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ModeDetail, m.Mode())

	m, _ = update(t, m, cmd())
	view := m.View()
	assert.Contains(t, view, "Asking for a friend.")
	assert.Contains(t, view, "asked by Alan Turing")
	assert.Contains(t, view, "Objection noted.")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.Mode())
}

func TestBrowse_LoadError(t *testing.T) {
	src := fakeSource{err: errors.New("connection refused")}
	m := NewBrowseModel(src)

	m, _ = update(t, m, loadSummariesCmd(src)())
	assert.Equal(t, ModeError, m.Mode())
	assert.Contains(t, m.View(), "connection refused")
}

func TestFormatCount(t *testing.T) {
	assert.Contains(t, FormatCount(1, "like", "likes"), "like")
	assert.NotContains(t, FormatCount(1, "like", "likes"), "likes")
	assert.Contains(t, FormatCount(3, "like", "likes"), "likes")
	assert.Contains(t, FormatCount(2, "reply", "replies"), "replies")
	assert.NotContains(t, FormatCount(2, "reply", "replies"), "replys")
	assert.Contains(t, FormatCount(0, "reply", "replies"), "replies")
}
