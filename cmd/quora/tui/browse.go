// Package tui implements the interactive question browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/pebble-quora/pkg/quora"
)

// Source feeds the browser.
type Source interface {
	Summaries(ctx context.Context) ([]QuestionSummary, error)
	Detail(ctx context.Context, questionID int64) (*QuestionDetail, error)
}

// StoreSource reads the browser's data through a quora.Store.
type StoreSource struct {
	Store *quora.Store
}

// Summaries lists every question with author name, likes and replies.
func (s StoreSource) Summaries(ctx context.Context) ([]QuestionSummary, error) {
	questions, err := s.Store.Questions.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]QuestionSummary, len(questions))
	for i := range questions {
		q := &questions[i]
		sum := QuestionSummary{Question: *q, AuthorName: "unknown"}

		author, err := s.Store.Questions.Author(ctx, q)
		if err != nil {
			return nil, err
		}
		if author != nil {
			sum.AuthorName = author.FullName()
		}
		if sum.Likes, err = s.Store.Questions.NumLikes(ctx, q); err != nil {
			return nil, err
		}
		replies, err := s.Store.Replies.CountForQuestionID(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		sum.Replies = int(replies)
		out[i] = sum
	}
	return out, nil
}

// Detail loads one question with its threaded replies.
func (s StoreSource) Detail(ctx context.Context, questionID int64) (*QuestionDetail, error) {
	q, err := s.Store.Questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("question %d not found", questionID)
	}

	d := &QuestionDetail{Question: *q}
	if d.Author, err = s.Store.Questions.Author(ctx, q); err != nil {
		return nil, err
	}
	replies, err := s.Store.Questions.Replies(ctx, q)
	if err != nil {
		return nil, err
	}
	d.Thread = quora.Thread(replies)
	if d.Followers, err = s.Store.Questions.Followers(ctx, q); err != nil {
		return nil, err
	}
	if d.Likers, err = s.Store.Questions.Likers(ctx, q); err != nil {
		return nil, err
	}
	return d, nil
}

// BrowseMode is the screen the browser is on.
type BrowseMode int

const (
	ModeList BrowseMode = iota
	ModeDetail
	ModeError
)

// BrowseModel is the Bubbletea model for the question browser.
type BrowseModel struct {
	mode   BrowseMode
	source Source
	list   list.Model
	detail DetailView
	err    error
	width  int
	height int
}

// NewBrowseModel creates a browser over source.
func NewBrowseModel(source Source) BrowseModel {
	l := list.New([]list.Item{}, QuestionItemDelegate{}, 0, 0)
	l.Title = "Questions"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return BrowseModel{
		mode:   ModeList,
		source: source,
		list:   l,
	}
}

// Mode reports the current screen.
func (m BrowseModel) Mode() BrowseMode { return m.mode }

// Init loads the question list.
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(loadSummariesCmd(m.source), tea.EnterAltScreen)
}

type summariesLoadedMsg struct {
	summaries []QuestionSummary
}

type detailLoadedMsg struct {
	detail *QuestionDetail
}

type errorMsg struct {
	err error
}

func loadSummariesCmd(source Source) tea.Cmd {
	return func() tea.Msg {
		summaries, err := source.Summaries(context.Background())
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to load questions: %w", err)}
		}
		return summariesLoadedMsg{summaries: summaries}
	}
}

func loadDetailCmd(source Source, id int64) tea.Cmd {
	return func() tea.Msg {
		d, err := source.Detail(context.Background(), id)
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to load question %d: %w", id, err)}
		}
		return detailLoadedMsg{detail: d}
	}
}

// Update handles messages.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case summariesLoadedMsg:
		items := make([]list.Item, len(msg.summaries))
		for i, s := range msg.summaries {
			items[i] = QuestionItem{Summary: s}
		}
		return m, m.list.SetItems(items)

	case detailLoadedMsg:
		m.detail = DetailView{Detail: msg.detail}
		return m, nil

	case errorMsg:
		m.mode = ModeError
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeList:
			if m.list.FilterState() == list.Filtering {
				break
			}
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "enter":
				item, ok := m.list.SelectedItem().(QuestionItem)
				if !ok {
					return m, nil
				}
				m.mode = ModeDetail
				m.detail = DetailView{}
				return m, loadDetailCmd(m.source, item.Summary.Question.ID)
			}

		case ModeDetail:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "backspace":
				m.mode = ModeList
				return m, nil
			}
			return m, nil

		case ModeError:
			return m, tea.Quit
		}
	}

	if m.mode == ModeList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI.
func (m BrowseModel) View() string {
	switch m.mode {
	case ModeList:
		help := helpStyle.Render(
			FormatKey("↑/↓", "navigate") + " • " +
				FormatKey("/", "filter") + " • " +
				FormatKey("enter", "open") + " • " +
				FormatKey("q", "quit"),
		)
		return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), help)

	case ModeDetail:
		help := helpStyle.Render(FormatKey("esc", "back") + " • " + FormatKey("q", "quit"))
		return lipgloss.JoinVertical(lipgloss.Left, m.detail.View(), help)

	case ModeError:
		msg := titleStyle.Render("Something went wrong") + "\n\n" +
			dangerStyle.Render(m.err.Error()) + "\n\n" +
			helpStyle.Render(FormatKey("any key", "exit"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(msg))
	}

	return "Unknown mode"
}

// RunBrowser starts the interactive browser.
func RunBrowser(source Source) error {
	_, err := tea.NewProgram(NewBrowseModel(source)).Run()
	return err
}
