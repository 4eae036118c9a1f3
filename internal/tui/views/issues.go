package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmoreno/obligo/internal/api"
	"github.com/nmoreno/obligo/internal/tui/components"
	"github.com/nmoreno/obligo/internal/tui/msgs"
	"github.com/nmoreno/obligo/internal/tui/styles"
)

// issuesLoadedMsg carries the fetched issue list.
type issuesLoadedMsg struct {
	issues []api.Issue
	err    error
}

// ListIssuesFunc fetches tracker issues. Replaced in tests.
type ListIssuesFunc func(ctx context.Context) ([]api.Issue, error)

// IssuesModel is the read-only tracker issue list. Issues are created from
// the obligation views; this screen only shows what exists.
type IssuesModel struct {
	list ListIssuesFunc

	issues  []api.Issue
	cursor  int
	loading bool
	errMsg  string
	spinner spinner.Model

	width  int
	height int
}

// NewIssuesModel creates the issue list view.
func NewIssuesModel(list ListIssuesFunc) IssuesModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return IssuesModel{
		list:    list,
		loading: true,
		spinner: s,
	}
}

// SetSize updates the view dimensions.
func (m *IssuesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model.
func (m IssuesModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m IssuesModel) loadCmd() tea.Cmd {
	list := m.list
	return func() tea.Msg {
		issues, err := list(context.Background())
		return issuesLoadedMsg{issues: issues, err: err}
	}
}

// Update implements tea.Model.
func (m IssuesModel) Update(msg tea.Msg) (IssuesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case issuesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if detail := api.Detail(msg.err); detail != "" {
				m.errMsg = detail
			} else {
				m.errMsg = "failed to load issues"
			}
			return m, nil
		}
		m.errMsg = ""
		m.issues = msg.issues
		if m.cursor >= len(m.issues) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "h":
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.issues)-1 {
				m.cursor++
			}
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m IssuesModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Tracker issues"))
	b.WriteString("\n")

	if banner := components.ErrorBanner(m.width, m.errMsg); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View() + " loading…\n")
	} else if len(m.issues) == 0 {
		b.WriteString(styles.SubtleStyle.Render("No issues created yet."))
		b.WriteString("\n")
	}

	for i, issue := range m.issues {
		row := fmt.Sprintf("  %-12s %-12s %s",
			issue.Key, issue.Status, truncate(issue.Title, 60))
		if i == m.cursor {
			row = styles.SelectedStyle.Render("›" + row[1:])
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	bar := components.NewStatusBar().Render(m.width, []string{
		"↑/↓ move", "r reload", "esc back",
	})

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), bar)
}

// Issues returns the loaded issues, for tests.
func (m IssuesModel) Issues() []api.Issue {
	return m.issues
}
