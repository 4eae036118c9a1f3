package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmoreno/obligo/internal/tui/components"
	"github.com/nmoreno/obligo/internal/tui/msgs"
	"github.com/nmoreno/obligo/internal/tui/styles"
)

// MenuItem represents a menu option in the home view.
type MenuItem struct {
	Label       string
	Shortcut    string
	Description string
}

// MenuSection represents a group of related menu items.
type MenuSection struct {
	Title string
	Items []MenuItem
}

// HomeModel is the model for the home view landing screen.
type HomeModel struct {
	sections []MenuSection
	cursor   int
	width    int
	height   int
}

// NewHomeModel creates a new HomeModel.
func NewHomeModel() HomeModel {
	return HomeModel{
		sections: []MenuSection{
			{
				Title: "Documents",
				Items: []MenuItem{
					{Label: "Upload document", Shortcut: "u", Description: "Upload a contract and extract obligations"},
				},
			},
			{
				Title: "Obligations",
				Items: []MenuItem{
					{Label: "Browse obligations", Shortcut: "b", Description: "List, edit and delete extracted obligations"},
					{Label: "Tracker issues", Shortcut: "i", Description: "View issues created for obligations"},
				},
			},
			{
				Title: "",
				Items: []MenuItem{
					{Label: "Quit", Shortcut: "q", Description: ""},
				},
			},
		},
	}
}

// SetSize updates the view dimensions.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "u":
			return m, func() tea.Msg { return msgs.GoToUploadMsg{} }
		case "b":
			return m, func() tea.Msg { return msgs.GoToObligationsMsg{Refresh: true} }
		case "i":
			return m, func() tea.Msg { return msgs.GoToIssuesMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.totalMenuItems()-1 {
				m.cursor++
			}
		case "enter":
			return m.selectCurrentItem()
		}
	}
	return m, nil
}

func (m HomeModel) totalMenuItems() int {
	total := 0
	for _, s := range m.sections {
		total += len(s.Items)
	}
	return total
}

func (m HomeModel) itemAtCursor() MenuItem {
	idx := 0
	for _, s := range m.sections {
		for _, item := range s.Items {
			if idx == m.cursor {
				return item
			}
			idx++
		}
	}
	return MenuItem{}
}

func (m HomeModel) selectCurrentItem() (HomeModel, tea.Cmd) {
	switch m.itemAtCursor().Shortcut {
	case "u":
		return m, func() tea.Msg { return msgs.GoToUploadMsg{} }
	case "b":
		return m, func() tea.Msg { return msgs.GoToObligationsMsg{Refresh: true} }
	case "i":
		return m, func() tea.Msg { return msgs.GoToIssuesMsg{} }
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m HomeModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("obligo — legal obligation tracker"))
	b.WriteString("\n\n")

	idx := 0
	for _, section := range m.sections {
		if section.Title != "" {
			b.WriteString(styles.SubtleStyle.Render(section.Title))
			b.WriteString("\n")
		}
		for _, item := range section.Items {
			line := "  " + item.Label
			if item.Description != "" {
				line += styles.SubtleStyle.Render("  — " + item.Description)
			}
			if idx == m.cursor {
				line = styles.SelectedStyle.Render("› " + item.Label)
				if item.Description != "" {
					line += styles.SubtleStyle.Render("  — " + item.Description)
				}
			}
			b.WriteString(line)
			b.WriteString("\n")
			idx++
		}
		b.WriteString("\n")
	}

	bar := components.NewStatusBar().Render(m.width, []string{
		"↑/↓ move", "enter select", "u upload", "b browse", "i issues", "q quit",
	})

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), bar)
}

// Cursor returns the current cursor position, for tests.
func (m HomeModel) Cursor() int {
	return m.cursor
}
