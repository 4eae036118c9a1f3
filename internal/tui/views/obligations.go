package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmoreno/obligo/internal/api"
	"github.com/nmoreno/obligo/internal/store"
	"github.com/nmoreno/obligo/internal/tui/components"
	"github.com/nmoreno/obligo/internal/tui/msgs"
	"github.com/nmoreno/obligo/internal/tui/styles"
)

// pageLoadedMsg reports a finished list fetch.
type pageLoadedMsg struct {
	err error
}

// mutationDoneMsg reports a finished delete or single issue creation.
type mutationDoneMsg struct {
	note string
	err  error
}

// bulkDoneMsg reports a finished bulk issue creation.
type bulkDoneMsg struct {
	err error
}

// ObligationsModel is the obligation list view: one page of results with a
// cursor, a party-name filter, a bulk selection set, and pagination keys.
// All data lives in the store; this model only holds UI state.
type ObligationsModel struct {
	st  *store.Store
	sel *store.Selection

	pageSize int
	cursor   int

	filterInput   textinput.Model
	filtering     bool
	confirmDelete bool

	busy    bool
	spinner spinner.Model
	note    string

	width  int
	height int
}

// NewObligationsModel creates the list view bound to the given store.
func NewObligationsModel(st *store.Store, pageSize int) ObligationsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	ti := textinput.New()
	ti.Placeholder = "party name"
	ti.CharLimit = 80
	ti.Width = 30

	if pageSize <= 0 {
		pageSize = store.DefaultPageSize
	}

	return ObligationsModel{
		st:          st,
		sel:         store.NewSelection(),
		pageSize:    pageSize,
		filterInput: ti,
		spinner:     s,
	}
}

// SetSize updates the view dimensions.
func (m *ObligationsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model.
func (m ObligationsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(1, m.filterInput.Value()))
}

// Spin starts the spinner without fetching, for entering the view when the
// store already holds a page.
func (m ObligationsModel) Spin() tea.Cmd {
	return m.spinner.Tick
}

// fetchCmd loads the given page. The page value is clamped by the caller
// before this point; the store passes it through untouched.
func (m ObligationsModel) fetchCmd(page int, filter string) tea.Cmd {
	st, size := m.st, m.pageSize
	return func() tea.Msg {
		return pageLoadedMsg{err: st.FetchPage(context.Background(), page, size, filter)}
	}
}

func (m ObligationsModel) deleteCmd(id string) tea.Cmd {
	st := m.st
	return func() tea.Msg {
		if err := st.Remove(context.Background(), id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{note: "obligation deleted"}
	}
}

func (m ObligationsModel) createIssueCmd(id string) tea.Cmd {
	st := m.st
	return func() tea.Msg {
		if err := st.CreateIssue(context.Background(), id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{note: "issue created"}
	}
}

func (m ObligationsModel) bulkCreateCmd(ids []string) tea.Cmd {
	st := m.st
	return func() tea.Msg {
		return bulkDoneMsg{err: st.CreateIssuesBulk(context.Background(), ids)}
	}
}

// Update implements tea.Model.
func (m ObligationsModel) Update(msg tea.Msg) (ObligationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		m.busy = false
		m.clampCursor()
		return m, nil

	case mutationDoneMsg:
		m.busy = false
		m.confirmDelete = false
		m.note = msg.note
		m.clampCursor()
		return m, nil

	case bulkDoneMsg:
		m.busy = false
		if msg.err == nil {
			// Only a fully successful bulk action clears the selection;
			// partial failures keep it so the user can retry.
			m.sel.Clear()
			m.note = "issues created"
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

// updateFiltering handles keys while the filter input is focused.
func (m ObligationsModel) updateFiltering(msg tea.KeyMsg) (ObligationsModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		m.busy = true
		m.sel.Clear()
		return m, m.fetchCmd(1, m.filterInput.Value())
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue(m.st.PartyFilter())
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// updateBrowsing handles keys in normal browsing mode.
func (m ObligationsModel) updateBrowsing(msg tea.KeyMsg) (ObligationsModel, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y":
			if o, ok := m.current(); ok {
				m.busy = true
				m.note = ""
				return m, m.deleteCmd(o.ID)
			}
			m.confirmDelete = false
			return m, nil
		default:
			m.confirmDelete = false
			return m, nil
		}
	}

	if m.busy {
		// A store operation is in flight; only allow quitting.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	obligations := m.st.Obligations()
	page := m.st.Page()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "h":
		// Navigation boundary: drop the selection and the cached state.
		m.sel.Clear()
		m.st.Reset()
		return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(obligations)-1 {
			m.cursor++
		}
	case "left", "p":
		// Clamp before calling: the store forwards pages verbatim.
		if page.Page > 1 {
			m.busy = true
			m.cursor = 0
			return m, m.fetchCmd(page.Page-1, m.st.PartyFilter())
		}
	case "right", "n":
		if page.Page < page.TotalPages {
			m.busy = true
			m.cursor = 0
			return m, m.fetchCmd(page.Page+1, m.st.PartyFilter())
		}
	case "r":
		m.busy = true
		m.note = ""
		reload := page.Page
		if reload < 1 {
			reload = 1
		}
		return m, m.fetchCmd(reload, m.st.PartyFilter())
	case "f":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case " ":
		if o, ok := m.current(); ok {
			m.sel.Toggle(o.ID)
		}
	case "a":
		ids := make([]string, len(obligations))
		for i, o := range obligations {
			ids[i] = o.ID
		}
		m.sel.ToggleAll(ids)
	case "enter":
		if o, ok := m.current(); ok {
			id := o.ID
			return m, func() tea.Msg { return msgs.GoToEditMsg{ID: id} }
		}
	case "d":
		if _, ok := m.current(); ok {
			m.confirmDelete = true
		}
	case "c":
		if o, ok := m.current(); ok {
			if o.Locked() {
				m.note = "issue already exists: " + o.JiraIssueID
				return m, nil
			}
			m.busy = true
			m.note = ""
			return m, m.createIssueCmd(o.ID)
		}
	case "C":
		if m.sel.Count() == 0 {
			return m, nil
		}
		m.busy = true
		m.note = ""
		return m, m.bulkCreateCmd(m.sel.IDs())
	}

	return m, nil
}

// current returns the obligation under the cursor.
func (m ObligationsModel) current() (api.Obligation, bool) {
	obligations := m.st.Obligations()
	if m.cursor < 0 || m.cursor >= len(obligations) {
		return api.Obligation{}, false
	}
	return obligations[m.cursor], true
}

// clampCursor keeps the cursor inside the (possibly shrunk) list.
func (m *ObligationsModel) clampCursor() {
	n := len(m.st.Obligations())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m ObligationsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Obligations"))
	b.WriteString("\n")

	if banner := components.ErrorBanner(m.width, m.st.Err()); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if m.filtering {
		b.WriteString("Filter by party: " + m.filterInput.View())
		b.WriteString("\n\n")
	} else if f := m.st.PartyFilter(); f != "" {
		b.WriteString(styles.SubtleStyle.Render("filter: " + f))
		b.WriteString("\n\n")
	}

	if m.busy {
		b.WriteString(m.spinner.View() + " working…\n\n")
	}

	obligations := m.st.Obligations()
	if len(obligations) == 0 && !m.busy {
		b.WriteString(styles.SubtleStyle.Render("No obligations loaded. Upload a document to extract some."))
		b.WriteString("\n")
	}

	for i, o := range obligations {
		b.WriteString(m.renderRow(i, o))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.confirmDelete {
		if o, ok := m.current(); ok {
			b.WriteString("\n")
			b.WriteString(styles.ErrorStyle.Render(
				fmt.Sprintf("Delete obligation %s? (y/N)", shortID(o.ID))))
		}
	}
	if m.note != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessStyle.Render(m.note))
	}

	bar := components.NewStatusBar().Render(m.width, []string{
		"space select", "a all", "C create issues", "c issue", "enter edit",
		"d delete", "f filter", "←/→ page", "esc back",
	})

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), bar)
}

func (m ObligationsModel) renderRow(i int, o api.Obligation) string {
	marker := "  "
	if i == m.cursor {
		marker = "› "
	}

	check := "[ ]"
	if m.sel.Has(o.ID) {
		check = "[x]"
	}

	lock := ""
	if o.Locked() {
		lock = " " + styles.LockedStyle.Render("⚑ "+o.JiraIssueID)
	}

	text := truncate(o.ObligationText, 60)
	row := fmt.Sprintf("%s%s %-12s %-8s %s%s",
		marker, check, truncate(o.PartyName, 12), o.Priority, text, lock)

	if i == m.cursor {
		return styles.SelectedStyle.Render(row)
	}
	return row
}

func (m ObligationsModel) renderFooter() string {
	p := m.st.Page()
	if p.TotalPages == 0 {
		return styles.SubtleStyle.Render("no results")
	}
	footer := fmt.Sprintf("page %d/%d • %d obligations", p.Page, p.TotalPages, p.Total)
	if n := m.sel.Count(); n > 0 {
		footer += fmt.Sprintf(" • %d selected", n)
	}
	return styles.SubtleStyle.Render(footer)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Cursor returns the cursor position, for tests.
func (m ObligationsModel) Cursor() int {
	return m.cursor
}

// Selection returns the selection set, for tests and the root model.
func (m ObligationsModel) Selection() *store.Selection {
	return m.sel
}

// Filtering reports whether the filter input is focused, for tests.
func (m ObligationsModel) Filtering() bool {
	return m.filtering
}

// Busy reports whether a store operation is in flight, for tests.
func (m ObligationsModel) Busy() bool {
	return m.busy
}
