package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmoreno/obligo/internal/api"
	"github.com/nmoreno/obligo/internal/store"
	"github.com/nmoreno/obligo/internal/tui/components"
	"github.com/nmoreno/obligo/internal/tui/msgs"
	"github.com/nmoreno/obligo/internal/tui/styles"
)

// Form field indices, in focus order.
const (
	fieldText = iota
	fieldParty
	fieldDeadline
	fieldSection
	fieldPriority
	fieldCount
)

// obligationLoadedMsg reports the initial single-item fetch.
type obligationLoadedMsg struct {
	err error
}

// saveDoneMsg reports the outcome of a save.
type saveDoneMsg struct {
	err error
}

// EditModel is the edit form for one obligation. When the obligation has a
// linked issue the text field is rendered read-only; the backend enforces
// the rule, the form just mirrors it.
type EditModel struct {
	st *store.Store
	id string

	orig   api.Obligation // snapshot at load, for building the partial update
	loaded bool
	locked bool

	text        textarea.Model
	party       textinput.Model
	deadline    textinput.Model
	section     textinput.Model
	priorityIdx int
	focus       int

	saving  bool
	spinner spinner.Model

	width  int
	height int
}

// NewEditModel creates the edit view for the given obligation id.
func NewEditModel(st *store.Store, id string) EditModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	ta := textarea.New()
	ta.SetHeight(4)
	ta.CharLimit = 2000

	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		ti.Width = 40
		return ti
	}

	return EditModel{
		st:       st,
		id:       id,
		text:     ta,
		party:    newInput("responsible party"),
		deadline: newInput(`deadline, e.g. "30 days" or a date`),
		section:  newInput("source section"),
		spinner:  s,
	}
}

// SetSize updates the view dimensions.
func (m *EditModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model.
func (m EditModel) Init() tea.Cmd {
	st, id := m.st, m.id
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return obligationLoadedMsg{err: st.FetchOne(context.Background(), id)}
	})
}

// populate fills the form from the store's selected-item cache.
func (m *EditModel) populate() {
	sel := m.st.Selected()
	if sel == nil {
		return
	}
	m.orig = *sel
	m.loaded = true
	m.locked = sel.Locked()

	m.text.SetValue(sel.ObligationText)
	m.party.SetValue(sel.PartyName)
	m.deadline.SetValue(sel.Deadline)
	m.section.SetValue(sel.Section)

	m.priorityIdx = 0
	for i, p := range api.Priorities() {
		if p == sel.Priority {
			m.priorityIdx = i
			break
		}
	}

	// Locked text is skipped in the focus cycle.
	if m.locked {
		m.focus = fieldParty
	} else {
		m.focus = fieldText
	}
	m.applyFocus()
}

// applyFocus focuses the active field and blurs the rest.
func (m *EditModel) applyFocus() {
	m.text.Blur()
	m.party.Blur()
	m.deadline.Blur()
	m.section.Blur()

	switch m.focus {
	case fieldText:
		m.text.Focus()
	case fieldParty:
		m.party.Focus()
	case fieldDeadline:
		m.deadline.Focus()
	case fieldSection:
		m.section.Focus()
	}
}

// nextField advances focus, skipping the text field when locked.
func (m *EditModel) nextField(delta int) {
	for {
		m.focus = (m.focus + delta + fieldCount) % fieldCount
		if m.focus == fieldText && m.locked {
			continue
		}
		break
	}
	m.applyFocus()
}

// buildUpdate collects the fields that differ from the loaded snapshot.
// Unchanged fields stay out of the request body; in particular a locked
// obligation's text is never sent as long as the form kept it read-only.
func (m EditModel) buildUpdate() (api.ObligationUpdate, bool) {
	var upd api.ObligationUpdate
	changed := false

	if v := m.text.Value(); v != m.orig.ObligationText {
		upd.ObligationText = &v
		changed = true
	}
	if v := m.party.Value(); v != m.orig.PartyName {
		upd.PartyName = &v
		changed = true
	}
	if v := m.deadline.Value(); v != m.orig.Deadline {
		upd.Deadline = &v
		changed = true
	}
	if v := m.section.Value(); v != m.orig.Section {
		upd.Section = &v
		changed = true
	}
	if v := api.Priorities()[m.priorityIdx]; v != m.orig.Priority {
		upd.Priority = &v
		changed = true
	}

	return upd, changed
}

// Update implements tea.Model.
func (m EditModel) Update(msg tea.Msg) (EditModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case obligationLoadedMsg:
		if msg.err == nil {
			m.populate()
		}
		return m, nil

	case saveDoneMsg:
		m.saving = false
		if msg.err != nil {
			// Keep everything the user typed; the store's error message is
			// rendered inline above the form.
			return m, nil
		}
		id := m.id
		return m, func() tea.Msg { return msgs.ObligationSavedMsg{ID: id} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m EditModel) handleKey(msg tea.KeyMsg) (EditModel, tea.Cmd) {
	if m.saving {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m, func() tea.Msg { return msgs.GoToObligationsMsg{} }
	case "tab", "shift+tab":
		if !m.loaded {
			return m, nil
		}
		if msg.String() == "tab" {
			m.nextField(1)
		} else {
			m.nextField(-1)
		}
		return m, nil
	case "ctrl+s":
		if !m.loaded {
			return m, nil
		}
		upd, changed := m.buildUpdate()
		if !changed {
			return m, func() tea.Msg { return msgs.GoToObligationsMsg{} }
		}
		m.saving = true
		st, id := m.st, m.id
		return m, func() tea.Msg {
			return saveDoneMsg{err: st.Update(context.Background(), id, upd)}
		}
	}

	if m.focus == fieldPriority {
		switch msg.String() {
		case "left", "h":
			if m.priorityIdx > 0 {
				m.priorityIdx--
			}
			return m, nil
		case "right", "l", " ":
			if m.priorityIdx < len(api.Priorities())-1 {
				m.priorityIdx++
			}
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldText:
		m.text, cmd = m.text.Update(msg)
	case fieldParty:
		m.party, cmd = m.party.Update(msg)
	case fieldDeadline:
		m.deadline, cmd = m.deadline.Update(msg)
	case fieldSection:
		m.section, cmd = m.section.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m EditModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Edit obligation"))
	b.WriteString("\n")

	if banner := components.ErrorBanner(m.width, m.st.Err()); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if !m.loaded {
		b.WriteString(m.spinner.View() + " loading…\n")
		return b.String()
	}

	label := func(field int, name string) string {
		if field == m.focus {
			return styles.SelectedStyle.Render("› " + name)
		}
		return "  " + name
	}

	b.WriteString(label(fieldText, "Obligation text"))
	if m.locked {
		b.WriteString(styles.LockedStyle.Render("  (locked — issue " + m.orig.JiraIssueID + " exists)"))
		b.WriteString("\n")
		b.WriteString(styles.LockedStyle.Render("  " + m.orig.ObligationText))
	} else {
		b.WriteString("\n")
		b.WriteString(m.text.View())
	}
	b.WriteString("\n\n")

	b.WriteString(label(fieldParty, "Party") + "     " + m.party.View() + "\n")
	b.WriteString(label(fieldDeadline, "Deadline") + "  " + m.deadline.View() + "\n")
	b.WriteString(label(fieldSection, "Section") + "   " + m.section.View() + "\n")
	b.WriteString(label(fieldPriority, "Priority") + "  " + m.renderPriority() + "\n")

	if m.saving {
		b.WriteString("\n" + m.spinner.View() + " saving…\n")
	}

	bar := components.NewStatusBar().Render(m.width, []string{
		"tab next field", "ctrl+s save", "esc cancel",
	})

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), bar)
}

func (m EditModel) renderPriority() string {
	parts := make([]string, 0, len(api.Priorities()))
	for i, p := range api.Priorities() {
		if i == m.priorityIdx {
			parts = append(parts, styles.SelectedStyle.Render("["+p+"]"))
		} else {
			parts = append(parts, styles.SubtleStyle.Render(p))
		}
	}
	return strings.Join(parts, " ")
}

// Locked reports whether the text field is read-only, for tests.
func (m EditModel) Locked() bool {
	return m.locked
}

// Focus returns the focused field index, for tests.
func (m EditModel) Focus() int {
	return m.focus
}

// TextValue returns the current text field contents, for tests.
func (m EditModel) TextValue() string {
	if m.locked {
		return m.orig.ObligationText
	}
	return m.text.Value()
}

// PartyValue returns the current party field contents, for tests.
func (m EditModel) PartyValue() string {
	return m.party.Value()
}
