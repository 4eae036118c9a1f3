// Package tui is the interactive terminal frontend. The root model owns the
// one Store instance for the whole session and hands it to each view; views
// keep no caches of their own.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmoreno/obligo/internal/api"
	"github.com/nmoreno/obligo/internal/config"
	"github.com/nmoreno/obligo/internal/store"
	"github.com/nmoreno/obligo/internal/tui/msgs"
	"github.com/nmoreno/obligo/internal/tui/views"
)

// View represents the different screens in the TUI.
type View int

const (
	ViewHome View = iota
	ViewUpload
	ViewObligations
	ViewEdit
	ViewIssues
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	cfg    *config.Config
	client *api.Client
	st     *store.Store

	home        views.HomeModel
	upload      views.UploadModel
	obligations views.ObligationsModel
	edit        views.EditModel
	issues      views.IssuesModel
}

// Run starts the TUI application.
func Run(cfg *config.Config) error {
	if os.Getenv("OBLIGO_DEBUG") != "" {
		f, err := tea.LogToFile("obligo-debug.log", "debug")
		if err == nil {
			defer func() { _ = f.Close() }()
		}
	}

	p := tea.NewProgram(
		newModel(cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func newModel(cfg *config.Config) Model {
	client := api.New(cfg.ServerURL, api.WithTimeout(cfg.Timeout()))
	st := store.New(client)

	m := Model{
		currentView: ViewHome,
		cfg:         cfg,
		client:      client,
		st:          st,
	}
	m.home = views.NewHomeModel()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.home.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home.SetSize(msg.Width, msg.Height)
		m.upload.SetSize(msg.Width, msg.Height)
		m.obligations.SetSize(msg.Width, msg.Height)
		m.edit.SetSize(msg.Width, msg.Height)
		m.issues.SetSize(msg.Width, msg.Height)

	case msgs.GoToHomeMsg:
		m.currentView = ViewHome
		m.home = views.NewHomeModel()
		m.home.SetSize(m.width, m.height)
		return m, m.home.Init()

	case msgs.GoToUploadMsg:
		m.currentView = ViewUpload
		startDir, err := os.Getwd()
		if err != nil {
			startDir = "."
		}
		m.upload = views.NewUploadModel(m.st, startDir, m.cfg.PageSize)
		m.upload.SetSize(m.width, m.height)
		return m, m.upload.Init()

	case msgs.GoToObligationsMsg:
		m.currentView = ViewObligations
		m.obligations = views.NewObligationsModel(m.st, m.cfg.PageSize)
		m.obligations.SetSize(m.width, m.height)
		if msg.Refresh || m.st.Page() == (store.Page{}) {
			return m, m.obligations.Init()
		}
		// The store already holds a page (e.g. fresh upload results);
		// render it without another round trip.
		return m, m.obligations.Spin()

	case msgs.GoToEditMsg:
		m.currentView = ViewEdit
		m.edit = views.NewEditModel(m.st, msg.ID)
		m.edit.SetSize(m.width, m.height)
		return m, m.edit.Init()

	case msgs.ObligationSavedMsg:
		// Back to the list; the store caches were reconciled by the save.
		return m.Update(msgs.GoToObligationsMsg{})

	case msgs.GoToIssuesMsg:
		m.currentView = ViewIssues
		m.issues = views.NewIssuesModel(m.client.ListIssues)
		m.issues.SetSize(m.width, m.height)
		return m, m.issues.Init()
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewHome:
		m.home, cmd = m.home.Update(msg)
	case ViewUpload:
		m.upload, cmd = m.upload.Update(msg)
	case ViewObligations:
		m.obligations, cmd = m.obligations.Update(msg)
	case ViewEdit:
		m.edit, cmd = m.edit.Update(msg)
	case ViewIssues:
		m.issues, cmd = m.issues.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.currentView {
	case ViewUpload:
		return m.upload.View()
	case ViewObligations:
		return m.obligations.View()
	case ViewEdit:
		return m.edit.View()
	case ViewIssues:
		return m.issues.View()
	default:
		return m.home.View()
	}
}
