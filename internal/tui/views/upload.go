package views

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmoreno/obligo/internal/store"
	"github.com/nmoreno/obligo/internal/tui/components"
	"github.com/nmoreno/obligo/internal/tui/msgs"
	"github.com/nmoreno/obligo/internal/tui/styles"
)

// uploadDoneMsg reports a finished upload-and-extract call.
type uploadDoneMsg struct {
	filename string
	err      error
}

// uploadState tracks which phase the upload view is in.
type uploadState int

const (
	statePicking uploadState = iota
	stateUploading
)

// UploadFunc uploads one document through the store. Replaced in tests.
type UploadFunc func(ctx context.Context, st *store.Store, path string, pageSize int) error

// defaultUpload opens the file and hands it to the store.
func defaultUpload(ctx context.Context, st *store.Store, path string, pageSize int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()
	return st.UploadAndExtract(ctx, filepath.Base(path), f, pageSize)
}

var uploadDocument UploadFunc = defaultUpload

// UploadModel is the document upload view: a file picker limited to PDF and
// DOCX, then a spinner while the backend extracts obligations.
type UploadModel struct {
	st       *store.Store
	pageSize int

	state    uploadState
	picker   filepicker.Model
	spinner  spinner.Model
	filename string
	localErr string

	width  int
	height int
}

// NewUploadModel creates the upload view starting in the given directory.
func NewUploadModel(st *store.Store, startDir string, pageSize int) UploadModel {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.AllowedTypes = []string{".pdf", ".docx"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	if pageSize <= 0 {
		pageSize = store.DefaultPageSize
	}

	return UploadModel{
		st:       st,
		pageSize: pageSize,
		picker:   fp,
		spinner:  s,
	}
}

// SetSize updates the view dimensions.
func (m *UploadModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.picker.Height = height - 5
}

// Init implements tea.Model.
func (m UploadModel) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), m.spinner.Tick)
}

// startUpload kicks off the extraction call in the background. Extraction
// runs inline on the backend, so this can take a while on large documents.
func (m UploadModel) startUpload(path string) tea.Cmd {
	st, size := m.st, m.pageSize
	name := filepath.Base(path)
	return func() tea.Msg {
		err := uploadDocument(context.Background(), st, path, size)
		return uploadDoneMsg{filename: name, err: err}
	}
}

// Update implements tea.Model.
func (m UploadModel) Update(msg tea.Msg) (UploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.Height = msg.Height - 5
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case uploadDoneMsg:
		if msg.err != nil {
			// Store recorded the normalized message; go back to picking so
			// the user can retry with another file.
			m.state = statePicking
			return m, nil
		}
		// The store now holds the first page of extraction results.
		return m, func() tea.Msg { return msgs.GoToObligationsMsg{} }

	case tea.KeyMsg:
		if m.state == stateUploading {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		}
	}

	if m.state != statePicking {
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		abs, err := filepath.Abs(path)
		if err != nil {
			m.localErr = err.Error()
			return m, cmd
		}
		m.state = stateUploading
		m.filename = filepath.Base(abs)
		m.localErr = ""
		return m, tea.Batch(cmd, m.startUpload(abs))
	}

	if didSelect, _ := m.picker.DidSelectDisabledFile(msg); didSelect {
		m.localErr = "only PDF and DOCX documents are supported"
	}

	return m, cmd
}

// View implements tea.Model.
func (m UploadModel) View() string {
	var b string

	b += styles.TitleStyle.Render("Upload document") + "\n"

	if banner := components.ErrorBanner(m.width, m.st.Err()); banner != "" {
		b += banner + "\n"
	}
	if m.localErr != "" {
		b += styles.ErrorStyle.Render(m.localErr) + "\n"
	}

	if m.state == stateUploading {
		b += "\n" + m.spinner.View() + " extracting obligations from " + m.filename + "…\n"
		b += styles.SubtleStyle.Render("this can take a while on large documents") + "\n"
	} else {
		b += "\n" + m.picker.View() + "\n"
	}

	bar := components.NewStatusBar().Render(m.width, []string{
		"enter select", "esc back",
	})

	return lipgloss.JoinVertical(lipgloss.Left, b, bar)
}

// Uploading reports whether an upload is in flight, for tests.
func (m UploadModel) Uploading() bool {
	return m.state == stateUploading
}
