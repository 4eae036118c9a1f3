package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmoreno/obligo/internal/tui/msgs"
)

func TestHome_ShortcutsTransition(t *testing.T) {
	tests := []struct {
		key  string
		want any
	}{
		{"u", msgs.GoToUploadMsg{}},
		{"b", msgs.GoToObligationsMsg{Refresh: true}},
		{"i", msgs.GoToIssuesMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := NewHomeModel()
			_, cmd := m.Update(key(tt.key))
			if cmd == nil {
				t.Fatalf("key %q produced no command", tt.key)
			}
			if got := cmd(); got != tt.want {
				t.Errorf("key %q: got %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
}

func TestHome_CursorNavigationAndEnter(t *testing.T) {
	m := NewHomeModel()

	if m.Cursor() != 0 {
		t.Fatalf("expected cursor at 0, got %d", m.Cursor())
	}

	// First item is upload; enter selects it.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	if _, ok := cmd().(msgs.GoToUploadMsg); !ok {
		t.Errorf("expected GoToUploadMsg, got %T", cmd())
	}

	// Cursor stops at the last item.
	for i := 0; i < 10; i++ {
		m, _ = m.Update(key("j"))
	}
	if m.Cursor() != m.totalMenuItems()-1 {
		t.Errorf("cursor out of range: %d", m.Cursor())
	}
}

func TestHome_QuitKeys(t *testing.T) {
	m := NewHomeModel()
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if cmd() != (tea.QuitMsg{}) {
		t.Errorf("expected quit, got %#v", cmd())
	}
}
