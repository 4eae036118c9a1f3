package views

import (
	"context"
	"strings"
	"testing"

	"github.com/nmoreno/obligo/internal/api"
)

func TestIssues_LoadAndRender(t *testing.T) {
	m := NewIssuesModel(func(context.Context) ([]api.Issue, error) {
		return []api.Issue{
			{ID: "i1", Key: "MOCK-1", Title: "Pay rent on time", Status: "To Do"},
			{ID: "i2", Key: "MOCK-2", Title: "Maintain premises", Status: "Done"},
		}, nil
	})
	m.SetSize(100, 30)

	msg := m.loadCmd()()
	m, _ = m.Update(msg)

	if len(m.Issues()) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(m.Issues()))
	}
	view := m.View()
	for _, want := range []string{"MOCK-1", "MOCK-2", "To Do"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestIssues_LoadFailureShowsDetail(t *testing.T) {
	m := NewIssuesModel(func(context.Context) ([]api.Issue, error) {
		return nil, &api.APIError{Status: 500, Detail: "Error retrieving issues"}
	})

	msg := m.loadCmd()()
	m, _ = m.Update(msg)

	if !strings.Contains(m.View(), "Error retrieving issues") {
		t.Error("backend detail should be rendered in the banner")
	}
}
