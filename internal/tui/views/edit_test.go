package views

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmoreno/obligo/internal/api"
	"github.com/nmoreno/obligo/internal/store"
	"github.com/nmoreno/obligo/internal/tui/msgs"
)

// editGateway serves one obligation and records updates.
type editGateway struct {
	obligation api.Obligation
	updateErr  error
	gotUpdate  *api.ObligationUpdate
}

func (g *editGateway) UploadDocument(context.Context, string, io.Reader, int, int) (*api.UploadResponse, error) {
	return nil, nil
}

func (g *editGateway) ListObligations(context.Context, int, int, string) (*api.ListResponse, error) {
	return &api.ListResponse{Page: 1, PageSize: 10, TotalPages: 1}, nil
}

func (g *editGateway) GetObligation(context.Context, string) (*api.Obligation, error) {
	o := g.obligation
	return &o, nil
}

func (g *editGateway) UpdateObligation(_ context.Context, _ string, upd api.ObligationUpdate) (*api.Obligation, error) {
	g.gotUpdate = &upd
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	o := g.obligation
	if upd.PartyName != nil {
		o.PartyName = *upd.PartyName
	}
	if upd.ObligationText != nil {
		o.ObligationText = *upd.ObligationText
	}
	return &o, nil
}

func (g *editGateway) DeleteObligation(context.Context, string) (*api.DeleteResponse, error) {
	return &api.DeleteResponse{Success: true}, nil
}

func (g *editGateway) CreateIssue(context.Context, string) (*api.CreateIssueResponse, error) {
	return &api.CreateIssueResponse{}, nil
}

func (g *editGateway) CreateIssues(context.Context, []string) (*api.BulkCreateResponse, error) {
	return &api.BulkCreateResponse{}, nil
}

// loadedEditModel builds an EditModel with the obligation already fetched.
func loadedEditModel(t *testing.T, gw *editGateway) (EditModel, *store.Store) {
	t.Helper()
	st := store.New(gw)
	m := NewEditModel(st, gw.obligation.ID)
	m.SetSize(100, 30)

	if err := st.FetchOne(context.Background(), gw.obligation.ID); err != nil {
		t.Fatalf("fetch one failed: %v", err)
	}
	m, _ = m.Update(obligationLoadedMsg{})
	return m, st
}

func TestEdit_PopulatesFromStore(t *testing.T) {
	gw := &editGateway{obligation: api.Obligation{
		ID: "1", ObligationText: "pay rent", PartyName: "Tenant",
		Deadline: "30 days", Priority: api.PriorityHigh,
	}}
	m, _ := loadedEditModel(t, gw)

	if m.TextValue() != "pay rent" {
		t.Errorf("text not populated: %q", m.TextValue())
	}
	if m.PartyValue() != "Tenant" {
		t.Errorf("party not populated: %q", m.PartyValue())
	}
	if m.Locked() {
		t.Error("obligation without issue should not be locked")
	}
	if m.Focus() != fieldText {
		t.Errorf("initial focus should be the text field, got %d", m.Focus())
	}
}

func TestEdit_LockedSkipsTextField(t *testing.T) {
	gw := &editGateway{obligation: api.Obligation{
		ID: "1", ObligationText: "pay rent", JiraIssueID: "JIRA-42",
	}}
	m, _ := loadedEditModel(t, gw)

	if !m.Locked() {
		t.Fatal("obligation with issue id should be locked")
	}
	if m.Focus() == fieldText {
		t.Error("locked text field must not receive focus")
	}

	// Cycling through all fields never lands on the text field.
	for i := 0; i < fieldCount+1; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.Focus() == fieldText {
			t.Fatal("tab cycle focused the locked text field")
		}
	}
}

func TestEdit_SaveSendsOnlyChangedFields(t *testing.T) {
	gw := &editGateway{obligation: api.Obligation{
		ID: "1", ObligationText: "pay rent", PartyName: "Tenant", Priority: api.PriorityMedium,
	}}
	m, _ := loadedEditModel(t, gw)

	// Move to the party field and change it.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range " Inc" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected save command")
	}
	msg := cmd()
	m, cmd = m.Update(msg)

	if gw.gotUpdate == nil {
		t.Fatal("update never reached the gateway")
	}
	if gw.gotUpdate.PartyName == nil || *gw.gotUpdate.PartyName != "Tenant Inc" {
		t.Errorf("unexpected party in update: %+v", gw.gotUpdate)
	}
	if gw.gotUpdate.ObligationText != nil {
		t.Error("unchanged text must not be sent")
	}

	// A successful save transitions back via ObligationSavedMsg.
	if cmd == nil {
		t.Fatal("expected transition command after save")
	}
	if _, ok := cmd().(msgs.ObligationSavedMsg); !ok {
		t.Errorf("expected ObligationSavedMsg, got %T", cmd())
	}
}

func TestEdit_FailedSaveKeepsFormValues(t *testing.T) {
	gw := &editGateway{
		obligation: api.Obligation{ID: "1", ObligationText: "pay rent", PartyName: "Tenant"},
		updateErr: &api.APIError{
			Status: 400,
			Detail: "Cannot modify obligation text after a Jira issue has been created",
		},
	}
	m, st := loadedEditModel(t, gw)

	for _, r := range " now" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	msg := cmd()
	m, cmd = m.Update(msg)

	if cmd != nil {
		t.Error("failed save must not navigate away")
	}
	if !strings.HasSuffix(m.TextValue(), " now") {
		t.Errorf("typed text lost after failed save: %q", m.TextValue())
	}
	if !strings.Contains(st.Err(), "Cannot modify obligation text") {
		t.Errorf("store should surface the rejection, got %q", st.Err())
	}
	if sel := st.Selected(); sel == nil || sel.ObligationText != "pay rent" {
		t.Errorf("rejected change must not be applied to the cache: %+v", sel)
	}
}

func TestEdit_NoChangesJustGoesBack(t *testing.T) {
	gw := &editGateway{obligation: api.Obligation{ID: "1", ObligationText: "pay rent", Priority: api.PriorityLow}}
	m, _ := loadedEditModel(t, gw)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	if _, ok := cmd().(msgs.GoToObligationsMsg); !ok {
		t.Errorf("expected GoToObligationsMsg, got %T", cmd())
	}
	if gw.gotUpdate != nil {
		t.Error("save without changes must not call the gateway")
	}
}
