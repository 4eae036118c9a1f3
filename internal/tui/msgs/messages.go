// Package msgs defines shared message types for TUI view transitions.
package msgs

// View transition messages

// GoToHomeMsg signals transition to the home view.
type GoToHomeMsg struct{}

// GoToUploadMsg signals transition to the document upload view.
type GoToUploadMsg struct{}

// GoToObligationsMsg signals transition to the obligation list view.
// Refresh forces a fetch even when the store already holds a page, e.g.
// right after an upload replaced the list.
type GoToObligationsMsg struct {
	Refresh bool
}

// GoToEditMsg signals transition to the edit view for one obligation.
type GoToEditMsg struct {
	ID string
}

// GoToIssuesMsg signals transition to the tracker issue list view.
type GoToIssuesMsg struct{}

// ObligationSavedMsg is sent when an edit was accepted by the backend.
type ObligationSavedMsg struct {
	ID string
}
