package api

// Obligation is one extracted legal duty as the backend returns it.
//
// Timestamps are kept as strings: the backend emits naive ISO-8601 values
// without a timezone, which time.Time refuses to parse. The client only
// displays them.
type Obligation struct {
	ID             string `json:"id"`
	ObligationText string `json:"obligation_text"`
	Section        string `json:"section,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
	PartyName      string `json:"party_name"`
	Priority       string `json:"priority"`
	SourceDocument string `json:"source_document,omitempty"`
	SourcePage     *int   `json:"source_page,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
	JiraIssueID    string `json:"jira_issue_id,omitempty"`
}

// Locked reports whether the obligation text can no longer be edited.
// The backend enforces this once an issue has been created; the client
// only mirrors it in the UI.
func (o Obligation) Locked() bool {
	return o.JiraIssueID != ""
}

// Priority values accepted by the backend.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// Priorities lists the valid priority values in rank order.
func Priorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// ObligationUpdate is a partial update. Nil fields are omitted from the
// request body and left unchanged by the backend.
type ObligationUpdate struct {
	ObligationText *string `json:"obligation_text,omitempty"`
	Section        *string `json:"section,omitempty"`
	Deadline       *string `json:"deadline,omitempty"`
	PartyName      *string `json:"party_name,omitempty"`
	Priority       *string `json:"priority,omitempty"`
}

// ListResponse is the body of GET /obligations.
type ListResponse struct {
	Obligations []Obligation `json:"obligations"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
	TotalPages  int          `json:"total_pages"`
}

// UploadResponse is the body of POST /upload-document. Its pagination field
// names differ from ListResponse; the store normalizes both shapes.
type UploadResponse struct {
	Filename         string       `json:"filename"`
	TotalChunks      int          `json:"total_chunks"`
	TotalObligations int          `json:"total_obligations"`
	CurrentPage      int          `json:"current_page"`
	TotalPages       int          `json:"total_pages"`
	PageSize         int          `json:"page_size"`
	Obligations      []Obligation `json:"obligations"`
}

// DeleteResponse is the body of DELETE /obligations/{id}.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateIssueResponse is the body of POST /obligations/{id}/create-issue.
// When an issue already exists the backend responds 200 with issue_id set
// and success absent, so IssueID presence is the signal that matters.
type CreateIssueResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	IssueID string `json:"issue_id"`
	Error   string `json:"error,omitempty"`
}

// BulkIssueResult is one per-obligation outcome inside a bulk create.
type BulkIssueResult struct {
	ObligationID string `json:"obligation_id"`
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	IssueID      string `json:"issue_id,omitempty"`
	Error        string `json:"error,omitempty"`
}

// BulkCreateResponse is the body of POST /obligations/create-issues.
type BulkCreateResponse struct {
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Results      []BulkIssueResult `json:"results"`
}

// Issue is a tracker issue as returned by the read-only issue endpoints.
type Issue struct {
	ID                string   `json:"id"`
	Key               string   `json:"key"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Priority          string   `json:"priority"`
	Labels            []string `json:"labels"`
	Status            string   `json:"status"`
	URL               string   `json:"url"`
	CreatedAt         string   `json:"created_at,omitempty"`
	UpdatedAt         string   `json:"updated_at,omitempty"`
	DescriptionLocked bool     `json:"description_locked"`
}

// issuesResponse is the body of GET /issues.
type issuesResponse struct {
	Issues []Issue `json:"issues"`
}
