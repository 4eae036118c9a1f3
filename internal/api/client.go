// Package api is a typed client for the obligation extraction backend.
// It translates each backend operation into one method and returns the
// decoded body, or an *APIError when the backend answers with a failure
// status. No retries, no caching; callers own all state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultTimeout is the transport-level request timeout.
const DefaultTimeout = 60 * time.Second

// Client talks to one backend instance at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the given base URL, e.g. "http://localhost:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// errorBody is FastAPI's standard failure envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// do sends one JSON request and decodes the response into out (skipped when
// out is nil). A non-2xx status becomes an *APIError with the backend's
// detail message when the body carried one.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send executes an already-built request and handles status and decoding.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// pageQuery encodes the shared page/page_size parameters.
func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	return q
}

// contentTypeForFile maps a filename to the upload content types the backend
// accepts. Unknown extensions are sent as PDF and left for the backend to
// reject.
func contentTypeForFile(name string) string {
	switch filepath.Ext(name) {
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/pdf"
	}
}

// UploadDocument posts a document for extraction and returns the first page
// of extracted obligations. The file is sent as a multipart form with a
// single "file" field.
func (c *Client) UploadDocument(ctx context.Context, filename string, file io.Reader, page, pageSize int) (*UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	hdr.Set("Content-Type", contentTypeForFile(filename))
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file contents: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	u := c.baseURL + "/upload-document?" + pageQuery(page, pageSize).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out UploadResponse
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListObligations fetches one page of obligations. partyName filters by
// responsible party and is omitted from the query when empty.
func (c *Client) ListObligations(ctx context.Context, page, pageSize int, partyName string) (*ListResponse, error) {
	q := pageQuery(page, pageSize)
	if partyName != "" {
		q.Set("party_name", partyName)
	}
	var out ListResponse
	if err := c.do(ctx, http.MethodGet, "/obligations?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetObligation fetches a single obligation by id.
func (c *Client) GetObligation(ctx context.Context, id string) (*Obligation, error) {
	var out Obligation
	if err := c.do(ctx, http.MethodGet, "/obligations/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateObligation applies a partial update and returns the updated record.
// The backend rejects text changes on locked obligations with status 400.
func (c *Client) UpdateObligation(ctx context.Context, id string, update ObligationUpdate) (*Obligation, error) {
	var out Obligation
	if err := c.do(ctx, http.MethodPut, "/obligations/"+url.PathEscape(id), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteObligation removes an obligation. Deleting an unknown id fails with
// a 404; the operation is not idempotent.
func (c *Client) DeleteObligation(ctx context.Context, id string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/obligations/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateIssue creates a tracker issue for one obligation.
func (c *Client) CreateIssue(ctx context.Context, id string) (*CreateIssueResponse, error) {
	var out CreateIssueResponse
	if err := c.do(ctx, http.MethodPost, "/obligations/"+url.PathEscape(id)+"/create-issue", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateIssues creates tracker issues for several obligations in one call.
// Individual ids may fail while others succeed; the response reports each
// outcome separately.
func (c *Client) CreateIssues(ctx context.Context, ids []string) (*BulkCreateResponse, error) {
	var out BulkCreateResponse
	if err := c.do(ctx, http.MethodPost, "/obligations/create-issues", ids, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListIssues fetches all issues from the tracker.
func (c *Client) ListIssues(ctx context.Context) ([]Issue, error) {
	var out issuesResponse
	if err := c.do(ctx, http.MethodGet, "/issues", nil, &out); err != nil {
		return nil, err
	}
	return out.Issues, nil
}

// GetIssue fetches one issue by id.
func (c *Client) GetIssue(ctx context.Context, id string) (*Issue, error) {
	var out Issue
	if err := c.do(ctx, http.MethodGet, "/issues/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
