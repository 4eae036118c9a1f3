// Package store holds the client-side view of the obligation backend: the
// current page of obligations, the selected obligation, the pagination
// descriptor, and the loading/error flags. Its operations are the only way
// this state changes, and each one keeps the list cache and the selected-item
// cache consistent after the backend responds.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/nmoreno/obligo/internal/api"
)

// DefaultPageSize is used when no page size has been established yet.
const DefaultPageSize = 10

// ErrBulkInFlight is returned when a bulk issue creation is requested while
// another one is still running. Launching two concurrently could create
// duplicate issues server-side, so this is the one operation with an
// explicit overlap guard.
var ErrBulkInFlight = errors.New("bulk issue creation already in progress")

// BulkPartialError reports a bulk creation where some ids failed.
type BulkPartialError struct {
	Failed int
	Total  int
}

func (e *BulkPartialError) Error() string {
	return fmt.Sprintf("%d of %d issues could not be created", e.Failed, e.Total)
}

// Gateway is the slice of the API client the store depends on. Tests supply
// a fake; production wires *api.Client.
type Gateway interface {
	UploadDocument(ctx context.Context, filename string, file io.Reader, page, pageSize int) (*api.UploadResponse, error)
	ListObligations(ctx context.Context, page, pageSize int, partyName string) (*api.ListResponse, error)
	GetObligation(ctx context.Context, id string) (*api.Obligation, error)
	UpdateObligation(ctx context.Context, id string, update api.ObligationUpdate) (*api.Obligation, error)
	DeleteObligation(ctx context.Context, id string) (*api.DeleteResponse, error)
	CreateIssue(ctx context.Context, id string) (*api.CreateIssueResponse, error)
	CreateIssues(ctx context.Context, ids []string) (*api.BulkCreateResponse, error)
}

// Page describes the most recently fetched list query. Total is the full
// filtered count on the server, not the length of the current page.
type Page struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Store is the canonical in-memory state. One instance is created at
// application start and passed explicitly to every consumer; views own no
// cache of their own.
//
// Operations do not serialize against each other: if two are started close
// together, the loading flag, the error message, and the pagination
// descriptor reflect whichever response settled last. Only the bulk issue
// creation guards against overlap with itself.
type Store struct {
	mu sync.Mutex
	gw Gateway

	obligations []api.Obligation
	selected    *api.Obligation
	page        Page
	partyFilter string

	loading      bool
	errMsg       string
	bulkInFlight bool
}

// New creates a Store bound to the given gateway.
func New(gw Gateway) *Store {
	return &Store{gw: gw}
}

// begin marks an operation as started: loading on, previous error cleared.
// This happens strictly before the network call.
func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

// settle clears the loading flag and records a normalized error message.
// It runs deferred so loading is cleared no matter how the operation exits,
// and strictly after reconciliation since deferred calls run last.
//
// Message preference: backend detail, then a bulk partial summary, then the
// operation's fixed fallback.
func (s *Store) settle(errp *error, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if *errp == nil {
		return
	}
	msg := api.Detail(*errp)
	if msg == "" {
		var partial *BulkPartialError
		if errors.As(*errp, &partial) {
			msg = partial.Error()
		}
	}
	if msg == "" {
		msg = fallback
	}
	s.errMsg = msg
}

// pageFromList normalizes the list response pagination shape.
func pageFromList(resp *api.ListResponse) Page {
	return Page{
		Page:       resp.Page,
		PageSize:   resp.PageSize,
		Total:      resp.Total,
		TotalPages: resp.TotalPages,
	}
}

// pageFromUpload normalizes the upload response pagination shape, which uses
// current_page and total_obligations instead of page and total.
func pageFromUpload(resp *api.UploadResponse) Page {
	return Page{
		Page:       resp.CurrentPage,
		PageSize:   resp.PageSize,
		Total:      resp.TotalObligations,
		TotalPages: resp.TotalPages,
	}
}

// UploadAndExtract sends a document for extraction. On success the whole
// list cache and pagination descriptor are replaced with the first page of
// extraction results; any previously loaded (possibly filtered) list is
// discarded. On failure the prior list stays untouched.
func (s *Store) UploadAndExtract(ctx context.Context, filename string, file io.Reader, pageSize int) (err error) {
	s.begin()
	defer s.settle(&err, "failed to upload document")

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	resp, err := s.gw.UploadDocument(ctx, filename, file, 1, pageSize)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.obligations = resp.Obligations
	s.page = pageFromUpload(resp)
	s.partyFilter = ""
	s.mu.Unlock()
	return nil
}

// FetchPage loads one page of obligations, replacing the list cache and
// pagination descriptor wholesale. The store does not clamp page: callers
// must pass 1 <= page <= totalPages (or 1 when nothing is loaded yet), and
// anything else goes to the backend as-is.
func (s *Store) FetchPage(ctx context.Context, page, pageSize int, partyFilter string) (err error) {
	s.begin()
	defer s.settle(&err, "failed to load obligations")
	return s.refreshList(ctx, page, pageSize, partyFilter)
}

// refreshList performs the list call and reconciliation without touching
// the loading flag, so it can also serve as the resync step of a bulk
// operation that already owns the flag.
func (s *Store) refreshList(ctx context.Context, page, pageSize int, partyFilter string) error {
	resp, err := s.gw.ListObligations(ctx, page, pageSize, partyFilter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.obligations = resp.Obligations
	s.page = pageFromList(resp)
	s.partyFilter = partyFilter
	s.mu.Unlock()
	return nil
}

// FetchOne loads a single obligation into the selected-item cache. The list
// cache is not touched.
func (s *Store) FetchOne(ctx context.Context, id string) (err error) {
	s.begin()
	defer s.settle(&err, "failed to load obligation")

	resp, err := s.gw.GetObligation(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.selected = resp
	s.mu.Unlock()
	return nil
}

// Update applies a partial update. The returned record is written into the
// matching list-cache entry and into the selected-item cache when it holds
// the same id, so the two caches never disagree about an id present in both.
func (s *Store) Update(ctx context.Context, id string, update api.ObligationUpdate) (err error) {
	s.begin()
	defer s.settle(&err, "failed to update obligation")

	resp, err := s.gw.UpdateObligation(ctx, id, update)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.mergeLocked(*resp)
	s.mu.Unlock()
	return nil
}

// mergeLocked writes an updated record into both caches. Caller holds mu.
func (s *Store) mergeLocked(updated api.Obligation) {
	for i := range s.obligations {
		if s.obligations[i].ID == updated.ID {
			s.obligations[i] = updated
			break
		}
	}
	if s.selected != nil && s.selected.ID == updated.ID {
		clone := updated
		s.selected = &clone
	}
}

// Remove deletes an obligation and filters it out of the list cache,
// clearing the selected-item cache when it held the same id. The pagination
// totals are deliberately left stale until the next fetch; recomputing them
// client-side would disagree with the server's filtered count anyway.
func (s *Store) Remove(ctx context.Context, id string) (err error) {
	s.begin()
	defer s.settle(&err, "failed to delete obligation")

	if _, err = s.gw.DeleteObligation(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.obligations[:0]
	for _, o := range s.obligations {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	s.obligations = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()
	return nil
}

// CreateIssue links a tracker issue to one obligation. A response carrying
// an issue id is merged into both caches like an update; a response without
// one leaves the caches alone.
func (s *Store) CreateIssue(ctx context.Context, id string) (err error) {
	s.begin()
	defer s.settle(&err, "failed to create issue")

	resp, err := s.gw.CreateIssue(ctx, id)
	if err != nil {
		return err
	}
	if resp.IssueID == "" {
		return nil
	}

	s.mu.Lock()
	for i := range s.obligations {
		if s.obligations[i].ID == id {
			s.obligations[i].JiraIssueID = resp.IssueID
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		clone := *s.selected
		clone.JiraIssueID = resp.IssueID
		s.selected = &clone
	}
	s.mu.Unlock()
	return nil
}

// CreateIssuesBulk creates issues for every id in one backend call. An empty
// id set is a no-op with no network traffic. At most one bulk creation runs
// at a time; overlapping calls get ErrBulkInFlight without touching state.
//
// The bulk path does no targeted cache merging. After the backend answers,
// whether every id succeeded or only some, the current page is refetched
// once to resynchronize. A partial outcome is treated as a failure: the
// error message records how many ids failed and BulkPartialError is
// returned, but the refetch still happens first. Only a total failure
// (transport or server error) skips the refetch.
func (s *Store) CreateIssuesBulk(ctx context.Context, ids []string) (err error) {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	if s.bulkInFlight {
		s.mu.Unlock()
		return ErrBulkInFlight
	}
	s.bulkInFlight = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.bulkInFlight = false
		s.mu.Unlock()
	}()

	s.begin()
	defer s.settle(&err, "failed to create issues")

	resp, err := s.gw.CreateIssues(ctx, ids)
	if err != nil {
		return err
	}

	s.mu.Lock()
	page, pageSize, filter := s.page.Page, s.page.PageSize, s.partyFilter
	s.mu.Unlock()
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	refetchErr := s.refreshList(ctx, page, pageSize, filter)

	if resp.FailedCount > 0 {
		return &BulkPartialError{Failed: resp.FailedCount, Total: len(resp.Results)}
	}
	return refetchErr
}

// Reset clears all caches, the error, and the pagination descriptor. Used at
// navigation boundaries; makes no network call.
func (s *Store) Reset() {
	s.mu.Lock()
	s.obligations = nil
	s.selected = nil
	s.page = Page{}
	s.partyFilter = ""
	s.errMsg = ""
	s.mu.Unlock()
}

// Obligations returns a copy of the current list cache.
func (s *Store) Obligations() []api.Obligation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Obligation, len(s.obligations))
	copy(out, s.obligations)
	return out
}

// Selected returns a copy of the selected obligation, or nil.
func (s *Store) Selected() *api.Obligation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	clone := *s.selected
	return &clone
}

// Page returns the pagination descriptor of the last fetched list.
func (s *Store) Page() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PartyFilter returns the filter used by the last list fetch.
func (s *Store) PartyFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partyFilter
}

// Loading reports whether an operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the normalized message of the most recently failed operation,
// or "" when the last operation succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
