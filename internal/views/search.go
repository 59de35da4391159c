// internal/views/search.go
package views

import (
	"context"
	"sync"

	"bookshelf/internal/catalog"
	"bookshelf/internal/identity"
)

// SearchView drives the book search page: a filterable table of books with
// admin-only edit and delete actions.
type SearchView struct {
	books   catalog.Service
	session *identity.Session

	mu      sync.Mutex
	gen     uint64
	closed  bool
	phase   Phase
	filter  catalog.SearchFilter
	results []catalog.Book
	errMsg  string
}

// SearchState is an immutable snapshot for rendering.
type SearchState struct {
	Phase  Phase
	Filter catalog.SearchFilter
	Books  []catalog.Book
	Error  string
	// Filtered distinguishes "no books match the current filter" from
	// "no books in the system" when Books is empty.
	Filtered bool
	// ShowActions controls the edit/delete column.
	ShowActions bool
}

func NewSearchView(books catalog.Service, session *identity.Session) *SearchView {
	return &SearchView{books: books, session: session, phase: PhaseIdle}
}

// Load performs the initial unfiltered listing.
func (v *SearchView) Load(ctx context.Context) {
	v.run(ctx, catalog.SearchFilter{})
}

// Submit issues a search with whatever fields are currently non-empty. An
// empty filter degrades to an unfiltered listing.
func (v *SearchView) Submit(ctx context.Context, filter catalog.SearchFilter) {
	v.run(ctx, filter)
}

// Clear resets the filter fields and re-issues the unfiltered query.
func (v *SearchView) Clear(ctx context.Context) {
	v.run(ctx, catalog.SearchFilter{})
}

func (v *SearchView) run(ctx context.Context, filter catalog.SearchFilter) {
	gen := v.begin(filter)
	books, err := v.books.Search(ctx, filter)
	v.complete(gen, books, err)
}

// begin records a new in-flight query and returns its generation token.
func (v *SearchView) begin(filter catalog.SearchFilter) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.phase = PhaseLoading
	v.filter = filter
	return v.gen
}

// complete applies a query result. Results from superseded generations and
// results arriving after Close are dropped.
func (v *SearchView) complete(gen uint64, books []catalog.Book, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || gen != v.gen {
		return
	}
	if err != nil {
		v.phase = PhaseFailed
		v.errMsg = failureMessage("Failed to search books: ", err)
		return
	}
	v.phase = PhaseLoaded
	v.results = books
	v.errMsg = ""
}

// Delete removes a book after the shell has collected user confirmation.
// On success the row is dropped from local state without a re-fetch, which
// must leave the table identical to what a fresh listing would show.
func (v *SearchView) Delete(ctx context.Context, id int64) error {
	if !v.session.IsAdmin() {
		return ErrNotPermitted
	}

	if err := v.books.Delete(ctx, id); err != nil {
		v.mu.Lock()
		if !v.closed {
			v.errMsg = failureMessage("Failed to delete book: ", err)
		}
		v.mu.Unlock()
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	kept := v.results[:0]
	for _, b := range v.results {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	v.results = kept
	v.errMsg = ""
	return nil
}

// Snapshot returns a copy of the current state.
func (v *SearchView) Snapshot() SearchState {
	v.mu.Lock()
	defer v.mu.Unlock()
	books := make([]catalog.Book, len(v.results))
	copy(books, v.results)
	return SearchState{
		Phase:       v.phase,
		Filter:      v.filter,
		Books:       books,
		Error:       v.errMsg,
		Filtered:    !v.filter.IsZero(),
		ShowActions: v.session.IsAdmin(),
	}
}

// Close abandons interest in any in-flight query. Late completions become
// no-ops; the underlying requests are not chased down.
func (v *SearchView) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}
