// internal/views/detail.go
package views

import (
	"context"
	"errors"
	"sync"

	"bookshelf/internal/catalog"
	"bookshelf/internal/identity"
	"bookshelf/internal/reviews"
)

// BookDetailView drives the book detail page: one book, its reviews, an
// average rating, and the review submission form.
type BookDetailView struct {
	books   catalog.Service
	reviews reviews.Service
	session *identity.Session
	routeID string

	mu          sync.Mutex
	gen         uint64
	closed      bool
	phase       Phase
	bookID      int64
	book        *catalog.Book
	list        []reviews.Review
	showForm    bool
	fieldErrors map[string]string
	notice      string
	errMsg      string
}

// DetailState is an immutable snapshot for rendering.
type DetailState struct {
	Phase       Phase
	Book        *catalog.Book
	Reviews     []reviews.Review
	ShowForm    bool
	FieldErrors map[string]string
	Notice      string
	Error       string
	// HasReviews gates the rating summary: with zero reviews the average
	// is a defined 0 and the summary block is suppressed.
	HasReviews     bool
	Average        float64
	AverageDisplay string
}

// NewBookDetailView takes the route-supplied book id as a string; Load
// coerces it to an integer exactly once and every comparison downstream
// is exact.
func NewBookDetailView(books catalog.Service, revs reviews.Service, session *identity.Session, routeID string) *BookDetailView {
	return &BookDetailView{books: books, reviews: revs, session: session, routeID: routeID, phase: PhaseIdle}
}

// Load fetches the book, then all reviews filtered down to this book. A
// missing book is terminal; a review fetch failure keeps the book and
// reports the failure, so "book missing" and "reviews missing" stay
// distinguishable.
func (v *BookDetailView) Load(ctx context.Context) {
	id, err := reviews.ParseBookID(v.routeID)
	if err != nil {
		v.mu.Lock()
		v.phase = PhaseNotFound
		v.mu.Unlock()
		return
	}

	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.bookID = id
	v.phase = PhaseLoading
	v.mu.Unlock()

	book, err := v.books.Get(ctx, id)
	if err != nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.closed || gen != v.gen {
			return
		}
		if errors.Is(err, catalog.ErrNotFound) {
			v.phase = PhaseNotFound
			return
		}
		v.phase = PhaseFailed
		v.errMsg = failureMessage("Failed to load book details: ", err)
		return
	}

	all, err := v.reviews.ListAll(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || gen != v.gen {
		return
	}
	v.book = book
	if err != nil {
		v.phase = PhaseFailed
		v.errMsg = failureMessage("Failed to load book details: ", err)
		return
	}
	v.phase = PhaseLoaded
	v.list = reviews.ForBook(all, id)
	v.errMsg = ""
}

// OpenForm shows the review submission form.
func (v *BookDetailView) OpenForm() {
	v.mu.Lock()
	v.showForm = true
	v.mu.Unlock()
}

// CancelForm hides the review submission form without submitting.
func (v *BookDetailView) CancelForm() {
	v.mu.Lock()
	v.showForm = false
	v.fieldErrors = nil
	v.mu.Unlock()
}

// SubmitReview validates and submits a new review. Validation failures
// block the request. On success the form is cleared and hidden, a
// transient indicator is shown, and the review list is refreshed.
func (v *BookDetailView) SubmitReview(ctx context.Context, name, rating, comment string) {
	v.mu.Lock()
	id := v.bookID
	v.mu.Unlock()

	input, val := reviews.ParseReviewInput(id, name, rating, comment)
	if !val.Valid() {
		v.mu.Lock()
		v.fieldErrors = val.Errors
		v.mu.Unlock()
		return
	}

	if _, err := v.reviews.Create(ctx, input); err != nil {
		v.mu.Lock()
		if !v.closed {
			v.errMsg = failureMessage("Failed to add review: ", err)
		}
		v.mu.Unlock()
		return
	}

	v.mu.Lock()
	v.showForm = false
	v.fieldErrors = nil
	v.notice = "Review added"
	v.errMsg = ""
	v.mu.Unlock()

	v.refreshReviews(ctx)
}

// DeleteReview removes a review after the shell has collected user
// confirmation. On success the review is dropped from local state without
// a re-fetch; the resulting list must match what a fresh fetch would
// yield, and the average rating updates with it.
func (v *BookDetailView) DeleteReview(ctx context.Context, reviewID int64) error {
	if err := v.reviews.Delete(ctx, reviewID); err != nil {
		v.mu.Lock()
		if !v.closed {
			v.errMsg = failureMessage("Failed to delete review: ", err)
		}
		v.mu.Unlock()
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	kept := v.list[:0]
	for _, r := range v.list {
		if r.ID != reviewID {
			kept = append(kept, r)
		}
	}
	v.list = kept
	v.notice = "Review deleted"
	v.errMsg = ""
	return nil
}

func (v *BookDetailView) refreshReviews(ctx context.Context) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	id := v.bookID
	v.mu.Unlock()

	all, err := v.reviews.ListAll(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || gen != v.gen {
		return
	}
	if err != nil {
		v.errMsg = failureMessage("Failed to load book details: ", err)
		return
	}
	v.list = reviews.ForBook(all, id)
}

// Snapshot returns a copy of the current state, including the derived
// average rating.
func (v *BookDetailView) Snapshot() DetailState {
	v.mu.Lock()
	defer v.mu.Unlock()

	list := make([]reviews.Review, len(v.list))
	copy(list, v.list)
	errs := make(map[string]string, len(v.fieldErrors))
	for k, msg := range v.fieldErrors {
		errs[k] = msg
	}

	avg := reviews.AverageRating(list)
	return DetailState{
		Phase:          v.phase,
		Book:           v.book,
		Reviews:        list,
		ShowForm:       v.showForm,
		FieldErrors:    errs,
		Notice:         v.notice,
		Error:          v.errMsg,
		HasReviews:     len(list) > 0,
		Average:        avg,
		AverageDisplay: reviews.FormatRating(avg),
	}
}

// Close abandons interest in any in-flight fetch.
func (v *BookDetailView) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}
