// internal/views/reviews.go
package views

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"bookshelf/internal/catalog"
	"bookshelf/internal/identity"
	"bookshelf/internal/reviews"
)

// ReviewsView drives the aggregate reviews page: every review in the
// system alongside the catalog, so each review can show its book's title.
type ReviewsView struct {
	books   catalog.Service
	reviews reviews.Service
	session *identity.Session

	mu          sync.Mutex
	gen         uint64
	closed      bool
	phase       Phase
	list        []reviews.Review
	bookList    []catalog.Book
	titles      map[int64]string
	fieldErrors map[string]string
	errMsg      string
}

// ReviewsState is an immutable snapshot for rendering. Titles maps each
// book id to its title for display next to a review.
type ReviewsState struct {
	Phase       Phase
	Reviews     []reviews.Review
	Books       []catalog.Book
	Titles      map[int64]string
	FieldErrors map[string]string
	Error       string
}

func NewReviewsView(books catalog.Service, revs reviews.Service, session *identity.Session) *ReviewsView {
	return &ReviewsView{books: books, reviews: revs, session: session, phase: PhaseIdle}
}

// Load fetches all reviews and all books concurrently. Neither depends on
// the other's result, but both must land before the page renders.
func (v *ReviewsView) Load(ctx context.Context) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.phase = PhaseLoading
	v.mu.Unlock()

	var (
		wg      sync.WaitGroup
		allRevs []reviews.Review
		allBook []catalog.Book
		revErr  error
		bookErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		allRevs, revErr = v.reviews.ListAll(ctx)
	}()
	go func() {
		defer wg.Done()
		allBook, bookErr = v.books.List(ctx)
	}()
	wg.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || gen != v.gen {
		return
	}
	if revErr != nil || bookErr != nil {
		err := revErr
		if err == nil {
			err = bookErr
		}
		v.phase = PhaseFailed
		v.errMsg = failureMessage("Failed to load data: ", err)
		return
	}
	v.phase = PhaseLoaded
	v.list = allRevs
	v.bookList = allBook
	v.titles = make(map[int64]string, len(allBook))
	for _, b := range allBook {
		v.titles[b.ID] = b.Title
	}
	v.errMsg = ""
}

// Submit validates and creates a review, then reloads both lists.
func (v *ReviewsView) Submit(ctx context.Context, bookID, name, rating, comment string) {
	id, err := strconv.ParseInt(bookID, 10, 64)
	if err != nil {
		id = 0
	}

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
			v.errMsg = failureMessage("Failed to create review: ", err)
		}
		v.mu.Unlock()
		return
	}

	v.mu.Lock()
	v.fieldErrors = nil
	v.mu.Unlock()
	v.Load(ctx)
}

// Delete removes a review after user confirmation and reloads.
func (v *ReviewsView) Delete(ctx context.Context, reviewID int64) error {
	if err := v.reviews.Delete(ctx, reviewID); err != nil {
		v.mu.Lock()
		if !v.closed {
			v.errMsg = failureMessage("Failed to delete review: ", err)
		}
		v.mu.Unlock()
		return err
	}
	v.Load(ctx)
	return nil
}

// BookTitle resolves a review's book title, falling back to "Book #N" when
// the book is no longer in the catalog.
func (v *ReviewsView) BookTitle(bookID int64) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if title, ok := v.titles[bookID]; ok {
		return title
	}
	return fmt.Sprintf("Book #%d", bookID)
}

// Snapshot returns a copy of the current state.
func (v *ReviewsView) Snapshot() ReviewsState {
	v.mu.Lock()
	defer v.mu.Unlock()

	list := make([]reviews.Review, len(v.list))
	copy(list, v.list)
	books := make([]catalog.Book, len(v.bookList))
	copy(books, v.bookList)
	titles := make(map[int64]string, len(v.titles))
	for id, title := range v.titles {
		titles[id] = title
	}
	errs := make(map[string]string, len(v.fieldErrors))
	for k, msg := range v.fieldErrors {
		errs[k] = msg
	}
	return ReviewsState{
		Phase:       v.phase,
		Reviews:     list,
		Books:       books,
		Titles:      titles,
		FieldErrors: errs,
		Error:       v.errMsg,
	}
}

// Close abandons interest in any in-flight fetch.
func (v *ReviewsView) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}
