// internal/views/form.go
package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/identity"
)

// FormMode selects whether a BookFormView creates a new book or edits an
// existing one.
type FormMode int

const (
	ModeAdd FormMode = iota
	ModeEdit
)

// RedirectDelay is how long the transient success indicator stays visible
// before the shell navigates to the book's detail page.
const RedirectDelay = 1500 * time.Millisecond

// FormFields holds the raw text of the four form inputs, exactly as typed.
type FormFields struct {
	Title  string
	Author string
	ISBN   string
	Year   string
}

// BookFormView drives the add-book and edit-book pages. Both modes share
// the same validation and submission contract.
type BookFormView struct {
	books   catalog.Service
	session *identity.Session
	mode    FormMode
	bookID  int64

	mu          sync.Mutex
	phase       Phase
	fields      FormFields
	fieldErrors map[string]string
	submitting  bool
	success     bool
	redirect    string
	errMsg      string
}

// FormState is an immutable snapshot for rendering. BookID is zero in add
// mode.
type FormState struct {
	Mode        FormMode
	BookID      int64
	Phase       Phase
	Fields      FormFields
	FieldErrors map[string]string
	// Submitting disables the form while a request is in flight. It must
	// never remain true after a failed submission.
	Submitting bool
	Success    bool
	// Redirect is the path to navigate to after RedirectDelay once
	// Success is set.
	Redirect string
	Error    string
}

func NewAddForm(books catalog.Service, session *identity.Session) *BookFormView {
	return &BookFormView{books: books, session: session, mode: ModeAdd, phase: PhaseLoaded}
}

func NewEditForm(books catalog.Service, session *identity.Session, bookID int64) *BookFormView {
	return &BookFormView{books: books, session: session, mode: ModeEdit, bookID: bookID, phase: PhaseIdle}
}

// Load fetches the book being edited and pre-fills the fields. Editing is
// admin-only: a non-admin session is refused before the fetch is issued.
// Add mode has nothing to load.
func (f *BookFormView) Load(ctx context.Context) {
	if f.mode != ModeEdit {
		return
	}
	if !f.session.IsAdmin() {
		f.mu.Lock()
		f.phase = PhaseAccessDenied
		f.mu.Unlock()
		return
	}

	f.mu.Lock()
	f.phase = PhaseLoading
	f.mu.Unlock()

	book, err := f.books.Get(ctx, f.bookID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.phase = PhaseFailed
		f.errMsg = failureMessage("Failed to load book: ", err)
		return
	}
	f.phase = PhaseLoaded
	f.fields = FormFields{Title: book.Title, Author: book.Author}
	if book.ISBN != nil {
		f.fields.ISBN = *book.ISBN
	}
	if book.PublishedYear != nil {
		f.fields.Year = fmt.Sprintf("%d", *book.PublishedYear)
	}
}

// Submit validates the fields and, when they pass, creates or updates the
// book. Validation failures block the request entirely. On success a
// transient indicator is shown and Redirect points at the book's detail
// page; on failure the form is re-enabled with the error message so the
// user can correct and resubmit.
func (f *BookFormView) Submit(ctx context.Context, fields FormFields) {
	if f.mode == ModeEdit && !f.session.IsAdmin() {
		f.mu.Lock()
		f.phase = PhaseAccessDenied
		f.mu.Unlock()
		return
	}

	input, v := catalog.ParseBookInput(fields.Title, fields.Author, fields.ISBN, fields.Year)

	f.mu.Lock()
	f.fields = fields
	if !v.Valid() {
		f.fieldErrors = v.Errors
		f.submitting = false
		f.mu.Unlock()
		return
	}
	f.fieldErrors = nil
	f.submitting = true
	f.errMsg = ""
	f.mu.Unlock()

	var (
		book *catalog.Book
		err  error
	)
	if f.mode == ModeAdd {
		book, err = f.books.Create(ctx, input)
	} else {
		book, err = f.books.Update(ctx, f.bookID, input)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.success = false
		if f.mode == ModeAdd {
			f.errMsg = failureMessage("Failed to create book: ", err)
		} else {
			f.errMsg = failureMessage("Failed to update book: ", err)
		}
		return
	}
	f.success = true
	f.errMsg = ""
	f.redirect = fmt.Sprintf("/books/%d", book.ID)
}

// Snapshot returns a copy of the current state.
func (f *BookFormView) Snapshot() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(map[string]string, len(f.fieldErrors))
	for k, msg := range f.fieldErrors {
		errs[k] = msg
	}
	return FormState{
		Mode:        f.mode,
		BookID:      f.bookID,
		Phase:       f.phase,
		Fields:      f.fields,
		FieldErrors: errs,
		Submitting:  f.submitting,
		Success:     f.success,
		Redirect:    f.redirect,
		Error:       f.errMsg,
	}
}
