// cmd/web/handlers.go
// Every handler follows the same shape: resolve the session, build the
// view model for the page, drive it with the request's action, then render
// its snapshot or redirect.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bookshelf/internal/catalog"
	"bookshelf/internal/clients"
	"bookshelf/internal/identity"
	"bookshelf/internal/shell"
	"bookshelf/internal/views"
)

func (app *application) bookClient(session *identity.Session) *clients.BookClient {
	return clients.NewBookClient(app.config.bookServiceURL, session, app.config.requestTimeout)
}

func (app *application) reviewClient(session *identity.Session) *clients.ReviewClient {
	return clients.NewReviewClient(app.config.reviewServiceURL, session, app.config.requestTimeout)
}

func (app *application) readIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// home renders the search page, or the welcome page for signed-out
// visitors. Submitting the search form lands back here as a GET with
// query parameters.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.SignedIn {
		app.render(w, http.StatusOK, "welcome.tmpl", app.pageData(r, nil))
		return
	}

	q := r.URL.Query()
	filter := catalog.SearchFilter{
		Title:  q.Get("title"),
		Author: q.Get("author"),
		Year:   q.Get("year"),
	}

	view := views.NewSearchView(app.bookClient(session), session)
	defer view.Close()
	view.Submit(r.Context(), filter)

	app.render(w, http.StatusOK, "home.tmpl", app.pageData(r, view.Snapshot()))
}

func (app *application) addBookForm(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.SignedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := views.NewAddForm(app.bookClient(session), session)
	app.render(w, http.StatusOK, "book_form.tmpl", app.pageData(r, view.Snapshot()))
}

func (app *application) createBook(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.SignedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := views.NewAddForm(app.bookClient(session), session)
	app.submitBookForm(w, r, view)
}

func (app *application) editBookForm(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	id, err := app.readIDParam(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	view := views.NewEditForm(app.bookClient(session), session, id)
	view.Load(r.Context())

	snap := view.Snapshot()
	if snap.Phase == views.PhaseAccessDenied {
		// Non-admins are sent away without the fetch ever being issued.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	app.render(w, http.StatusOK, "book_form.tmpl", app.pageData(r, snap))
}

func (app *application) updateBook(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	id, err := app.readIDParam(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	view := views.NewEditForm(app.bookClient(session), session, id)
	app.submitBookForm(w, r, view)
}

// submitBookForm is the shared create/update path: parse the form, drive
// the view, and either re-render with errors or show the transient
// success page that navigates to the book's detail view.
func (app *application) submitBookForm(w http.ResponseWriter, r *http.Request, view *views.BookFormView) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, err)
		return
	}

	fields := views.FormFields{
		Title:  r.PostForm.Get("title"),
		Author: r.PostForm.Get("author"),
		ISBN:   r.PostForm.Get("isbn"),
		Year:   r.PostForm.Get("publishedYear"),
	}
	view.Submit(r.Context(), fields)

	snap := view.Snapshot()
	switch {
	case snap.Phase == views.PhaseAccessDenied:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case snap.Success:
		data := app.pageData(r, snap)
		data.RedirectTo = snap.Redirect
		data.RedirectAfter = views.RedirectDelay.Seconds()
		app.render(w, http.StatusOK, "book_form.tmpl", data)
	default:
		// Validation or submission failure: the form stays editable.
		app.render(w, http.StatusUnprocessableEntity, "book_form.tmpl", app.pageData(r, snap))
	}
}

func (app *application) showBook(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.SignedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := views.NewBookDetailView(app.bookClient(session), app.reviewClient(session), session, chi.URLParam(r, "id"))
	defer view.Close()
	view.Load(r.Context())

	snap := view.Snapshot()
	if r.URL.Query().Get("review") == "new" {
		view.OpenForm()
		snap = view.Snapshot()
	}

	status := http.StatusOK
	if snap.Phase == views.PhaseNotFound {
		status = http.StatusNotFound
	}
	app.render(w, status, "book_detail.tmpl", app.pageData(r, snap))
}

func (app *application) confirmDeleteBook(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.IsAdmin() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	id, err := app.readIDParam(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	book, err := app.bookClient(session).Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		app.serverError(w, err)
		return
	}

	app.render(w, http.StatusOK, "confirm_delete_book.tmpl", app.pageData(r, book))
}

func (app *application) deleteBook(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	id, err := app.readIDParam(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	view := views.NewSearchView(app.bookClient(session), session)
	if err := view.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, views.ErrNotPermitted):
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			app.notifier.Push(shell.LevelError, view.Snapshot().Error)
			http.Redirect(w, r, "/", http.StatusSeeOther)
		}
		return
	}

	app.notifier.Push(shell.LevelSuccess, "Book deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// createBookReview handles the review form on the book detail page.
func (app *application) createBookReview(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.SignedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.serverError(w, err)
		return
	}

	routeID := chi.URLParam(r, "id")
	view := views.NewBookDetailView(app.bookClient(session), app.reviewClient(session), session, routeID)
	defer view.Close()
	view.Load(r.Context())
	view.SubmitReview(r.Context(),
		r.PostForm.Get("reviewerName"),
		r.PostForm.Get("rating"),
		r.PostForm.Get("comment"),
	)

	snap := view.Snapshot()
	if len(snap.FieldErrors) > 0 || snap.Error != "" {
		view.OpenForm()
		app.render(w, http.StatusUnprocessableEntity, "book_detail.tmpl", app.pageData(r, view.Snapshot()))
		return
	}

	app.notifier.Push(shell.LevelSuccess, "Review added")
	http.Redirect(w, r, "/books/"+routeID, http.StatusSeeOther)
}

func (app *application) confirmDeleteBookReview(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.SignedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	reviewID, err := app.readIDParam(r, "reviewID")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	state := struct {
		BookID   string
		ReviewID int64
	}{chi.URLParam(r, "id"), reviewID}
	app.render(w, http.StatusOK, "confirm_delete_review.tmpl", app.pageData(r, state))
}

func (app *application) deleteBookReview(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	routeID := chi.URLParam(r, "id")
	reviewID, err := app.readIDParam(r, "reviewID")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	view := views.NewBookDetailView(app.bookClient(session), app.reviewClient(session), session, routeID)
	defer view.Close()
	if err := view.DeleteReview(r.Context(), reviewID); err != nil {
		app.notifier.Push(shell.LevelError, view.Snapshot().Error)
	} else {
		app.notifier.Push(shell.LevelSuccess, "Review deleted")
	}
	http.Redirect(w, r, "/books/"+routeID, http.StatusSeeOther)
}

// reviewsPage renders the aggregate view of every review in the system.
func (app *application) reviewsPage(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.SignedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := views.NewReviewsView(app.bookClient(session), app.reviewClient(session), session)
	defer view.Close()
	view.Load(r.Context())

	app.render(w, http.StatusOK, "reviews.tmpl", app.pageData(r, view.Snapshot()))
}

func (app *application) createReview(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.SignedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.serverError(w, err)
		return
	}

	view := views.NewReviewsView(app.bookClient(session), app.reviewClient(session), session)
	defer view.Close()
	view.Load(r.Context())
	view.Submit(r.Context(),
		r.PostForm.Get("bookId"),
		r.PostForm.Get("reviewerName"),
		r.PostForm.Get("rating"),
		r.PostForm.Get("comment"),
	)

	snap := view.Snapshot()
	if len(snap.FieldErrors) > 0 || snap.Error != "" {
		app.render(w, http.StatusUnprocessableEntity, "reviews.tmpl", app.pageData(r, snap))
		return
	}

	app.notifier.Push(shell.LevelSuccess, "Review added")
	http.Redirect(w, r, "/reviews", http.StatusSeeOther)
}

func (app *application) confirmDeleteReview(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	if !session.SignedIn {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	reviewID, err := app.readIDParam(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	state := struct {
		BookID   string
		ReviewID int64
	}{"", reviewID}
	app.render(w, http.StatusOK, "confirm_delete_review.tmpl", app.pageData(r, state))
}

func (app *application) deleteReview(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFrom(r)
	reviewID, err := app.readIDParam(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	view := views.NewReviewsView(app.bookClient(session), app.reviewClient(session), session)
	defer view.Close()
	if err := view.Delete(r.Context(), reviewID); err != nil {
		app.notifier.Push(shell.LevelError, view.Snapshot().Error)
	} else {
		app.notifier.Push(shell.LevelSuccess, "Review deleted")
	}
	http.Redirect(w, r, "/reviews", http.StatusSeeOther)
}

func (app *application) signInForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, http.StatusOK, "signin.tmpl", app.pageData(r, nil))
}

// signIn exchanges credentials for a bearer token at the identity provider
// and stores it in the session cookie. The token itself is opaque to us
// apart from its role claim.
func (app *application) signIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, err)
		return
	}

	payload, err := json.Marshal(map[string]string{
		"username": r.PostForm.Get("username"),
		"password": r.PostForm.Get("password"),
	})
	if err != nil {
		app.serverError(w, err)
		return
	}

	resp, err := http.Post(app.config.identityURL+"/token", "application/json", bytes.NewReader(payload))
	if err != nil {
		app.notifier.Push(shell.LevelError, "Failed to sign in: "+err.Error())
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		app.notifier.Push(shell.LevelError, "Failed to sign in: invalid credentials")
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		app.serverError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    body.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) signOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
