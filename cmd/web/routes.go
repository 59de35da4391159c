// cmd/web/routes.go
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// routes registers every page and action. Mutating actions are POSTs that
// drive a view model and then redirect; destructive ones go through an
// explicit confirmation page first.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(app.recoverPanic)
	r.Use(app.rateLimit)
	r.Use(app.logRequest)
	r.Use(app.withSession)

	r.Get("/", app.home)

	r.Get("/signin", app.signInForm)
	r.Post("/signin", app.signIn)
	r.Post("/signout", app.signOut)

	r.Get("/books/new", app.addBookForm)
	r.Post("/books", app.createBook)
	r.Get("/books/{id}", app.showBook)
	r.Get("/books/{id}/edit", app.editBookForm)
	r.Post("/books/{id}", app.updateBook)
	r.Get("/books/{id}/delete", app.confirmDeleteBook)
	r.Post("/books/{id}/delete", app.deleteBook)
	r.Post("/books/{id}/reviews", app.createBookReview)
	r.Get("/books/{id}/reviews/{reviewID}/delete", app.confirmDeleteBookReview)
	r.Post("/books/{id}/reviews/{reviewID}/delete", app.deleteBookReview)

	r.Get("/reviews", app.reviewsPage)
	r.Post("/reviews", app.createReview)
	r.Get("/reviews/{id}/delete", app.confirmDeleteReview)
	r.Post("/reviews/{id}/delete", app.deleteReview)

	return r
}
