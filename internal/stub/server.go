// internal/stub/server.go
package stub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bookshelf/internal/catalog"
	"bookshelf/internal/reviews"
)

// Handler serves the stand-in book and review services plus the token
// endpoint on a single router.
type Handler struct {
	books   *BookStore
	reviews *ReviewStore
	tokens  *TokenIssuer
	logger  *slog.Logger
}

func NewHandler(books *BookStore, revs *ReviewStore, tokens *TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{books: books, reviews: revs, tokens: tokens, logger: logger}
}

// Routes wires the endpoints of both services. Responses are bare JSON
// values, matching what the hosted services return.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/books", h.listBooks)
	r.Get("/books/search", h.searchBooks)
	r.Post("/books", h.createBook)
	r.Get("/books/{id}", h.getBook)
	r.Put("/books/{id}", h.updateBook)
	r.Delete("/books/{id}", h.deleteBook)

	r.Get("/reviews", h.listReviews)
	r.Post("/reviews", h.createReview)
	r.Delete("/reviews/{id}", h.deleteReview)

	r.Post("/token", h.issueToken)

	return r
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.books.List())
}

func (h *Handler) searchBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var year *int
	if raw := q.Get("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "year must be a whole number")
			return
		}
		year = &n
	}

	h.writeJSON(w, http.StatusOK, h.books.Search(q.Get("title"), q.Get("author"), year))
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.readID(w, r)
	if !ok {
		return
	}
	book, found := h.books.Get(id)
	if !found {
		h.writeError(w, http.StatusNotFound, "book not found")
		return
	}
	h.writeJSON(w, http.StatusOK, book)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var input catalog.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Title == "" || input.Author == "" {
		h.writeError(w, http.StatusUnprocessableEntity, "title and author must be provided")
		return
	}
	book := h.books.Create(input)
	h.logger.Info("book created", "id", book.ID, "title", book.Title)
	h.writeJSON(w, http.StatusCreated, book)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.readID(w, r)
	if !ok {
		return
	}
	var input catalog.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Title == "" || input.Author == "" {
		h.writeError(w, http.StatusUnprocessableEntity, "title and author must be provided")
		return
	}
	book, found := h.books.Update(id, input)
	if !found {
		h.writeError(w, http.StatusNotFound, "book not found")
		return
	}
	h.writeJSON(w, http.StatusOK, book)
}

// deleteBook removes the book and cascades into its reviews, keeping the
// client's assumption about the book service true locally.
func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := h.readID(w, r)
	if !ok {
		return
	}
	if !h.books.Delete(id) {
		h.writeError(w, http.StatusNotFound, "book not found")
		return
	}
	removed := h.reviews.DeleteForBook(id)
	h.logger.Info("book deleted", "id", id, "reviews_removed", removed)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.reviews.List())
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var input reviews.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.BookID <= 0 || input.ReviewerName == "" || input.Comment == "" {
		h.writeError(w, http.StatusUnprocessableEntity, "bookId, reviewerName and comment must be provided")
		return
	}
	if input.Rating < reviews.MinRating || input.Rating > reviews.MaxRating {
		h.writeError(w, http.StatusUnprocessableEntity, "rating must be between 1 and 5")
		return
	}
	if _, found := h.books.Get(input.BookID); !found {
		h.writeError(w, http.StatusUnprocessableEntity, "bookId must reference an existing book")
		return
	}
	h.writeJSON(w, http.StatusCreated, h.reviews.Create(input))
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.readID(w, r)
	if !ok {
		return
	}
	if !h.reviews.Delete(id) {
		h.writeError(w, http.StatusNotFound, "review not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.tokens.Issue(req.Username, req.Password)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) readID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		h.writeError(w, http.StatusBadRequest, "invalid id parameter")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
