// Package stub hosts in-memory stand-ins for the three external
// collaborators: the book service, the review service, and the identity
// provider. They exist so the front end can be developed and tested
// without the hosted services.
package stub

import (
	"sort"
	"strings"
	"sync"

	"bookshelf/internal/catalog"
)

// BookStore is a mutex-guarded in-memory book table with auto-incremented
// ids.
type BookStore struct {
	mu     sync.RWMutex
	books  map[int64]catalog.Book
	nextID int64
}

func NewBookStore() *BookStore {
	return &BookStore{books: make(map[int64]catalog.Book), nextID: 1}
}

// List returns all books in ascending id order.
func (s *BookStore) List() []catalog.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Search filters by case-insensitive substring on title and author and by
// exact published year. Empty criteria match everything.
func (s *BookStore) Search(title, author string, year *int) []catalog.Book {
	title = strings.ToLower(title)
	author = strings.ToLower(author)

	out := []catalog.Book{}
	for _, b := range s.List() {
		if title != "" && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(b.Author), author) {
			continue
		}
		if year != nil && (b.PublishedYear == nil || *b.PublishedYear != *year) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Get retrieves a book by id.
func (s *BookStore) Get(id int64) (catalog.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	return b, ok
}

// Create assigns the next id and stores the book.
func (s *BookStore) Create(input catalog.BookInput) catalog.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := catalog.Book{
		ID:            s.nextID,
		Title:         input.Title,
		Author:        input.Author,
		ISBN:          input.ISBN,
		PublishedYear: input.PublishedYear,
	}
	s.nextID++
	s.books[b.ID] = b
	return b
}

// Update replaces every field of the book with the given id.
func (s *BookStore) Update(id int64, input catalog.BookInput) (catalog.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return catalog.Book{}, false
	}
	b := catalog.Book{
		ID:            id,
		Title:         input.Title,
		Author:        input.Author,
		ISBN:          input.ISBN,
		PublishedYear: input.PublishedYear,
	}
	s.books[id] = b
	return b, true
}

// Delete removes the book with the given id, reporting whether it existed.
func (s *BookStore) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return false
	}
	delete(s.books, id)
	return true
}
