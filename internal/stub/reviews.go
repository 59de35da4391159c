// internal/stub/reviews.go
package stub

import (
	"sort"
	"sync"

	"bookshelf/internal/reviews"
)

// ReviewStore is a mutex-guarded in-memory review table.
type ReviewStore struct {
	mu     sync.RWMutex
	items  map[int64]reviews.Review
	nextID int64
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{items: make(map[int64]reviews.Review), nextID: 1}
}

// List returns every review in ascending id order.
func (s *ReviewStore) List() []reviews.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]reviews.Review, 0, len(s.items))
	for _, r := range s.items {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create assigns the next id and stores the review.
func (s *ReviewStore) Create(input reviews.ReviewInput) reviews.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := reviews.Review{
		ID:           s.nextID,
		BookID:       input.BookID,
		ReviewerName: input.ReviewerName,
		Rating:       input.Rating,
		Comment:      input.Comment,
	}
	s.nextID++
	s.items[r.ID] = r
	return r
}

// Delete removes the review with the given id, reporting whether it
// existed.
func (s *ReviewStore) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// DeleteForBook removes every review attached to bookID. The book service
// contract says deleting a book cascades into its reviews; the stub makes
// that contract explicit.
func (s *ReviewStore) DeleteForBook(bookID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, r := range s.items {
		if r.BookID == bookID {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}
