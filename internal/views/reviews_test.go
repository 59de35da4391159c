package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/catalog"
	"bookshelf/internal/reviews"
)

func TestReviewsViewLoad(t *testing.T) {
	t.Run("joins reviews with book titles", func(t *testing.T) {
		books := &fakeBooks{
			listFn: func(_ context.Context) ([]catalog.Book, error) {
				return someBooks(), nil
			},
		}
		revs := &fakeReviews{
			listAllFn: func(_ context.Context) ([]reviews.Review, error) {
				return []reviews.Review{
					{ID: 1, BookID: 1, ReviewerName: "Ada", Rating: 5, Comment: "superb"},
					{ID: 2, BookID: 9, ReviewerName: "Grace", Rating: 3, Comment: "fine"},
				}, nil
			},
		}
		view := NewReviewsView(books, revs, memberSession())

		view.Load(context.Background())

		state := view.Snapshot()
		assert.Equal(t, PhaseLoaded, state.Phase)
		require.Len(t, state.Reviews, 2)
		require.Len(t, state.Books, 2)
		assert.Equal(t, "Dune", state.Titles[1])

		assert.Equal(t, "Dune", view.BookTitle(1))
		// Reviews for books no longer in the catalog keep a placeholder.
		assert.Equal(t, "Book #9", view.BookTitle(9))
	})

	t.Run("either fetch failing fails the page", func(t *testing.T) {
		books := &fakeBooks{
			listFn: func(_ context.Context) ([]catalog.Book, error) {
				return nil, errBoom
			},
		}
		view := NewReviewsView(books, &fakeReviews{}, memberSession())

		view.Load(context.Background())

		state := view.Snapshot()
		assert.Equal(t, PhaseFailed, state.Phase)
		assert.Equal(t, "Failed to load data: connection refused", state.Error)
	})
}

func TestReviewsViewSubmit(t *testing.T) {
	t.Run("creates and reloads", func(t *testing.T) {
		stored := []reviews.Review{}
		books := &fakeBooks{
			listFn: func(_ context.Context) ([]catalog.Book, error) {
				return someBooks(), nil
			},
		}
		revs := &fakeReviews{
			listAllFn: func(_ context.Context) ([]reviews.Review, error) {
				return append([]reviews.Review(nil), stored...), nil
			},
			createFn: func(_ context.Context, input reviews.ReviewInput) (*reviews.Review, error) {
				created := reviews.Review{ID: 10, BookID: input.BookID, ReviewerName: input.ReviewerName, Rating: input.Rating, Comment: input.Comment}
				stored = append(stored, created)
				return &created, nil
			},
		}
		view := NewReviewsView(books, revs, memberSession())
		view.Load(context.Background())

		view.Submit(context.Background(), "1", "Ada", "5", "superb")

		state := view.Snapshot()
		require.Len(t, state.Reviews, 1)
		assert.Equal(t, "Ada", state.Reviews[0].ReviewerName)
		assert.Empty(t, state.FieldErrors)
	})

	t.Run("missing book selection blocks the request", func(t *testing.T) {
		revs := &fakeReviews{}
		view := NewReviewsView(&fakeBooks{}, revs, memberSession())

		view.Submit(context.Background(), "", "Ada", "5", "superb")

		state := view.Snapshot()
		assert.Zero(t, revs.createCalls)
		assert.Contains(t, state.FieldErrors, "bookId")
	})
}

func TestReviewsViewDelete(t *testing.T) {
	stored := []reviews.Review{
		{ID: 1, BookID: 1, ReviewerName: "Ada", Rating: 5, Comment: "superb"},
	}
	books := &fakeBooks{
		listFn: func(_ context.Context) ([]catalog.Book, error) {
			return someBooks(), nil
		},
	}
	revs := &fakeReviews{
		listAllFn: func(_ context.Context) ([]reviews.Review, error) {
			return append([]reviews.Review(nil), stored...), nil
		},
		deleteFn: func(_ context.Context, id int64) error {
			kept := stored[:0]
			for _, r := range stored {
				if r.ID != id {
					kept = append(kept, r)
				}
			}
			stored = kept
			return nil
		},
	}
	view := NewReviewsView(books, revs, memberSession())
	view.Load(context.Background())

	require.NoError(t, view.Delete(context.Background(), 1))

	assert.Empty(t, view.Snapshot().Reviews)
}
