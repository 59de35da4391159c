package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"bookshelf/internal/catalog"
	"bookshelf/internal/identity"
)

func adminSession() *identity.Session {
	return identity.NewSession(identity.RoleAdmin, identity.NewStaticTokenSource("t"))
}

func memberSession() *identity.Session {
	return identity.NewSession("member", identity.NewStaticTokenSource("t"))
}

func someBooks() []catalog.Book {
	return []catalog.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert"},
		{ID: 2, Title: "Foundation", Author: "Isaac Asimov"},
	}
}

func TestSearchViewLoad(t *testing.T) {
	books := &fakeBooks{
		searchFn: func(_ context.Context, filter catalog.SearchFilter) ([]catalog.Book, error) {
			assert.True(t, filter.IsZero())
			return someBooks(), nil
		},
	}
	view := NewSearchView(books, memberSession())

	view.Load(context.Background())

	state := view.Snapshot()
	assert.Equal(t, PhaseLoaded, state.Phase)
	assert.Len(t, state.Books, 2)
	assert.False(t, state.Filtered)
	assert.False(t, state.ShowActions)
	assert.Empty(t, state.Error)
}

func TestSearchViewSubmitFilter(t *testing.T) {
	books := &fakeBooks{
		searchFn: func(_ context.Context, filter catalog.SearchFilter) ([]catalog.Book, error) {
			assert.Equal(t, "dune", filter.Title)
			return someBooks()[:1], nil
		},
	}
	view := NewSearchView(books, adminSession())

	view.Submit(context.Background(), catalog.SearchFilter{Title: "dune"})

	state := view.Snapshot()
	assert.Equal(t, PhaseLoaded, state.Phase)
	assert.True(t, state.Filtered)
	assert.True(t, state.ShowActions)
	require.Len(t, state.Books, 1)
	assert.Equal(t, "Dune", state.Books[0].Title)
}

func TestSearchViewFailure(t *testing.T) {
	books := &fakeBooks{
		searchFn: func(_ context.Context, _ catalog.SearchFilter) ([]catalog.Book, error) {
			return nil, errBoom
		},
	}
	view := NewSearchView(books, memberSession())

	view.Load(context.Background())

	state := view.Snapshot()
	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Equal(t, "Failed to search books: connection refused", state.Error)
}

// A slow response that arrives after a newer query completed must not
// overwrite the newer result.
func TestSearchViewDropsStaleCompletion(t *testing.T) {
	view := NewSearchView(&fakeBooks{}, memberSession())

	stale := view.begin(catalog.SearchFilter{Title: "old"})
	fresh := view.begin(catalog.SearchFilter{Title: "new"})

	view.complete(fresh, someBooks()[:1], nil)
	view.complete(stale, someBooks(), nil)

	state := view.Snapshot()
	assert.Equal(t, PhaseLoaded, state.Phase)
	require.Len(t, state.Books, 1)
	assert.Equal(t, "Dune", state.Books[0].Title)
	assert.Equal(t, "new", state.Filter.Title)
}

func TestSearchViewDropsCompletionAfterClose(t *testing.T) {
	view := NewSearchView(&fakeBooks{}, memberSession())

	gen := view.begin(catalog.SearchFilter{})
	view.Close()
	view.complete(gen, someBooks(), nil)

	state := view.Snapshot()
	assert.NotEqual(t, PhaseLoaded, state.Phase)
	assert.Empty(t, state.Books)
}

func TestSearchViewDelete(t *testing.T) {
	t.Run("removes the row locally", func(t *testing.T) {
		books := &fakeBooks{
			searchFn: func(_ context.Context, _ catalog.SearchFilter) ([]catalog.Book, error) {
				return someBooks(), nil
			},
		}
		view := NewSearchView(books, adminSession())
		view.Load(context.Background())

		require.NoError(t, view.Delete(context.Background(), 1))

		state := view.Snapshot()
		require.Len(t, state.Books, 1)
		assert.Equal(t, int64(2), state.Books[0].ID)
		assert.Equal(t, 1, books.deleteCalls)
	})

	t.Run("non-admin is refused before any request", func(t *testing.T) {
		books := &fakeBooks{}
		view := NewSearchView(books, memberSession())

		err := view.Delete(context.Background(), 1)
		assert.ErrorIs(t, err, ErrNotPermitted)
		assert.Zero(t, books.deleteCalls)
	})

	t.Run("failed delete keeps the row", func(t *testing.T) {
		books := &fakeBooks{
			searchFn: func(_ context.Context, _ catalog.SearchFilter) ([]catalog.Book, error) {
				return someBooks(), nil
			},
			deleteFn: func(_ context.Context, _ int64) error { return errBoom },
		}
		view := NewSearchView(books, adminSession())
		view.Load(context.Background())

		require.Error(t, view.Delete(context.Background(), 1))

		state := view.Snapshot()
		assert.Len(t, state.Books, 2)
		assert.Equal(t, "Failed to delete book: connection refused", state.Error)
	})
}

// After a successful delete the local table must equal what a fresh
// listing over the remaining books would return.
func TestSearchViewDeleteMatchesRefetch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfNDistinct(rapid.Int64Range(1, 50), 1, 10, rapid.ID[int64]).Draw(t, "ids")

		initial := make([]catalog.Book, len(ids))
		for i, id := range ids {
			initial[i] = catalog.Book{ID: id, Title: "Book", Author: "Author"}
		}
		victim := ids[rapid.IntRange(0, len(ids)-1).Draw(t, "victim")]

		books := &fakeBooks{
			searchFn: func(_ context.Context, _ catalog.SearchFilter) ([]catalog.Book, error) {
				return append([]catalog.Book(nil), initial...), nil
			},
		}
		view := NewSearchView(books, adminSession())
		view.Load(context.Background())

		if err := view.Delete(context.Background(), victim); err != nil {
			t.Fatalf("delete: %v", err)
		}

		var want []catalog.Book
		for _, b := range initial {
			if b.ID != victim {
				want = append(want, b)
			}
		}
		got := view.Snapshot().Books
		if len(got) != len(want) {
			t.Fatalf("got %d books, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i].ID {
				t.Fatalf("book %d: got id %d, want %d", i, got[i].ID, want[i].ID)
			}
		}
	})
}
