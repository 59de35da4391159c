// internal/clients/books_client.go
package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/identity"
)

// BookClient implements catalog.Service against the remote book service.
type BookClient struct {
	api
}

// NewBookClient builds a client bound to one session. Sessions are
// per-request, so construction must stay cheap.
func NewBookClient(baseURL string, session *identity.Session, timeout time.Duration) *BookClient {
	return &BookClient{api: newAPI(baseURL, session, timeout, "books", catalog.ErrNotFound)}
}

func (c *BookClient) List(ctx context.Context) ([]catalog.Book, error) {
	var books []catalog.Book
	if err := c.do(ctx, "books.list", http.MethodGet, "/books", nil, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Search sends only the non-empty filter fields. An empty filter degrades
// to List; matching semantics belong to the server.
func (c *BookClient) Search(ctx context.Context, filter catalog.SearchFilter) ([]catalog.Book, error) {
	if filter.IsZero() {
		return c.List(ctx)
	}
	var books []catalog.Book
	if err := c.do(ctx, "books.search", http.MethodGet, "/books/search", filter.Values(), nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *BookClient) Get(ctx context.Context, id int64) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, "books.get", http.MethodGet, fmt.Sprintf("/books/%d", id), nil, nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *BookClient) Create(ctx context.Context, input catalog.BookInput) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, "books.create", http.MethodPost, "/books", nil, input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Update replaces the whole record; the service treats PUT as full
// replacement, not a partial patch.
func (c *BookClient) Update(ctx context.Context, id int64, input catalog.BookInput) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, "books.update", http.MethodPut, fmt.Sprintf("/books/%d", id), nil, input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a book. Deleting an id that no longer exists fails with
// catalog.ErrNotFound, which callers surface as an error rather than a
// silent no-op.
func (c *BookClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "books.delete", http.MethodDelete, fmt.Sprintf("/books/%d", id), nil, nil, nil)
}

var _ catalog.Service = (*BookClient)(nil)
