// internal/catalog/service.go
package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the book service reports no book with the
// requested id. A delete of an already-deleted id fails with this error
// rather than succeeding silently.
var ErrNotFound = errors.New("book not found")

// Service defines the operations the book service exposes. The HTTP client
// in internal/clients implements it; views depend only on this interface.
type Service interface {
	List(ctx context.Context) ([]Book, error)
	Search(ctx context.Context, filter SearchFilter) ([]Book, error)
	Get(ctx context.Context, id int64) (*Book, error)
	Create(ctx context.Context, input BookInput) (*Book, error)
	Update(ctx context.Context, id int64, input BookInput) (*Book, error)
	Delete(ctx context.Context, id int64) error
}
