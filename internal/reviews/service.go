// internal/reviews/service.go
package reviews

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the review service reports no review with
// the requested id.
var ErrNotFound = errors.New("review not found")

// Service defines the operations the review service exposes. ListAll
// returns every review in the system; callers filter per book with
// ForBook. A server-side per-book query can replace that without touching
// callers, since they only see this interface.
type Service interface {
	ListAll(ctx context.Context) ([]Review, error)
	Create(ctx context.Context, input ReviewInput) (*Review, error)
	Delete(ctx context.Context, id int64) error
}
