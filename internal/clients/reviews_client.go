// internal/clients/reviews_client.go
package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bookshelf/internal/identity"
	"bookshelf/internal/reviews"
)

// ReviewClient implements reviews.Service against the remote review
// service.
type ReviewClient struct {
	api
}

func NewReviewClient(baseURL string, session *identity.Session, timeout time.Duration) *ReviewClient {
	return &ReviewClient{api: newAPI(baseURL, session, timeout, "reviews", reviews.ErrNotFound)}
}

// ListAll fetches every review in the system. The review service's
// per-book query proved unreliable, so callers filter client-side with
// reviews.ForBook.
func (c *ReviewClient) ListAll(ctx context.Context) ([]reviews.Review, error) {
	var all []reviews.Review
	if err := c.do(ctx, "reviews.list", http.MethodGet, "/reviews", nil, nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (c *ReviewClient) Create(ctx context.Context, input reviews.ReviewInput) (*reviews.Review, error) {
	var review reviews.Review
	if err := c.do(ctx, "reviews.create", http.MethodPost, "/reviews", nil, input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *ReviewClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "reviews.delete", http.MethodDelete, fmt.Sprintf("/reviews/%d", id), nil, nil, nil)
}

var _ reviews.Service = (*ReviewClient)(nil)
