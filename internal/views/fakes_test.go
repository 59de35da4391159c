package views

import (
	"context"
	"errors"

	"bookshelf/internal/catalog"
	"bookshelf/internal/reviews"
)

var errBoom = errors.New("connection refused")

// fakeBooks implements catalog.Service with overridable behavior and call
// counters.
type fakeBooks struct {
	listFn   func(ctx context.Context) ([]catalog.Book, error)
	searchFn func(ctx context.Context, filter catalog.SearchFilter) ([]catalog.Book, error)
	getFn    func(ctx context.Context, id int64) (*catalog.Book, error)
	createFn func(ctx context.Context, input catalog.BookInput) (*catalog.Book, error)
	updateFn func(ctx context.Context, id int64, input catalog.BookInput) (*catalog.Book, error)
	deleteFn func(ctx context.Context, id int64) error

	listCalls   int
	searchCalls int
	getCalls    int
	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakeBooks) List(ctx context.Context) ([]catalog.Book, error) {
	f.listCalls++
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *fakeBooks) Search(ctx context.Context, filter catalog.SearchFilter) ([]catalog.Book, error) {
	f.searchCalls++
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, filter)
}

func (f *fakeBooks) Get(ctx context.Context, id int64) (*catalog.Book, error) {
	f.getCalls++
	if f.getFn == nil {
		return nil, catalog.ErrNotFound
	}
	return f.getFn(ctx, id)
}

func (f *fakeBooks) Create(ctx context.Context, input catalog.BookInput) (*catalog.Book, error) {
	f.createCalls++
	if f.createFn == nil {
		return nil, errBoom
	}
	return f.createFn(ctx, input)
}

func (f *fakeBooks) Update(ctx context.Context, id int64, input catalog.BookInput) (*catalog.Book, error) {
	f.updateCalls++
	if f.updateFn == nil {
		return nil, errBoom
	}
	return f.updateFn(ctx, id, input)
}

func (f *fakeBooks) Delete(ctx context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

var _ catalog.Service = (*fakeBooks)(nil)

// fakeReviews implements reviews.Service the same way.
type fakeReviews struct {
	listAllFn func(ctx context.Context) ([]reviews.Review, error)
	createFn  func(ctx context.Context, input reviews.ReviewInput) (*reviews.Review, error)
	deleteFn  func(ctx context.Context, id int64) error

	listAllCalls int
	createCalls  int
	deleteCalls  int
}

func (f *fakeReviews) ListAll(ctx context.Context) ([]reviews.Review, error) {
	f.listAllCalls++
	if f.listAllFn == nil {
		return nil, nil
	}
	return f.listAllFn(ctx)
}

func (f *fakeReviews) Create(ctx context.Context, input reviews.ReviewInput) (*reviews.Review, error) {
	f.createCalls++
	if f.createFn == nil {
		return nil, errBoom
	}
	return f.createFn(ctx, input)
}

func (f *fakeReviews) Delete(ctx context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

var _ reviews.Service = (*fakeReviews)(nil)
