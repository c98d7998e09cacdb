// Package recorder persists completed try-on results with their
// feedback and answers the analytics queries over them.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/styleshop/fitting-room/models"
)

// ErrPersistence reports a failed result write. It is non-blocking for
// the user: the result is already on screen whether or not the write
// lands.
var ErrPersistence = errors.New("failed to save result")

// Store is the persistence boundary for try-on results. Writes are
// append-only; nothing is ever updated in place.
type Store interface {
	Insert(ctx context.Context, result models.UserResult) error
	Newest(ctx context.Context, page, limit int) ([]models.UserResult, int64, error)
	FeedbackCounts(ctx context.Context) (models.FeedbackStats, error)
	PopularProducts(ctx context.Context, limit int) ([]models.ProductTries, error)
}

// Recorder writes one terminal record per completed feedback.
type Recorder struct {
	store Store
}

// New wraps a store.
func New(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record appends the (user photo, garment, result, feedback) tuple.
func (r *Recorder) Record(ctx context.Context, userPhotoURL, productURL, productName, resultURL string, feedback models.Feedback) error {
	if !feedback.Valid() {
		return fmt.Errorf("%w: feedback must be like or dislike, got %q", ErrPersistence, feedback)
	}

	result := models.UserResult{
		UserPhotoURL: userPhotoURL,
		ProductURL:   productURL,
		ProductName:  productName,
		ResultURL:    resultURL,
		Feedback:     feedback,
		CreatedAt:    time.Now(),
	}
	if err := r.store.Insert(ctx, result); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Store exposes the underlying store for the query endpoints.
func (r *Recorder) Store() Store {
	return r.store
}
