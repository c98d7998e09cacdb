package recorder

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/styleshop/fitting-room/models"
)

// MemoryStore implements Store with in-memory storage. It backs tests
// and deployments without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	results []models.UserResult
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert appends one result record.
func (s *MemoryStore) Insert(_ context.Context, result models.UserResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.ID.IsZero() {
		result.ID = primitive.NewObjectID()
	}
	s.results = append(s.results, result)
	return nil
}

// Newest returns results newest-first with the total count.
func (s *MemoryStore) Newest(_ context.Context, page, limit int) ([]models.UserResult, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Insertion order is chronological; walk it backwards.
	reversed := make([]models.UserResult, 0, len(s.results))
	for i := len(s.results) - 1; i >= 0; i-- {
		reversed = append(reversed, s.results[i])
	}

	start := (page - 1) * limit
	if start >= len(reversed) {
		return []models.UserResult{}, int64(len(s.results)), nil
	}
	end := start + limit
	if end > len(reversed) {
		end = len(reversed)
	}
	return reversed[start:end], int64(len(s.results)), nil
}

// FeedbackCounts aggregates like/dislike totals.
func (s *MemoryStore) FeedbackCounts(_ context.Context) (models.FeedbackStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.FeedbackStats
	for _, r := range s.results {
		switch r.Feedback {
		case models.FeedbackLike:
			stats.Likes++
		case models.FeedbackDislike:
			stats.Dislikes++
		}
	}
	stats.Total = stats.Likes + stats.Dislikes
	return stats, nil
}

// PopularProducts ranks product names by try frequency.
func (s *MemoryStore) PopularProducts(_ context.Context, limit int) ([]models.ProductTries, error) {
	if limit < 1 {
		limit = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.results))
	for i, r := range s.results {
		names[i] = r.ProductName
	}
	return rankProducts(names, limit), nil
}
