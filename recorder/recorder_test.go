package recorder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshop/fitting-room/models"
)

func TestRecordThenNewestRoundTrip(t *testing.T) {
	rec := New(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, rec.Record(ctx, "https://u.example/me.jpg", "https://cdn.example/2.jpg",
		"Chaqueta de Cuero", "https://img.example/r.png", models.FeedbackLike))
	require.NoError(t, rec.Record(ctx, "https://u.example/me2.jpg", "https://cdn.example/1.jpg",
		"Camiseta Básica", "https://img.example/r2.png", models.FeedbackDislike))

	results, total, err := rec.Store().Newest(ctx, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, results, 1)
	newest := results[0]
	assert.Equal(t, "https://u.example/me2.jpg", newest.UserPhotoURL)
	assert.Equal(t, "Camiseta Básica", newest.ProductName)
	assert.Equal(t, "https://img.example/r2.png", newest.ResultURL)
	assert.Equal(t, models.FeedbackDislike, newest.Feedback)
	assert.False(t, newest.CreatedAt.IsZero())
}

func TestRecordRejectsInvalidFeedback(t *testing.T) {
	rec := New(NewMemoryStore())

	err := rec.Record(context.Background(), "u", "p", "n", "r", models.FeedbackNone)
	assert.ErrorIs(t, err, ErrPersistence)

	err = rec.Record(context.Background(), "u", "p", "n", "r", models.Feedback("maybe"))
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestFeedbackCountsWithZeroRecords(t *testing.T) {
	store := NewMemoryStore()

	stats, err := store.FeedbackCounts(context.Background())
	require.NoError(t, err, "zero records is a valid answer, not an error")
	assert.Equal(t, models.FeedbackStats{Likes: 0, Dislikes: 0, Total: 0}, stats)
}

func TestFeedbackCountsAggregates(t *testing.T) {
	rec := New(NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, rec.Record(ctx, "u", "p", "Camiseta Básica", "r", models.FeedbackLike))
	}
	require.NoError(t, rec.Record(ctx, "u", "p", "Camiseta Básica", "r", models.FeedbackDislike))

	stats, err := rec.Store().FeedbackCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackStats{Likes: 3, Dislikes: 1, Total: 4}, stats)
}

func TestNewestPagination(t *testing.T) {
	rec := New(NewMemoryStore())
	ctx := context.Background()

	names := []string{"a", "b", "c", "d", "e"}
	for _, n := range names {
		require.NoError(t, rec.Record(ctx, "u", "p", n, "r", models.FeedbackLike))
	}

	page1, total, err := rec.Store().Newest(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "e", page1[0].ProductName)
	assert.Equal(t, "d", page1[1].ProductName)

	page3, _, err := rec.Store().Newest(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "a", page3[0].ProductName)

	empty, _, err := rec.Store().Newest(ctx, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPopularProductsRanking(t *testing.T) {
	rec := New(NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, rec.Record(ctx, "u", "p", "Chaqueta de Cuero", "r", models.FeedbackLike))
	}
	require.NoError(t, rec.Record(ctx, "u", "p", "Camiseta Básica", "r", models.FeedbackDislike))
	require.NoError(t, rec.Record(ctx, "u", "p", "Abrigo Elegante", "r", models.FeedbackLike))
	require.NoError(t, rec.Record(ctx, "u", "p", "Camiseta Básica", "r", models.FeedbackLike))

	ranked, err := rec.Store().PopularProducts(ctx, 2)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, models.ProductTries{Product: "Chaqueta de Cuero", Tries: 3}, ranked[0])
	assert.Equal(t, models.ProductTries{Product: "Camiseta Básica", Tries: 2}, ranked[1])
}

func TestRankProductsTiesKeepFirstSeenOrder(t *testing.T) {
	ranked := rankProducts([]string{"x", "y", "x", "y", "z"}, 5)

	require.Len(t, ranked, 3)
	assert.Equal(t, "x", ranked[0].Product)
	assert.Equal(t, "y", ranked[1].Product)
	assert.Equal(t, "z", ranked[2].Product)
}
