package recorder

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/styleshop/fitting-room/models"
)

// MongoStore keeps results in the user_results collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps the given results collection.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Insert appends one result record.
func (s *MongoStore) Insert(ctx context.Context, result models.UserResult) error {
	if result.ID.IsZero() {
		result.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, result)
	return err
}

// Newest returns results newest-first with the total count for
// pagination.
func (s *MongoStore) Newest(ctx context.Context, page, limit int) ([]models.UserResult, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})
	findOptions.SetSkip(int64((page - 1) * limit))
	findOptions.SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var results []models.UserResult
	if err = cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}
	if results == nil {
		results = []models.UserResult{}
	}
	return results, total, nil
}

// FeedbackCounts aggregates like/dislike totals. Zero records is a
// valid answer, not an error.
func (s *MongoStore) FeedbackCounts(ctx context.Context) (models.FeedbackStats, error) {
	likes, err := s.coll.CountDocuments(ctx, bson.M{"feedback": models.FeedbackLike})
	if err != nil {
		return models.FeedbackStats{}, err
	}
	dislikes, err := s.coll.CountDocuments(ctx, bson.M{"feedback": models.FeedbackDislike})
	if err != nil {
		return models.FeedbackStats{}, err
	}
	return models.FeedbackStats{Likes: likes, Dislikes: dislikes, Total: likes + dislikes}, nil
}

// PopularProducts ranks product names by how often they were tried.
func (s *MongoStore) PopularProducts(ctx context.Context, limit int) ([]models.ProductTries, error) {
	if limit < 1 {
		limit = 5
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})
	findOptions.SetProjection(bson.M{"product_name": 1})

	cursor, err := s.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ProductName string `bson:"product_name"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.ProductName
	}
	return rankProducts(names, limit), nil
}

// rankProducts counts name frequencies and returns the top entries,
// most-tried first. Ties keep first-seen order for a stable ranking.
func rankProducts(names []string, limit int) []models.ProductTries {
	counts := make(map[string]int)
	var order []string
	for _, name := range names {
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	ranked := make([]models.ProductTries, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, models.ProductTries{Product: name, Tries: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Tries > ranked[j].Tries
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
