package generator

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// defaultSimulationURL is returned when no canned result exists for
// the garment.
const defaultSimulationURL = "https://images.unsplash.com/photo-1583743814966-8936f5b7be1a?w=800"

// SimulationStore looks up a canned result image for a garment name.
type SimulationStore interface {
	ResultURL(ctx context.Context, productName string) (string, bool, error)
}

// SimulationGenerator is the database-backed fallback double of the
// real generator: it answers from a lookup table of canned results
// instead of invoking the model. Selected via TRYON_PROVIDER=simulation
// and used directly in tests; it is not a second production component.
type SimulationGenerator struct {
	store SimulationStore
	delay time.Duration
}

// NewSimulationGenerator wraps a simulation store. The delay imitates
// the model's processing time; pass zero in tests.
func NewSimulationGenerator(store SimulationStore, delay time.Duration) *SimulationGenerator {
	return &SimulationGenerator{store: store, delay: delay}
}

// Generate returns the canned result for the garment, or a fixed
// placeholder image when the table has no match.
func (g *SimulationGenerator) Generate(ctx context.Context, userPhotoURL, garmentImageURL, garmentName string) (string, error) {
	if err := validateImageURL(userPhotoURL); err != nil {
		return "", fmt.Errorf("%w: user photo: %v", ErrInvalidInput, err)
	}
	if err := validateImageURL(garmentImageURL); err != nil {
		return "", fmt.Errorf("%w: garment image: %v", ErrInvalidInput, err)
	}

	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrGenerator, ctx.Err())
		}
	}

	resultURL, ok, err := g.store.ResultURL(ctx, garmentName)
	if err != nil || !ok {
		return defaultSimulationURL, nil
	}
	return resultURL, nil
}

// MongoSimulations reads the simulations collection, matching product
// names case-insensitively on substring like the original lookup.
type MongoSimulations struct {
	coll *mongo.Collection
}

// NewMongoSimulations wraps the given simulations collection.
func NewMongoSimulations(coll *mongo.Collection) *MongoSimulations {
	return &MongoSimulations{coll: coll}
}

// ResultURL finds a canned result_url for the product name.
func (m *MongoSimulations) ResultURL(ctx context.Context, productName string) (string, bool, error) {
	filter := bson.M{"product_name": primitive.Regex{
		Pattern: regexp.QuoteMeta(productName),
		Options: "i",
	}}

	var doc struct {
		ResultURL string `bson:"result_url"`
	}
	err := m.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.ResultURL, true, nil
}
