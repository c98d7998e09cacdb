package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is the user's binary judgment on a try-on result.
type Feedback string

const (
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
	FeedbackNone    Feedback = "none"
)

// Valid reports whether f is a recordable feedback value.
func (f Feedback) Valid() bool {
	return f == FeedbackLike || f == FeedbackDislike
}

// UserResult is one completed try-on with its feedback. Records are
// append-only; once written they are never updated.
type UserResult struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserPhotoURL string             `bson:"user_photo_url" json:"user_photo_url"`
	ProductURL   string             `bson:"product_url" json:"product_url"`
	ProductName  string             `bson:"product_name" json:"product_name"`
	ResultURL    string             `bson:"result_url" json:"result_url"`
	Feedback     Feedback           `bson:"feedback" json:"feedback"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// ProductTries is an entry in the popular-products ranking.
type ProductTries struct {
	Product string `json:"product"`
	Tries   int    `json:"tries"`
}

// FeedbackStats aggregates like/dislike counts over all results.
type FeedbackStats struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
	Total    int64 `json:"total"`
}
