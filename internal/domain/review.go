package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultReviewEmail = "anonymous@revollution.com"
	DefaultRating      = 5
	MinRating          = 1
	MaxRating          = 5
	MaxCommentLength   = 1000
	RecentReviewsLimit = 10
)

type Review struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Rating           int                `bson:"rating" json:"rating"`
	Comment          string             `bson:"comment" json:"comment"`
	Product          string             `bson:"product,omitempty" json:"product,omitempty"`
	VerifiedPurchase bool               `bson:"verified_purchase" json:"verifiedPurchase"`
	HelpfulCount     int                `bson:"helpful_count" json:"helpfulCount"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ClampRating forces a rating into [MinRating, MaxRating].
func ClampRating(rating int) int {
	return min(max(rating, MinRating), MaxRating)
}
