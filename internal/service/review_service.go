package service

import (
	"context"
	"math"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
)

type CreateReviewRequest struct {
	Name    string   `json:"name" validate:"required"`
	Comment string   `json:"comment" validate:"required"`
	Rating  *float64 `json:"rating"`
	Product string   `json:"product"`
	Email   string   `json:"email"`
}

type ReviewService struct {
	reviews  repository.ReviewRepository
	validate *validator.Validate
}

func NewReviewService(reviews repository.ReviewRepository) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		validate: validator.New(),
	}
}

// CreateReview stores an unverified review. A missing rating counts as 5; any
// other rating is rounded to the nearest star and clamped into 1..5.
func (s *ReviewService) CreateReview(ctx context.Context, req *CreateReviewRequest) (*domain.Review, error) {
	if err := requirePresent(s.validate, req, "Name and comment are required"); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(req.Comment) > domain.MaxCommentLength {
		return nil, domain.NewError(domain.KindInvalidInput, "Comment cannot be more than 1000 characters")
	}

	rating := domain.DefaultRating
	if req.Rating != nil {
		rating = roundRating(*req.Rating)
	}
	email := req.Email
	if email == "" {
		email = domain.DefaultReviewEmail
	}

	review := &domain.Review{
		Name:             req.Name,
		Email:            email,
		Rating:           domain.ClampRating(rating),
		Comment:          req.Comment,
		Product:          req.Product,
		VerifiedPurchase: false,
		HelpfulCount:     0,
	}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListRecent(ctx context.Context) ([]*domain.Review, error) {
	return s.reviews.ListRecentReviews(ctx, domain.RecentReviewsLimit)
}

func roundRating(v float64) int {
	switch {
	case math.IsNaN(v):
		return domain.DefaultRating
	case v > domain.MaxRating:
		return domain.MaxRating
	case v < domain.MinRating:
		return domain.MinRating
	}
	return int(math.Round(v))
}
