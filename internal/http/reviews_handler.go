package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/service"
)

type ReviewService interface {
	CreateReview(ctx context.Context, req *service.CreateReviewRequest) (*domain.Review, error)
	ListRecent(ctx context.Context) ([]*domain.Review, error)
}

type ReviewsHandler struct {
	reviews ReviewService
	timeout time.Duration
}

func NewReviewsHandler(reviews ReviewService, timeout time.Duration) *ReviewsHandler {
	return &ReviewsHandler{
		reviews: reviews,
		timeout: timeout,
	}
}

type ReviewDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Product   string    `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type reviewsResponse struct {
	Success bool             `json:"success"`
	Reviews []*domain.Review `json:"reviews"`
}

// POST /reviews
func (h *ReviewsHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req service.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	review, err := h.reviews.CreateReview(ctx, &req)
	if err != nil {
		handleError(w, r, err, "Failed to submit review")
		return
	}

	respondSuccess(w, "Review submitted successfully", ReviewDTO{
		ID:        review.ID.Hex(),
		Name:      review.Name,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Product:   review.Product,
		CreatedAt: review.CreatedAt,
	})
}

// GET /reviews
func (h *ReviewsHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviews.ListRecent(ctx)
	if err != nil {
		handleError(w, r, err, "Failed to fetch reviews")
		return
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}

	respondJSON(w, http.StatusOK, reviewsResponse{Success: true, Reviews: reviews})
}
