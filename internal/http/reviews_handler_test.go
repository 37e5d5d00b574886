package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateReview_Success(t *testing.T) {
	review := &domain.Review{
		ID:        primitive.NewObjectID(),
		Name:      "Ana",
		Rating:    5,
		Comment:   "Lovely",
		Email:     "ana@x.io",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	handler := NewReviewsHandler(&ReviewServiceMock{review: review}, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"name":"Ana","comment":"Lovely"}`))

	handler.CreateReview(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeEnvelope(t, recorder)
	assert.Equal(t, "Review submitted successfully", body.Message)

	var data map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, review.ID.Hex(), data["id"])
	assert.Equal(t, float64(5), data["rating"])
	assert.NotContains(t, data, "email")
}

func TestCreateReview_MissingFields(t *testing.T) {
	mock := &ReviewServiceMock{err: domain.NewError(domain.KindMissingFields, "Name and comment are required")}
	handler := NewReviewsHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"name":"Ana"}`))

	handler.CreateReview(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeEnvelope(t, recorder)
	assert.Equal(t, "Name and comment are required", body.Message)
}

func TestCreateReview_FractionalRatingDecodes(t *testing.T) {
	mock := &ReviewServiceMock{review: &domain.Review{ID: primitive.NewObjectID(), Name: "Ana", Rating: 5, Comment: "Lovely"}}
	handler := NewReviewsHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"name":"Ana","comment":"Lovely","rating":7.5}`))

	handler.CreateReview(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, mock.created)
	require.NotNil(t, mock.created.Rating)
	assert.Equal(t, 7.5, *mock.created.Rating)
}

func TestCreateReview_MalformedBody(t *testing.T) {
	handler := NewReviewsHandler(&ReviewServiceMock{}, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"name":`))

	handler.CreateReview(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Invalid request body", decodeEnvelope(t, recorder).Message)
}

func TestListReviews_UsesReviewsKey(t *testing.T) {
	mock := &ReviewServiceMock{reviews: []*domain.Review{{Name: "Ana", Rating: 4, Comment: "Nice"}}}
	handler := NewReviewsHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()

	handler.ListReviews(recorder, httptest.NewRequest("GET", "/reviews", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Success bool            `json:"success"`
		Reviews []domain.Review `json:"reviews"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Reviews, 1)
	assert.Equal(t, "Nice", body.Reviews[0].Comment)
}

func TestListReviews_Failure(t *testing.T) {
	mock := &ReviewServiceMock{err: domain.NewError(domain.KindUnknown, "failed to list reviews")}
	handler := NewReviewsHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()

	handler.ListReviews(recorder, httptest.NewRequest("GET", "/reviews", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decodeEnvelope(t, recorder)
	assert.Equal(t, "Failed to fetch reviews", body.Message)
}
