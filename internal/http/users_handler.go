package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/service"
)

type AccountService interface {
	Register(ctx context.Context, req *service.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *service.LoginRequest) (*service.LoginResult, error)
}

type UsersHandler struct {
	users   AccountService
	timeout time.Duration
}

func NewUsersHandler(users AccountService, timeout time.Duration) *UsersHandler {
	return &UsersHandler{
		users:   users,
		timeout: timeout,
	}
}

// POST /users
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "All fields are required", "invalid request body")
		return
	}

	user, err := h.users.Register(ctx, &req)
	if err != nil {
		handleError(w, r, err, "Failed to create account")
		return
	}

	respondSuccess(w, "Account created successfully", user.Public())
}

// POST /auth/login
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Email and password are required", "invalid request body")
		return
	}

	result, err := h.users.Login(ctx, &req)
	if err != nil {
		handleError(w, r, err, "Failed to sign in")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
