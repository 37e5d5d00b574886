package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const PasswordHashCost = 10

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

type LoginResult struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

type UserService struct {
	users    repository.UserRepository
	tokens   TokenIssuer
	validate *validator.Validate
}

func NewUserService(users repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Register creates a password account. An existing email is a
// KindDuplicateEmail error and leaves the stored user untouched.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	if err := requirePresent(s.validate, req, "All fields are required"); err != nil {
		return nil, err
	}

	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, domain.NewError(domain.KindDuplicateEmail, "User already exists with this email")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordHashCost)
	if err != nil {
		return nil, domain.WrapError(domain.KindInvalidInput, "Password cannot be hashed", err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if err := requirePresent(s.validate, req, "Email and password are required"); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewError(domain.KindUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if user.Federated() {
		return nil, domain.NewError(domain.KindUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.WrapError(domain.KindUnauthorized, "Invalid email or password", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &LoginResult{Token: token, User: user.Public()}, nil
}
