package cache

import (
	"context"
	"errors"

	"github.com/revollution/storefront/internal/domain"
)

type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, id string, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

var ErrCacheMiss = errors.New("cache miss")
