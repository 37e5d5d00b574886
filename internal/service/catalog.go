package service

import (
	"context"
	"errors"

	"github.com/revollution/storefront/internal/cache"
	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

type Catalog struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCatalog(repo repository.ProductRepository, cache cache.ProductCache) *Catalog {
	return &Catalog{
		repo:  repo,
		cache: cache,
	}
}

// Product looks a product up by hex id or slug. Unknown products return a
// KindNotFound error wrapping ErrUnknownProduct.
func (c *Catalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	v, err, _ := c.sfg.Do(id, func() (interface{}, error) {
		product, err := c.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("product", id).Msg("product cache get failed")
		}

		product, err = c.lookup(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.WrapError(domain.KindNotFound, "Product not found", ErrUnknownProduct)
		}
		if err != nil {
			return nil, err
		}

		go func() {
			if err := c.cache.Set(context.Background(), id, product); err != nil {
				log.Warn().Err(err).Str("product", id).Msg("product cache set failed")
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (c *Catalog) Products(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	return c.repo.ListProducts(ctx, filter)
}

func (c *Catalog) lookup(ctx context.Context, id string) (*domain.Product, error) {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return c.repo.GetProductByID(ctx, oid)
	}
	return c.repo.GetProductBySlug(ctx, id)
}
