package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/revollution/storefront/internal/cache"
	"github.com/revollution/storefront/internal/config"
	"github.com/revollution/storefront/internal/repository"
	"github.com/revollution/storefront/pkg/logger"
	"github.com/rs/zerolog/log"
)

// seed upserts the launch catalog by slug, so it can be re-run without
// changing product ids, and drops any cached copies.
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup("storefront-seed", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect MongoDB")
		}
	}()

	products := repository.NewProductRepository(db)
	if err := repository.EnsureIndexes(ctx, products); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer redisClient.Close()
	productCache := cache.NewRedisCache(redisClient)

	for i := range sampleProducts {
		p := &sampleProducts[i]
		if err := products.UpsertProduct(ctx, p); err != nil {
			log.Fatal().Err(err).Str("slug", p.Slug).Msg("failed to seed product")
		}
		for _, key := range []string{p.ID.Hex(), p.Slug} {
			if err := productCache.Delete(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to invalidate cached product")
			}
		}
		log.Info().Str("name", p.Name).Str("category", string(p.Category)).Float64("price", p.Price).Msg("seeded product")
	}

	log.Info().Int("count", len(sampleProducts)).Msg("catalog seeded")
}
