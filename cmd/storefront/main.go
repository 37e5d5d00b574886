package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/revollution/storefront/internal/auth"
	"github.com/revollution/storefront/internal/cache"
	"github.com/revollution/storefront/internal/cart"
	"github.com/revollution/storefront/internal/config"
	h "github.com/revollution/storefront/internal/http"
	"github.com/revollution/storefront/internal/notification"
	"github.com/revollution/storefront/internal/publisher"
	"github.com/revollution/storefront/internal/repository"
	"github.com/revollution/storefront/internal/service"
	"github.com/revollution/storefront/pkg/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup("storefront", cfg.LogLevel, cfg.AppEnv)
	log.Info().Str("env", cfg.AppEnv).Msg("storefront starting...")

	var wg sync.WaitGroup

	// Database setup
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := repository.ConnectMongoDB(connectCtx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		connectCancel()
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	orderRepo := repository.NewOrderRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	productRepo := repository.NewProductRepository(db)

	if err := repository.EnsureIndexes(connectCtx, orderRepo, outboxRepo, userRepo, reviewRepo, productRepo); err != nil {
		connectCancel()
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	connectCancel()
	log.Info().Str("database", cfg.MongoDBName).Msg("MongoDB connected")

	// Redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, cache and carts will fail until it recovers")
	}
	pingCancel()

	// Services
	catalog := service.NewCatalog(productRepo, cache.NewRedisCache(redisClient))
	var pricing service.ProductLookup
	if cfg.PriceFromCatalog {
		pricing = catalog
	}
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiry)
	orderService := service.NewOrderService(orderRepo, outboxRepo, pricing)
	userService := service.NewUserService(userRepo, tokens)
	reviewService := service.NewReviewService(reviewRepo)

	// Outbox poller
	writer := publisher.NewWriter(cfg.KafkaBrokers...)
	poller := publisher.NewOutboxPoller(outboxRepo, orderRepo, writer)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Run(workerCtx)
	}()

	// Notification worker
	var sender notification.Sender = notification.LogSender{}
	if cfg.SMTPEnabled() {
		sender = notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	} else {
		log.Warn().Msg("SMTP_HOST not set, confirmation emails will only be logged")
	}
	consumer := notification.NewConsumer(orderRepo, notification.NewBreakerSender(sender), notification.NewReader(cfg.KafkaBrokers...))
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Run(workerCtx)
	}()

	// HTTP server
	router := h.NewRouter(h.Handlers{
		Orders:   h.NewOrdersHandler(orderService, cfg.RequestTimeout),
		Reviews:  h.NewReviewsHandler(reviewService, cfg.RequestTimeout),
		Users:    h.NewUsersHandler(userService, cfg.RequestTimeout),
		Products: h.NewProductsHandler(catalog, cfg.RequestTimeout),
		Cart:     h.NewCartHandler(cart.NewRedisStorage(redisClient), orderService, cfg.RequestTimeout),
	}, tokens, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down storefront...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	workerCancel()

	doneChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneChan)
	}()

	select {
	case <-doneChan:
		log.Info().Msg("background workers stopped cleanly")
	case <-shutdownCtx.Done():
		log.Warn().Msg("background workers didn't stop in time")
	}

	poller.Close()
	consumer.Close()
	if err := redisClient.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close redis client")
	}
	disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer disconnectCancel()
	if err := db.Client().Disconnect(disconnectCtx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect MongoDB")
	}
	log.Info().Msg("storefront stopped")
}
