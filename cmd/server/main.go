package main // Entry point package

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/cache"
	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/logging"
	"github.com/iliyamo/shareit/internal/metrics"
	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/repository"
	"github.com/iliyamo/shareit/internal/router"
	"github.com/iliyamo/shareit/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("schema migration failed")
	}
	cancel()

	// Redis backs the entity cache and the rate limiter.  A nil client
	// disables both without failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn().Msg("redis unavailable, cache and rate limiting disabled")
	}
	entityCache := cache.New(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	items := repository.NewItemRepo(db)
	bookings := repository.NewBookingRepo(db)
	comments := repository.NewCommentRepo(db)
	requests := repository.NewRequestRepo(db)

	publisher := queue.NewPublisher(cfg.AmqpURL, logger)
	go queue.StartStatusConsumer(cfg.AmqpURL, logger)

	userSvc := service.NewUserService(users, entityCache, logger)
	itemSvc := service.NewItemService(items, users, bookings, comments, requests, entityCache, logger)
	bookingSvc := service.NewBookingService(bookings, items, users, entityCache, publisher, logger)
	requestSvc := service.NewRequestService(requests, items, users, logger)

	e := echo.New()
	e.HideBanner = true

	metrics.Register()
	e.Use(metrics.Middleware())
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterUsers(e, handler.NewUserHandler(userSvc))
	router.RegisterItems(e, handler.NewItemHandler(itemSvc))
	router.RegisterBookings(e, handler.NewBookingHandler(bookingSvc))
	router.RegisterRequests(e, handler.NewRequestHandler(requestSvc))

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
