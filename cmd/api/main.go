package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plateup/backend/config"
	"github.com/plateup/backend/internal/api"
	"github.com/plateup/backend/internal/database"
	"github.com/plateup/backend/internal/middleware"
	"github.com/plateup/backend/internal/router"
	"github.com/plateup/backend/internal/server"
	"github.com/plateup/backend/internal/service"
	"github.com/plateup/backend/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure S3")
	}

	sessions := database.NewRedisSessionStore(redisClient)
	authService := service.NewAuthService(db, sessions, cfg.JWTSecret, cfg.SessionTTL)
	recipeService := service.NewRecipeService(db)
	profileService := service.NewProfileService(db)
	imageService := service.NewImageService(s3cfg, cfg.UploadMaxBytes)

	rateLimiter := middleware.NewRecipeCreationRateLimiter(redisClient)

	handlers := router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Recipes: api.NewRecipeHandler(recipeService, authService, rateLimiter),
		Profile: api.NewProfileHandler(profileService, authService),
		Images:  api.NewImageHandler(imageService),
	}

	engine := router.SetupRouter(handlers, cfg.AllowedOrigins, log)
	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
