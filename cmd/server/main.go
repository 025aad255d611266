package main

import (
	"log"

	"github.com/cetprep/mocktest-service/internal/cache"
	"github.com/cetprep/mocktest-service/internal/config"
	"github.com/cetprep/mocktest-service/internal/handlers"
	"github.com/cetprep/mocktest-service/internal/repositories/postgres"
	"github.com/cetprep/mocktest-service/internal/services"
	"github.com/cetprep/mocktest-service/internal/utils"
	"github.com/cetprep/mocktest-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		log.Fatal(err)
	}
	if err := postgres.SeedCatalog(db); err != nil {
		logger.Error("Failed to seed catalog data", "error", err)
		log.Fatal(err)
	}

	var cacheSvc cache.CacheService = cache.NoopCache{}
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, running without test cache", "error", err)
	} else {
		cacheSvc = cache.NewRedisCache(redisClient)
	}

	publisher, err := cfg.Events.CreateEventPublisher(utils.ToSlogLogger(logger))
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		log.Fatal(err)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	validator := utils.NewValidator()
	serviceManager := services.NewServiceManager(repo, cacheSvc, publisher, validator, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, validator, logger)
	handlerManager.SetupRoutes(router)

	logger.Info("Starting mocktest service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
		log.Fatal(err)
	}
}
