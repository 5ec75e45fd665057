package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"crypto-dashboard/backend"
	"crypto-dashboard/config"
	"crypto-dashboard/database"
	"crypto-dashboard/handlers"
	"crypto-dashboard/logger"
	"crypto-dashboard/metrics"
	"crypto-dashboard/middleware"
	"crypto-dashboard/storage"
)

func main() {
	cfg, err := config.Load("config")
	if err != nil {
		logger.Init("crypto-dashboard", "info", true)
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init("crypto-dashboard", cfg.Log.Level, cfg.Log.Pretty)
	logger.Info().Msg("Starting crypto dashboard service")

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is not set")
	}
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()

	// Initialize PostgreSQL and Redis connections.
	if err := config.InitDB(cfg.Database); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := config.InitRedis(ctx, cfg.Redis); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer config.Rdb.Close()

	if err := database.AutoMigrate(config.DB); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate models")
	}

	var layouts storage.KV
	switch cfg.Layout.Store {
	case "postgres":
		layouts = storage.NewDBKV(config.DB)
	default:
		layouts = storage.NewRedisKV(config.Rdb, "")
	}
	logger.Info().Str("store", cfg.Layout.Store).Msg("Dashboard layouts storage ready")

	client := backend.NewClient(cfg.Backend.GraphQLURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		backend.WithCache(storage.NewRedisKV(config.Rdb, "dashboard:cache:"), cfg.Backend.CacheTTL),
		backend.WithLogger(logger.Component("backend")),
	)
	h := handlers.New(layouts, client, database.NewSnapshotStore(config.DB, cfg.Backend.CacheTTL), logger.Component("handlers"))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Component("http")))

	// Public routes
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "crypto-dashboard"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Protected routes
	auth := router.Group("/")
	auth.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))
	h.Register(auth)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down crypto dashboard service")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
	}
}
