package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uptime_monitor/internal/config"
	"uptime_monitor/internal/handler"
	"uptime_monitor/internal/logger"
	"uptime_monitor/internal/middleware"
	"uptime_monitor/internal/repository"
	"uptime_monitor/internal/service"
	"uptime_monitor/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.New("uptime-monitor")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	gin.SetMode(cfg.GinMode)

	// --- Storage ---
	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize data directory")
	}
	log.Info().Str("data_dir", cfg.DataDir).Int("max_checks", cfg.MaxChecks).Msg("Storage initialized")

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(store)
	tokenRepo := repository.NewTokenRepository(store)
	checkRepo := repository.NewCheckRepository(store)

	// --- Initialize Services ---
	tokenService := service.NewTokenService(tokenRepo, userRepo)
	userService := service.NewUserService(userRepo, tokenService)
	checkService := service.NewCheckService(checkRepo, userRepo, tokenRepo, tokenService, cfg.MaxChecks)

	// --- Initialize Handlers ---
	userHandler := handler.NewUserHandler(userService, log)
	tokenHandler := handler.NewTokenHandler(tokenService, log)
	checkHandler := handler.NewCheckHandler(checkService, log)

	// --- Setup Gin Router ---
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.TokenExtractor())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// --- Register Routes ---
	root := router.Group("")
	userHandler.RegisterUserRoutes(root)
	tokenHandler.RegisterTokenRoutes(root)
	checkHandler.RegisterCheckRoutes(root)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to listen")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
