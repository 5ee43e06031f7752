package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mobilev/server/adapters/blob"
	"github.com/mobilev/server/adapters/codec"
	mongodb "github.com/mobilev/server/adapters/mongo"
	"github.com/mobilev/server/adapters/stt"
	"github.com/mobilev/server/adapters/wordcloud"
	"github.com/mobilev/server/internal/api"
	"github.com/mobilev/server/internal/auth"
	"github.com/mobilev/server/internal/config"
	"github.com/mobilev/server/internal/jobs"
	"github.com/mobilev/server/usecase"
)

func main() {
	// Load .env if present; real deployments use environment variables
	_ = godotenv.Load()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	auth.Configure(cfg.JWTSecret)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Persistence
	mongoClient, err := mongodb.NewClient(logger)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}

	analysisRepo := mongodb.NewAnalysisRepository(mongoClient.Database)
	shareRepo := mongodb.NewShareRepository(mongoClient.Database)
	credentialRepo := mongodb.NewCredentialRepository(mongoClient.Database)
	userRepo := mongodb.NewUserRepository(mongoClient.Database)

	// Pipeline adapters
	transcriber, err := stt.New(cfg.STTProvider, cfg.STTTimeout, cfg.STTLanguage, logger)
	if err != nil {
		logger.Fatal("failed to initialize transcriber", zap.Error(err))
	}
	converter := codec.NewFFmpegConverter(logger)
	renderer, err := wordcloud.NewRenderer(cfg.WordCloudFontFile, logger)
	if err != nil {
		logger.Fatal("failed to initialize word cloud renderer", zap.Error(err))
	}
	blobStore, err := blob.NewEncryptedFileStore(cfg.BlobEncryptionKey)
	if err != nil {
		logger.Fatal("failed to initialize blob store", zap.Error(err))
	}

	analysisService := usecase.NewAnalysisService(
		converter, transcriber, renderer, blobStore,
		analysisRepo, shareRepo, credentialRepo, mongoClient,
		cfg.SharesDir, cfg.STTTimeout, logger,
	)

	// Background workers
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	dispatcher := jobs.NewDispatcher(cfg.JobWorkers, cfg.JobQueueSize, logger)
	dispatcher.Start(jobCtx)

	// Initialize API routes
	api.InitRoutes(e, analysisService, dispatcher, userRepo, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Drain in-flight analyses before dropping their context
	dispatcher.Stop()
	cancelJobs()

	if err := mongoClient.Close(ctx); err != nil {
		logger.Error("failed to close MongoDB connection", zap.Error(err))
	}

	logger.Info("Server exited")
}
