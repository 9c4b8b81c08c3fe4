package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cdnstack/content-service/internal/conf"
	"github.com/cdnstack/content-service/internal/content/biz"
	contentdata "github.com/cdnstack/content-service/internal/content/data"
	contentservice "github.com/cdnstack/content-service/internal/content/service"
	"github.com/cdnstack/content-service/internal/data"
	"github.com/cdnstack/content-service/internal/pkg/logger"
	"github.com/cdnstack/content-service/internal/server"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&config.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("config loaded successfully")

	// Initialize data layer
	d, cleanup, err := data.NewData(config, log)
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	// Initialize repository and cache
	contentRepo := contentdata.NewContentRepo(d.DB)

	var contentCache biz.ContentCache
	if config.Cache.Backend == conf.CacheBackendMemory {
		contentCache = contentdata.NewMemoryContentCache(config.Cache.Capacity)
	} else {
		contentCache = contentdata.NewRedisContentCache(d.RedisClient, log)
	}

	var fileStorage biz.FileStorage
	if d.MinIOClient != nil {
		fileStorage = contentdata.NewObjectStorage(d.MinIOClient, config.MinIO.Bucket)
	}

	// Initialize use case and service
	contentUseCase := biz.NewContentUseCase(contentRepo, contentCache, fileStorage, log)
	contentService := contentservice.NewContentService(contentUseCase, log)

	// Initialize server
	httpServer := server.NewHTTPServer(config, log, contentService)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
