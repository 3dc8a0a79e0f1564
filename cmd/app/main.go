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

	"printshop/cmd"
	"printshop/internal/adapters/out/postgres"
	"printshop/internal/adapters/out/rediscache"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configs := getConfigs()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	var redisClient redis.UniversalClient
	if configs.RedisAddress != "" {
		client, redisErr := rediscache.NewClient(ctx, configs.RedisAddress)
		if redisErr != nil {
			log.Fatalf("Error connecting to redis: %v", redisErr)
		}
		defer client.Close()
		redisClient = client
	} else {
		logger.Warn("REDIS_ADDRESS is not set; running without priority cache and reconciliation lock")
	}

	capabilities, err := services.LoadRoleCapabilities(configs.RoleCapabilitiesFile)
	if err != nil {
		log.Fatalf("Error loading role capabilities: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, capabilities, metrics.New(), logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *logrus.Logger) {
	e := echo.New()
	e.HideBanner = true
	app.CreateHTTPServer().Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("http server shutdown failed")
	}
}
