package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"github.com/oakencore/gringotts/internal/app"
	"github.com/oakencore/gringotts/internal/config"
	"github.com/oakencore/gringotts/internal/pkg/metrics"
	"github.com/oakencore/gringotts/internal/pkg/utils"
	"github.com/oakencore/gringotts/internal/restapi"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	// API keys live in the environment; a .env file is optional.
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on the process environment")
	}

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warnf("Failed to load configuration from %s, using defaults: %v", cfgPath, err)
		cfg = config.Default()
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegister()

	queryService, _, err := app.BuildQueryService(cfg, utils.GetEnv("ADDRESS_BOOK_PATH", ""), zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to build query service", zap.Error(err))
	}
	zapLogger.Info("QueryService initialized")

	portfolioHandler := restapi.NewPortfolioHandler(queryService)
	router := restapi.SetupRouter(portfolioHandler, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
