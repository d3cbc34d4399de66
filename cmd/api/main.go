package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/voxly/docs"
	pkgvalidator "github.com/johnquangdev/voxly/pkg/validator"

	"github.com/johnquangdev/voxly/internal/adapter/handler"
	"github.com/johnquangdev/voxly/internal/app"
	"github.com/johnquangdev/voxly/pkg/config"
)

// @title           Voxly API
// @version         1.0
// @description     Transcribe audio or take text, analyze it into a structured briefing and export the report.

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.AI.APIKey == "" {
		logger.Warn("API key not detected; remote calls will fail until one of the key variables is set",
			zap.Strings("checked", config.APIKeyNames))
	} else {
		logger.Info("API key detected", zap.String("status", cfg.KeyStatus()), zap.String("source", cfg.AI.APIKeySource))
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// Assign X-Request-ID
	e.Use(middleware.RequestID())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Uploads are bounded before they reach the handler
	e.Use(middleware.BodyLimit(bodyLimit(cfg.Server.MaxUploadMB)))

	// Initialize dependencies
	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize providers", zap.Error(err))
	}
	defer application.Close()

	sessions, err := application.NewSessionManager()
	if err != nil {
		logger.Fatal("Failed to initialize session store", zap.Error(err))
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	sessions.StartJanitor(janitorCtx, time.Minute)

	briefingHandler := handler.NewBriefing(sessions, cfg, logger)

	router := handler.NewRouter(cfg, briefingHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		logger.Info("Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("health", "http://"+addr+"/health"),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// bodyLimit leaves room for base64 inflation of JSON audio payloads
func bodyLimit(maxUploadMB int) string {
	return strconv.Itoa(maxUploadMB*4/3+1) + "M"
}
