package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commCoach/app/echo-server/router"
	"commCoach/business/engine"
	reportService "commCoach/business/report"
	"commCoach/domain"
	"commCoach/internal/middleware"
	psqlRepo "commCoach/internal/repository/postgres"
	"commCoach/internal/rest"
	"commCoach/pkg/config"
	"commCoach/pkg/database"
	"commCoach/pkg/logger"
	"commCoach/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Communication Coach", "version", cfg.App.Version, "profile", cfg.Engine.Profile)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if err := db.AutoMigrate(&domain.SessionReportRecord{}, &domain.ScoringConfigRecord{}); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	scoringCfg, err := engine.LoadProfile(cfg.Engine.Profile, cfg.Engine.ProfilesPath)
	if err != nil {
		logger.Fatal("Failed to load scoring profile", "error", err)
	}

	// Init repo
	reportRepo := psqlRepo.NewReportRepository(db)
	scoringCfgRepo := psqlRepo.NewScoringConfigRepository(db)

	// Init service
	engineService := engine.NewEngineService(scoringCfg, reportRepo, scoringCfgRepo)
	reportsService := reportService.NewReportService(reportRepo)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := engineService.RestoreConfig(startupCtx); err != nil {
		logger.Warn("Could not restore stored config, using profile defaults", "error", err)
	}
	startupCancel()

	// Init handler
	authHandler := rest.NewAuthHandler(cfg.JWT.SecretKey, cfg.Auth.OperatorKeyHash)
	sessionHandler := rest.NewSessionHandler(engineService)
	reportHandler := rest.NewReportHandler(reportsService)
	configHandler := rest.NewConfigHandler(engineService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(middleware.TraceID())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler)
	router.SetupSessionRoutes(api, sessionHandler)
	router.SetupReportRoutes(api, reportHandler, authRequired)
	router.SetupConfigRoutes(api, configHandler, authRequired, adminOnly)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
