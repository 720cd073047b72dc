package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	financeapp "github.com/takibi/backend/internal/application/finance"
	litigationapp "github.com/takibi/backend/internal/application/litigation"
	refreshapp "github.com/takibi/backend/internal/application/refresh"
	taskapp "github.com/takibi/backend/internal/application/task"
	"github.com/takibi/backend/internal/infrastructure/config"
	"github.com/takibi/backend/internal/infrastructure/logger"
	"github.com/takibi/backend/internal/infrastructure/migration"
	"github.com/takibi/backend/internal/infrastructure/persistence"
	"github.com/takibi/backend/internal/interfaces/http/handler"
	"github.com/takibi/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TakibiEsasi bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.HTTP.Port),
	)

	// Resolve the store location and connect
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		log.Fatal("Failed to resolve database path", zap.Error(err))
	}
	db, err := persistence.NewDatabase(dbPath, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database opened", zap.String("path", dbPath))

	// Bring the schema up to date before anything touches it
	if err := migration.New(db.DB, log).Bootstrap(); err != nil {
		log.Fatal("Failed to bootstrap schema", zap.Error(err))
	}

	// Initialize application services
	caseService := litigationapp.NewCaseService(db.DB, cfg.App.User, log)
	financeService := financeapp.NewService(db.DB, cfg.App.User, log)
	externalFinanceService := financeapp.NewExternalService(db.DB, cfg.App.User, log)
	taskService := taskapp.NewService(db.DB, cfg.App.User, log)

	// Change-log poller. The HTTP bridge is stateless, so a drain that
	// found movement is only logged; clients re-fetch after posting to
	// /refresh/drain.
	changeLog := persistence.NewGormChangeLogRepository(db.DB)
	poller := refreshapp.NewPoller(changeLog, func(sections persistence.ChangedSections) {
		log.Info("Change log drained",
			zap.Bool("cases", sections.Cases),
			zap.Bool("tasks", sections.Tasks),
			zap.Bool("finance", sections.Finance),
		)
	}, cfg.Refresh.PollInterval, log)
	if cfg.Refresh.Enabled {
		poller.Start(context.Background())
		defer poller.Stop()
		log.Info("Change-log poller started",
			zap.Duration("interval", cfg.Refresh.PollInterval))
	}

	// Initialize HTTP handlers
	caseHandler := handler.NewCaseHandler(caseService)
	financeHandler := handler.NewFinanceHandler(financeService, "/finance")
	externalFinanceHandler := handler.NewFinanceHandler(externalFinanceService, "/external-finance")
	taskHandler := handler.NewTaskHandler(taskService)
	refreshHandler := handler.NewRefreshHandler(poller)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	handler.SetupValidator()

	engine := gin.New()
	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(caseHandler).
		Register(financeHandler).
		Register(externalFinanceHandler).
		Register(taskHandler).
		Register(refreshHandler)
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}

// healthHandler reports whether the store answers a ping.
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
