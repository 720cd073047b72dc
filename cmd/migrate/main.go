package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/takibi/backend/internal/infrastructure/config"
	"github.com/takibi/backend/internal/infrastructure/logger"
	"github.com/takibi/backend/internal/infrastructure/migration"
	"github.com/takibi/backend/internal/infrastructure/persistence"
)

// Standalone schema bootstrap. Runs the same versioned steps and
// maintenance passes as server startup, then exits.
func main() {
	var (
		dbPath   string
		logLevel string
	)
	flag.StringVar(&dbPath, "db", "", "Path to the SQLite store (default: from config)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.Log.Level = logLevel
	cfg.Log.Format = "console"

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	if dbPath == "" {
		dbPath, err = cfg.DatabasePath()
		if err != nil {
			log.Fatal("Failed to resolve database path", zap.Error(err))
		}
	}

	db, err := persistence.NewDatabase(dbPath, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := migration.New(db.DB, log).Bootstrap(); err != nil {
		log.Fatal("Bootstrap failed", zap.Error(err))
	}
	log.Info("Schema up to date", zap.String("path", dbPath))
}
