package persistence

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/takibi/backend/internal/infrastructure/config"
)

// Database holds the store connection and provides transaction helpers.
// The application is a single local writer; the pool is pinned to one
// connection so the per-connection pragmas hold for every statement.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the SQLite store at the given path and applies the
// connection pragmas.
func NewDatabase(path string, cfg *config.DatabaseConfig) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_fk=1&_journal_mode=WAL&_synchronous=NORMAL", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := applyPragmas(db, cfg); err != nil {
		return nil, err
	}

	return &Database{DB: db}, nil
}

// NewMemoryDatabase opens an in-memory store for tests.
func NewMemoryDatabase() (*Database, error) {
	cfg := &config.DatabaseConfig{
		CacheSizeMB:       16,
		MmapSizeBytes:     0,
		WALAutocheckpoint: 1000,
		JournalSizeLimit:  64 << 20,
	}
	return NewDatabase(":memory:", cfg)
}

func applyPragmas(db *gorm.DB, cfg *config.DatabaseConfig) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA temp_store = MEMORY",
		// negative cache_size means KiB of page cache
		fmt.Sprintf("PRAGMA cache_size = -%d", cfg.CacheSizeMB*1024),
		fmt.Sprintf("PRAGMA mmap_size = %d", cfg.MmapSizeBytes),
		fmt.Sprintf("PRAGMA wal_autocheckpoint = %d", cfg.WALAutocheckpoint),
		fmt.Sprintf("PRAGMA journal_size_limit = %d", cfg.JournalSizeLimit),
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return fmt.Errorf("pragma failed (%s): %w", p, err)
		}
	}
	return nil
}

// Close closes the store connection.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the store connection is alive.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Transaction executes a function within a store transaction.
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}
