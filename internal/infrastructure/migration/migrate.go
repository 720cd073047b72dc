package migration

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/infrastructure/persistence/models"
)

// Migrator promotes the store to the current schema and runs the
// per-start maintenance: column census, trigger re-creation, mirror
// backfill and orphan cleanup. Running it twice is a no-op.
type Migrator struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a new Migrator instance
func New(db *gorm.DB, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// schemaVersionModel stamps the promoted version, one row.
type schemaVersionModel struct {
	ID      int64 `gorm:"primaryKey"`
	Version int   `gorm:"not null"`
}

func (schemaVersionModel) TableName() string { return "schema_version" }

// versionedStep is one pure upgrade: runs once, moves the stamp.
type versionedStep struct {
	version int
	name    string
	run     func(tx *gorm.DB, log *zap.Logger) error
}

func (m *Migrator) steps() []versionedStep {
	return []versionedStep{
		{1, "create base tables", createBaseTables},
		{2, "mirror legacy float money into cents", migrateLegacyMoney},
		{3, "consolidate historical column aliases", consolidateAliases},
		{4, "drop legacy client-role CHECK constraint", dropClientRoleCheck},
	}
}

// Bootstrap runs the full promotion plus the per-start maintenance.
// Any failure surfaces as a schema error; the process should not keep
// running against a half-prepared store.
func (m *Migrator) Bootstrap() error {
	current, err := m.currentVersion()
	if err != nil {
		return errors.Join(shared.ErrSchema, err)
	}

	for _, s := range m.steps() {
		if s.version <= current {
			continue
		}
		m.logger.Info("applying schema step",
			zap.Int("version", s.version),
			zap.String("name", s.name),
		)
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := s.run(tx, m.logger); err != nil {
				return err
			}
			return m.stampVersion(tx, s.version)
		})
		if err != nil {
			return errors.Join(shared.ErrSchema, fmt.Errorf("step %d (%s): %w", s.version, s.name, err))
		}
		current = s.version
	}

	if err := m.maintain(); err != nil {
		return errors.Join(shared.ErrSchema, err)
	}

	m.logger.Info("schema ready", zap.Int("version", current))
	return nil
}

// maintain runs the steps that repeat every start: tolerant column
// census, trigger re-creation with the current bodies, mirror backfill
// and stale-task cleanup.
func (m *Migrator) maintain() error {
	if err := m.ensureAllColumns(); err != nil {
		return err
	}
	if err := recreateChangeLogTriggers(m.db); err != nil {
		return err
	}
	if err := m.backfillMirrorTasks(); err != nil {
		return err
	}
	return m.cleanupTasks()
}

func (m *Migrator) currentVersion() (int, error) {
	if err := m.db.AutoMigrate(&schemaVersionModel{}); err != nil {
		return 0, fmt.Errorf("schema_version table: %w", err)
	}
	var row schemaVersionModel
	err := m.db.First(&row, "id = 1").Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Version, nil
}

func (m *Migrator) stampVersion(tx *gorm.DB, version int) error {
	res := tx.Model(&schemaVersionModel{}).Where("id = 1").Update("version", version)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tx.Create(&schemaVersionModel{ID: 1, Version: version}).Error
	}
	return nil
}

// createBaseTables builds every table of the store. AutoMigrate covers
// the singleton tables; the finance twins are created explicitly per
// table set.
func createBaseTables(tx *gorm.DB, _ *zap.Logger) error {
	if err := tx.AutoMigrate(
		&models.CaseModel{},
		&models.StatusModel{},
		&models.NotificationModel{},
		&models.MediationModel{},
		&models.TaskModel{},
		&models.ChangeLogModel{},
	); err != nil {
		return err
	}

	if err := tx.Table("case_timeline").AutoMigrate(&models.TimelineModel{}); err != nil {
		return err
	}

	for _, set := range []models.FinanceTables{models.CaseFinanceTables, models.ExternalFinanceTables} {
		pairs := []struct {
			table string
			model any
		}{
			{set.Records, &models.FinanceRecordModel{}},
			{set.Plans, &models.PlanModel{}},
			{set.Installments, &models.InstallmentModel{}},
			{set.Payments, &models.PaymentModel{}},
			{set.Expenses, &models.ExpenseModel{}},
			{set.Cash, &models.CashEntryModel{}},
			{set.Timeline, &models.TimelineModel{}},
		}
		for _, p := range pairs {
			if err := tx.Table(p.table).AutoMigrate(p.model); err != nil {
				return fmt.Errorf("table %s: %w", p.table, err)
			}
		}
	}
	return nil
}
