package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/takibi/backend/internal/infrastructure/persistence/models"
)

// ChangedSections reports which top-level collections have rows in the
// change log since the last drain.
type ChangedSections struct {
	Cases   bool `json:"cases"`
	Tasks   bool `json:"tasks"`
	Finance bool `json:"finance"`
}

// Any reports whether anything changed at all.
func (c ChangedSections) Any() bool {
	return c.Cases || c.Tasks || c.Finance
}

// GormChangeLogRepository drains the trigger-fed change_log table.
type GormChangeLogRepository struct {
	db *gorm.DB
}

// NewGormChangeLogRepository creates a new GormChangeLogRepository.
func NewGormChangeLogRepository(db *gorm.DB) *GormChangeLogRepository {
	return &GormChangeLogRepository{db: db}
}

// Drain atomically reads the distinct changed tables and empties the
// log. Back-to-back calls with no writers in between return all-false.
func (r *GormChangeLogRepository) Drain(ctx context.Context) (ChangedSections, error) {
	var sections ChangedSections
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tables []string
		if err := tx.Model(&models.ChangeLogModel{}).
			Distinct("table_name").
			Pluck("table_name", &tables).Error; err != nil {
			return err
		}
		for _, t := range tables {
			switch t {
			case "cases":
				sections.Cases = true
			case "tasks", "notifications", "mediations":
				sections.Tasks = true
			case "finance_records", "finance_records_external":
				sections.Finance = true
			}
		}
		if len(tables) == 0 {
			return nil
		}
		return tx.Where("1 = 1").Delete(&models.ChangeLogModel{}).Error
	})
	if err != nil {
		return ChangedSections{}, storeErr(err)
	}
	return sections, nil
}
