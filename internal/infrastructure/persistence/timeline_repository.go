package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/timeline"
	"github.com/takibi/backend/internal/infrastructure/persistence/models"
)

var timelineTables = map[timeline.Scope]string{
	timeline.ScopeCase:            "case_timeline",
	timeline.ScopeFinance:         "finance_timeline",
	timeline.ScopeExternalFinance: "finance_timeline_external",
}

// GormTimelineRepository implements the append-only audit logs.
type GormTimelineRepository struct {
	db *gorm.DB
}

// NewGormTimelineRepository creates a new GormTimelineRepository.
func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

// Append writes one entry into the log its scope selects.
func (r *GormTimelineRepository) Append(ctx context.Context, e *timeline.Entry) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	var model models.TimelineModel
	model.FromDomain(e)
	if err := r.db.WithContext(ctx).Table(timelineTables[e.Scope]).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	e.ID = model.ID
	return nil
}

// ListByOwner returns the entries of one case or finance record,
// newest first.
func (r *GormTimelineRepository) ListByOwner(ctx context.Context, scope timeline.Scope, ownerID int64) ([]timeline.Entry, error) {
	var rows []models.TimelineModel
	if err := r.db.WithContext(ctx).Table(timelineTables[scope]).
		Where("owner_id = ?", ownerID).
		Order("at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]timeline.Entry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain(scope)
	}
	return out, nil
}
