package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/litigation"
	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/infrastructure/persistence/models"
)

// GormDocketRepository stores the tebligat and arabuluculuk source
// rows that the task mirror shadows.
type GormDocketRepository struct {
	db *gorm.DB
}

// NewGormDocketRepository creates a new GormDocketRepository.
func NewGormDocketRepository(db *gorm.DB) *GormDocketRepository {
	return &GormDocketRepository{db: db}
}

// ===================== Notifications =====================

// CreateNotification inserts a tebligat row and fills its id.
func (r *GormDocketRepository) CreateNotification(ctx context.Context, n *litigation.Notification) error {
	var model models.NotificationModel
	model.FromDomain(n)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	n.ID = model.ID
	n.CreatedAt = model.CreatedAt
	return nil
}

// GetNotification finds a tebligat row by its id.
func (r *GormDocketRepository) GetNotification(ctx context.Context, id int64) (*litigation.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// ListNotifications returns tebligat rows, earliest deadline first.
func (r *GormDocketRepository) ListNotifications(ctx context.Context, caseID int64) ([]litigation.Notification, error) {
	q := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Order("is_son_gunu ASC, id ASC")
	if caseID != 0 {
		q = q.Where("case_id = ?", caseID)
	}
	var rows []models.NotificationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]litigation.Notification, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// UpdateNotification rewrites a tebligat row.
func (r *GormDocketRepository) UpdateNotification(ctx context.Context, n *litigation.Notification) error {
	var model models.NotificationModel
	model.FromDomain(n)
	res := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("id = ?", n.ID).
		Updates(map[string]any{
			"buro_takip_no": model.BuroTakipNo,
			"institution":   model.Institution,
			"content":       model.Content,
			"is_son_gunu":   model.Deadline,
			"done":          model.Done,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteNotification removes a tebligat row.
func (r *GormDocketRepository) DeleteNotification(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.NotificationModel{}, "id = ?", id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ===================== Mediations =====================

// CreateMediation inserts an arabuluculuk row and fills its id.
func (r *GormDocketRepository) CreateMediation(ctx context.Context, m *litigation.Mediation) error {
	var model models.MediationModel
	model.FromDomain(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	return nil
}

// GetMediation finds an arabuluculuk row by its id.
func (r *GormDocketRepository) GetMediation(ctx context.Context, id int64) (*litigation.Mediation, error) {
	var model models.MediationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// ListMediations returns arabuluculuk rows, earliest meeting first.
func (r *GormDocketRepository) ListMediations(ctx context.Context, caseID int64) ([]litigation.Mediation, error) {
	q := r.db.WithContext(ctx).Model(&models.MediationModel{}).
		Order("toplanti_tarihi ASC, id ASC")
	if caseID != 0 {
		q = q.Where("case_id = ?", caseID)
	}
	var rows []models.MediationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]litigation.Mediation, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// UpdateMediation rewrites an arabuluculuk row.
func (r *GormDocketRepository) UpdateMediation(ctx context.Context, m *litigation.Mediation) error {
	var model models.MediationModel
	model.FromDomain(m)
	res := r.db.WithContext(ctx).Model(&models.MediationModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"buro_takip_no":   model.BuroTakipNo,
			"parties":         model.Parties,
			"toplanti_tarihi": model.MeetingDate,
			"time_slot":       model.TimeSlot,
			"done":            model.Done,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteMediation removes an arabuluculuk row.
func (r *GormDocketRepository) DeleteMediation(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.MediationModel{}, "id = ?", id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
