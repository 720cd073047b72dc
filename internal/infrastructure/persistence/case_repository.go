package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/litigation"
	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/infrastructure/persistence/models"
)

// GormCaseRepository implements case storage using GORM.
type GormCaseRepository struct {
	db *gorm.DB
}

// NewGormCaseRepository creates a new GormCaseRepository.
func NewGormCaseRepository(db *gorm.DB) *GormCaseRepository {
	return &GormCaseRepository{db: db}
}

// Create inserts a case and fills its id.
func (r *GormCaseRepository) Create(ctx context.Context, c *litigation.Case) error {
	var model models.CaseModel
	model.FromDomain(c)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

// FindByID finds a case by its id.
func (r *GormCaseRepository) FindByID(ctx context.Context, id int64) (*litigation.Case, error) {
	var model models.CaseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// List returns cases, optionally including archived ones, newest first.
func (r *GormCaseRepository) List(ctx context.Context, includeArchived bool) ([]litigation.Case, error) {
	q := r.db.WithContext(ctx).Model(&models.CaseModel{}).Order("id DESC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	var rows []models.CaseModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]litigation.Case, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// UpdateColumns rewrites the given columns of a case row.
func (r *GormCaseRepository) UpdateColumns(ctx context.Context, id int64, cols map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.CaseModel{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetArchived flips the archive flag.
func (r *GormCaseRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	return r.UpdateColumns(ctx, id, map[string]any{"archived": archived})
}

// Delete hard-deletes a case together with its notifications,
// mediations, tasks and timeline. The caller cascades the case-bound
// finance record through the finance repository in the same transaction.
func (r *GormCaseRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("case_id = ?", id).Delete(&models.NotificationModel{}).Error; err != nil {
		return storeErr(err)
	}
	if err := db.Where("case_id = ?", id).Delete(&models.MediationModel{}).Error; err != nil {
		return storeErr(err)
	}
	if err := db.Where("case_id = ?", id).Delete(&models.TaskModel{}).Error; err != nil {
		return storeErr(err)
	}
	if err := db.Table("case_timeline").Where("owner_id = ?", id).Delete(nil).Error; err != nil {
		return storeErr(err)
	}
	res := db.Delete(&models.CaseModel{}, "id = ?", id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormStatusRepository implements status-palette storage using GORM.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewGormStatusRepository creates a new GormStatusRepository.
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// List returns the whole palette ordered by name.
func (r *GormStatusRepository) List(ctx context.Context) ([]litigation.Status, error) {
	var rows []models.StatusModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]litigation.Status, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindByName finds a palette entry by its unique name.
func (r *GormStatusRepository) FindByName(ctx context.Context, name string) (*litigation.Status, error) {
	var model models.StatusModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// Save inserts or updates a palette entry.
func (r *GormStatusRepository) Save(ctx context.Context, s *litigation.Status) error {
	var model models.StatusModel
	model.FromDomain(s)
	if model.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return storeErr(err)
		}
		s.ID = model.ID
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.StatusModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{"name": model.Name, "color": model.Color, "owner": model.Owner})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a palette entry.
func (r *GormStatusRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.StatusModel{}, "id = ?", id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
