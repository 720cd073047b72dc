package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/domain/task"
	"github.com/takibi/backend/internal/infrastructure/persistence/models"
)

// GormTaskRepository implements unified-task storage using GORM.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository.
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a task and fills its id.
func (r *GormTaskRepository) Create(ctx context.Context, t *task.Task) error {
	var model models.TaskModel
	model.FromDomain(t)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return storeErr(err)
	}
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	return nil
}

// FindByID finds a task by its id.
func (r *GormTaskRepository) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	var model models.TaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// List returns stored tasks ordered by due date, dateless last.
func (r *GormTaskRepository) List(ctx context.Context, includeDone bool) ([]task.Task, error) {
	q := r.db.WithContext(ctx).Model(&models.TaskModel{}).
		Order("CASE WHEN due_date = '' THEN 1 ELSE 0 END, due_date ASC, id ASC")
	if !includeDone {
		q = q.Where("done = ?", false)
	}
	var rows []models.TaskModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	out := make([]task.Task, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Update rewrites the mutable columns of a task.
func (r *GormTaskRepository) Update(ctx context.Context, t *task.Task) error {
	var model models.TaskModel
	model.FromDomain(t)
	res := r.db.WithContext(ctx).Model(&models.TaskModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"due_date":  model.DueDate,
			"subject":   model.Subject,
			"body":      model.Body,
			"assignees": model.Assignees,
			"done":      model.Done,
			"done_at":   model.DoneAt,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetDone flips the done flag, stamping or clearing the done time.
func (r *GormTaskRepository) SetDone(ctx context.Context, id int64, done bool) error {
	var doneAt *time.Time
	if done {
		now := time.Now()
		doneAt = &now
	}
	res := r.db.WithContext(ctx).Model(&models.TaskModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"done": done, "done_at": doneAt})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a task row.
func (r *GormTaskRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.TaskModel{}, "id = ?", id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindMirror finds the unique mirror task of a source row, or nil.
func (r *GormTaskRepository) FindMirror(ctx context.Context, kind task.Kind, sourceRowID int64) (*task.Task, error) {
	var model models.TaskModel
	err := r.db.WithContext(ctx).
		Where("kind = ? AND source_row_id = ?", string(kind), sourceRowID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return model.ToDomain(), nil
}

// DeleteMirror removes the mirror task of a source row, if present.
func (r *GormTaskRepository) DeleteMirror(ctx context.Context, kind task.Kind, sourceRowID int64) error {
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND source_row_id = ?", string(kind), sourceRowID).
		Delete(&models.TaskModel{}).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// ListMirrorSourceIDs returns the mirrored source ids for one kind.
func (r *GormTaskRepository) ListMirrorSourceIDs(ctx context.Context, kind task.Kind) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&models.TaskModel{}).
		Where("kind = ?", string(kind)).
		Pluck("source_row_id", &ids).Error; err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}
