package migration

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/task"
	"github.com/takibi/backend/internal/infrastructure/persistence/models"
)

// backfillMirrorTasks creates the missing shadow task for every
// tebligat and arabuluculuk row that has a date. Databases written by
// releases without mirroring land here with bare source rows.
func (m *Migrator) backfillMirrorTasks() error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		var notifications []models.NotificationModel
		if err := tx.Where("is_son_gunu <> ''").Find(&notifications).Error; err != nil {
			return fmt.Errorf("mirror backfill: %w", err)
		}
		for i := range notifications {
			created, err := ensureMirror(tx, task.KindNotification, notifications[i].ID, func() *task.Task {
				return task.NewNotificationMirror(notifications[i].ToDomain())
			})
			if err != nil {
				return err
			}
			if created {
				m.logger.Info("backfilled notification mirror",
					zap.Int64("notification_id", notifications[i].ID))
			}
		}

		var mediations []models.MediationModel
		if err := tx.Where("toplanti_tarihi <> ''").Find(&mediations).Error; err != nil {
			return fmt.Errorf("mirror backfill: %w", err)
		}
		for i := range mediations {
			created, err := ensureMirror(tx, task.KindMediation, mediations[i].ID, func() *task.Task {
				return task.NewMediationMirror(mediations[i].ToDomain())
			})
			if err != nil {
				return err
			}
			if created {
				m.logger.Info("backfilled mediation mirror",
					zap.Int64("mediation_id", mediations[i].ID))
			}
		}
		return nil
	})
}

// ensureMirror inserts the shadow task when no task of the given kind
// points at the source row yet.
func ensureMirror(tx *gorm.DB, kind task.Kind, sourceID int64, build func() *task.Task) (bool, error) {
	var count int64
	err := tx.Model(&models.TaskModel{}).
		Where("kind = ? AND source_row_id = ?", string(kind), sourceID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("mirror backfill: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	var model models.TaskModel
	model.FromDomain(build())
	if err := tx.Create(&model).Error; err != nil {
		return false, fmt.Errorf("mirror backfill: %w", err)
	}
	return true, nil
}

// cleanupTasks removes rows the current release no longer wants in the
// stored table: mirrors whose source row is gone, stored copies of the
// kinds that are computed at read time now, and the truncated
// auto-completed stubs older releases wrote with an empty subject.
func (m *Migrator) cleanupTasks() error {
	deletions := []struct {
		what  string
		query string
		args  []any
	}{
		{
			"orphan notification mirrors",
			"kind = ? AND source_row_id NOT IN (SELECT id FROM notifications)",
			[]any{string(task.KindNotification)},
		},
		{
			"orphan mediation mirrors",
			"kind = ? AND source_row_id NOT IN (SELECT id FROM mediations)",
			[]any{string(task.KindMediation)},
		},
		{
			"stored computed-kind tasks",
			"kind IN ?",
			[]any{[]string{
				string(task.KindHearingMirror),
				string(task.KindStatusDeadline1),
				string(task.KindStatusDeadline2),
			}},
		},
		{
			"truncated auto-completed stubs",
			"created_by = ? AND done = 1 AND length(subject) < 2",
			[]any{task.SystemUser},
		},
	}

	for _, d := range deletions {
		res := m.db.Where(d.query, d.args...).Delete(&models.TaskModel{})
		if res.Error != nil {
			return fmt.Errorf("task cleanup (%s): %w", d.what, res.Error)
		}
		if res.RowsAffected > 0 {
			m.logger.Info("cleaned up tasks",
				zap.String("what", d.what),
				zap.Int64("rows", res.RowsAffected),
			)
		}
	}
	return nil
}
