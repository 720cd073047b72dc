package task

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/litigation"
	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/domain/task"
	"github.com/takibi/backend/internal/infrastructure/persistence"
)

// Service owns the unified task list: manual tasks, the docket mirrors
// and the computed agenda rows. Mirror maintenance runs as a side
// effect inside the docket write transactions, never through triggers.
type Service struct {
	db     *gorm.DB
	user   string
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new task Service.
func NewService(db *gorm.DB, user string, logger *zap.Logger) *Service {
	return &Service{db: db, user: user, logger: logger, now: time.Now}
}

// ===================== Manual tasks =====================

// CreateTask inserts a manual task.
func (s *Service) CreateTask(ctx context.Context, t *task.Task) error {
	if t.Subject == "" {
		return shared.ErrInvalidInput
	}
	t.Kind = task.KindManual
	if t.CreatedBy == "" {
		t.CreatedBy = s.user
	}
	return persistence.NewGormTaskRepository(s.db).Create(ctx, t)
}

// UpdateTask rewrites a manual task. Mirror rows follow their source
// and are refused here.
func (s *Service) UpdateTask(ctx context.Context, t *task.Task) error {
	repo := persistence.NewGormTaskRepository(s.db)
	prior, err := repo.FindByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if prior.Kind.IsMirror() {
		return shared.ErrConflict
	}
	return repo.Update(ctx, t)
}

// SetTaskDone flips the done flag. On a mirror the flag is pushed to
// the source row too, so both sides keep agreeing.
func (s *Service) SetTaskDone(ctx context.Context, id int64, done bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := persistence.NewGormTaskRepository(tx)
		t, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.SetDone(ctx, id, done); err != nil {
			return err
		}

		docket := persistence.NewGormDocketRepository(tx)
		switch t.Kind {
		case task.KindNotification:
			n, err := docket.GetNotification(ctx, t.SourceRowID)
			if err != nil {
				return err
			}
			n.Done = done
			return docket.UpdateNotification(ctx, n)
		case task.KindMediation:
			m, err := docket.GetMediation(ctx, t.SourceRowID)
			if err != nil {
				return err
			}
			m.Done = done
			return docket.UpdateMediation(ctx, m)
		}
		return nil
	})
}

// DeleteTask removes a manual task. Mirrors disappear only with their
// docket row.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	repo := persistence.NewGormTaskRepository(s.db)
	t, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if t.Kind.IsMirror() {
		return shared.ErrConflict
	}
	return repo.Delete(ctx, id)
}

// ===================== Docket: notifications =====================

// ListNotifications returns the tebligat rows, all or per case.
func (s *Service) ListNotifications(ctx context.Context, caseID int64) ([]litigation.Notification, error) {
	return persistence.NewGormDocketRepository(s.db).ListNotifications(ctx, caseID)
}

// CreateNotification inserts a tebligat row and, when it carries a
// deadline, its mirror task in the same transaction.
func (s *Service) CreateNotification(ctx context.Context, n *litigation.Notification) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormDocketRepository(tx).CreateNotification(ctx, n); err != nil {
			return err
		}
		if n.Deadline == "" {
			return nil
		}
		return persistence.NewGormTaskRepository(tx).Create(ctx, task.NewNotificationMirror(n))
	})
}

// UpdateNotification rewrites a tebligat row and reconciles its mirror:
// created when a deadline appears, refreshed while one exists, dropped
// when the deadline is cleared.
func (s *Service) UpdateNotification(ctx context.Context, n *litigation.Notification) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormDocketRepository(tx).UpdateNotification(ctx, n); err != nil {
			return err
		}
		return s.reconcileMirror(ctx, tx, task.KindNotification, n.ID, n.Deadline != "", func() *task.Task {
			return task.NewNotificationMirror(n)
		})
	})
}

// DeleteNotification removes a tebligat row with its mirror.
func (s *Service) DeleteNotification(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormDocketRepository(tx).DeleteNotification(ctx, id); err != nil {
			return err
		}
		return persistence.NewGormTaskRepository(tx).DeleteMirror(ctx, task.KindNotification, id)
	})
}

// ===================== Docket: mediations =====================

// ListMediations returns the arabuluculuk rows, all or per case.
func (s *Service) ListMediations(ctx context.Context, caseID int64) ([]litigation.Mediation, error) {
	return persistence.NewGormDocketRepository(s.db).ListMediations(ctx, caseID)
}

// CreateMediation inserts an arabuluculuk row and, when it carries a
// meeting date, its mirror task.
func (s *Service) CreateMediation(ctx context.Context, m *litigation.Mediation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormDocketRepository(tx).CreateMediation(ctx, m); err != nil {
			return err
		}
		if m.MeetingDate == "" {
			return nil
		}
		return persistence.NewGormTaskRepository(tx).Create(ctx, task.NewMediationMirror(m))
	})
}

// UpdateMediation rewrites an arabuluculuk row and reconciles its mirror.
func (s *Service) UpdateMediation(ctx context.Context, m *litigation.Mediation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormDocketRepository(tx).UpdateMediation(ctx, m); err != nil {
			return err
		}
		return s.reconcileMirror(ctx, tx, task.KindMediation, m.ID, m.MeetingDate != "", func() *task.Task {
			return task.NewMediationMirror(m)
		})
	})
}

// DeleteMediation removes an arabuluculuk row with its mirror.
func (s *Service) DeleteMediation(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormDocketRepository(tx).DeleteMediation(ctx, id); err != nil {
			return err
		}
		return persistence.NewGormTaskRepository(tx).DeleteMirror(ctx, task.KindMediation, id)
	})
}

// reconcileMirror drives the mirror of one source row toward the
// desired state: present with a fresh body iff the row has a date.
func (s *Service) reconcileMirror(ctx context.Context, tx *gorm.DB, kind task.Kind, sourceID int64, wantMirror bool, build func() *task.Task) error {
	repo := persistence.NewGormTaskRepository(tx)
	existing, err := repo.FindMirror(ctx, kind, sourceID)
	if err != nil {
		return err
	}
	switch {
	case wantMirror && existing == nil:
		return repo.Create(ctx, build())
	case wantMirror:
		fresh := build()
		fresh.ID = existing.ID
		return repo.Update(ctx, fresh)
	case existing != nil:
		return repo.DeleteMirror(ctx, kind, sourceID)
	}
	return nil
}

// ===================== Agenda =====================

// Agenda returns the stored tasks plus the computed hearing and
// status-deadline rows. Computed rows are never persisted; they are
// joined from the open cases and the status palette on every call.
func (s *Service) Agenda(ctx context.Context, includeDone bool) (*task.Agenda, error) {
	stored, err := persistence.NewGormTaskRepository(s.db).List(ctx, includeDone)
	if err != nil {
		return nil, err
	}
	computed, err := s.computedRows(ctx)
	if err != nil {
		return nil, err
	}
	return &task.Agenda{Stored: stored, Computed: computed}, nil
}

// computedRows derives the agenda entries that live on the case row:
// one per hearing date and one per status action date. Closed and
// archived files contribute nothing, and neither do statuses the
// palette files under the closed archive.
func (s *Service) computedRows(ctx context.Context) ([]task.Task, error) {
	cases, err := persistence.NewGormCaseRepository(s.db).List(ctx, false)
	if err != nil {
		return nil, err
	}
	palette, err := persistence.NewGormStatusRepository(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	owners := make(map[string]litigation.StatusOwner, len(palette))
	for _, st := range palette {
		owners[st.Name] = st.Owner
	}

	var rows []task.Task
	for i := range cases {
		c := &cases[i]
		if litigation.IsClosed(c.Status1, c.Status2) {
			continue
		}
		if c.HearingDate != "" {
			rows = append(rows, computedRow(c, task.KindHearingMirror, "Duruşma", c.HearingDate, c.Court))
		}
		if c.Status1 != "" && c.ActionDate1 != "" && !archivedStatus(owners, c.Status1) {
			rows = append(rows, computedRow(c, task.KindStatusDeadline1, c.Status1, c.ActionDate1, c.Note1))
		}
		if c.Status2 != "" && c.ActionDate2 != "" && !archivedStatus(owners, c.Status2) {
			rows = append(rows, computedRow(c, task.KindStatusDeadline2, c.Status2, c.ActionDate2, c.Note2))
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].DueDate < rows[b].DueDate })
	return rows, nil
}

func archivedStatus(owners map[string]litigation.StatusOwner, status string) bool {
	return owners[litigation.NormalizeStatusName(status)] == litigation.OwnerClosedArchive
}

func computedRow(c *litigation.Case, kind task.Kind, subject, due, content string) task.Task {
	return task.Task{
		Kind:      kind,
		DueDate:   due,
		Subject:   subject,
		CreatedBy: task.SystemUser,
		CaseID:    c.ID,
		Body: task.EncodeMeta(task.Meta{
			Type:        string(kind),
			BuroTakipNo: c.BuroTakipNo,
			Content:     content,
		}),
		BuroTakipNo: c.BuroTakipNo,
	}
}
