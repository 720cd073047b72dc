package litigation

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/litigation"
	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/domain/task"
	"github.com/takibi/backend/internal/domain/timeline"
	"github.com/takibi/backend/internal/infrastructure/persistence"
)

// dateColumns are the case columns that hold ISO dates; empty strings
// arriving from the UI become NULL before the update.
var dateColumns = map[string]bool{
	"opening_date":   true,
	"durusma_tarihi": true,
	"action_date_1":  true,
	"action_date_2":  true,
}

// CaseService runs the case write pipeline: normalize, update, enforce
// the status pairing, diff, spawn auto-completed tasks and write the
// timeline, all in one transaction.
type CaseService struct {
	db     *gorm.DB
	user   string
	logger *zap.Logger
	now    func() time.Time
}

// NewCaseService creates a new CaseService.
func NewCaseService(db *gorm.DB, user string, logger *zap.Logger) *CaseService {
	return &CaseService{db: db, user: user, logger: logger, now: time.Now}
}

// GetCase finds a case by id.
func (s *CaseService) GetCase(ctx context.Context, id int64) (*litigation.Case, error) {
	return persistence.NewGormCaseRepository(s.db).FindByID(ctx, id)
}

// ListCases returns the case list, optionally including archived files.
func (s *CaseService) ListCases(ctx context.Context, includeArchived bool) ([]litigation.Case, error) {
	return persistence.NewGormCaseRepository(s.db).List(ctx, includeArchived)
}

// CreateCase inserts a case and opens its timeline.
func (s *CaseService) CreateCase(ctx context.Context, c *litigation.Case) error {
	if c.ClientName == "" {
		return shared.ErrInvalidInput
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := persistence.NewGormCaseRepository(tx).Create(ctx, c); err != nil {
			return err
		}
		return persistence.NewGormTimelineRepository(tx).Append(ctx, &timeline.Entry{
			Scope:   timeline.ScopeCase,
			OwnerID: c.ID,
			User:    s.user,
			Kind:    timeline.KindManual,
			Body:    "Dosya açıldı",
		})
	})
}

// UpdateCase applies a column set to a case. Status transitions close
// the prior action date as a done task and clear the paired fields;
// every tracked-field change lands on the case timeline. A failure
// anywhere rolls the whole update back.
func (s *CaseService) UpdateCase(ctx context.Context, id int64, cols map[string]any) (*litigation.Case, error) {
	var result *litigation.Case
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := persistence.NewGormCaseRepository(tx)
		before, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		normalized := make(map[string]any, len(cols))
		for k, v := range cols {
			if dateColumns[k] {
				if sv, ok := v.(string); ok && sv == "" {
					normalized[k] = nil
					continue
				}
			}
			normalized[k] = v
		}
		if err := repo.UpdateColumns(ctx, id, normalized); err != nil {
			return err
		}

		after, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		// an empty status cannot keep its action date or note
		pairClears := map[string]any{}
		if after.Status1 == "" && (after.ActionDate1 != "" || after.Note1 != "") {
			pairClears["action_date_1"] = nil
			pairClears["note_1"] = nil
		}
		if after.Status2 == "" && (after.ActionDate2 != "" || after.Note2 != "") {
			pairClears["action_date_2"] = nil
			pairClears["note_2"] = nil
		}

		// a changed status closes out its prior action date
		for _, ch := range before.Tracked().Diff(after.Tracked()) {
			if !ch.IsStatus || ch.Old == "" {
				continue
			}
			var priorDate, priorNote string
			switch ch.Field {
			case "status_1":
				priorDate, priorNote = before.ActionDate1, before.Note1
				pairClears["action_date_1"] = nil
				pairClears["note_1"] = nil
			case "status_2":
				priorDate, priorNote = before.ActionDate2, before.Note2
				pairClears["action_date_2"] = nil
				pairClears["note_2"] = nil
			}
			if err := s.insertAutoCompleted(ctx, tx, before, ch.Old, priorDate, priorNote); err != nil {
				return err
			}
		}

		if len(pairClears) > 0 {
			if err := repo.UpdateColumns(ctx, id, pairClears); err != nil {
				return err
			}
			if after, err = repo.FindByID(ctx, id); err != nil {
				return err
			}
		}

		tl := persistence.NewGormTimelineRepository(tx)
		for _, ch := range before.Tracked().Diff(after.Tracked()) {
			if err := tl.Append(ctx, &timeline.Entry{
				Scope:   timeline.ScopeCase,
				OwnerID: id,
				User:    s.user,
				Kind:    timeline.KindFieldChange,
				Title:   ch.Label,
				Body:    timeline.ChangeBody(ch),
			}); err != nil {
				return err
			}
		}

		result = after
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// insertAutoCompleted writes the done task that archives one finished
// status: subject is the status the case left, date its action date.
func (s *CaseService) insertAutoCompleted(ctx context.Context, tx *gorm.DB, c *litigation.Case, priorStatus, priorDate, priorNote string) error {
	doneAt := s.now()
	t := &task.Task{
		Kind:      task.KindManual,
		DueDate:   priorDate,
		Subject:   priorStatus,
		CreatedBy: task.SystemUser,
		Done:      true,
		DoneAt:    &doneAt,
		CaseID:    c.ID,
		Body: task.EncodeMeta(task.Meta{
			Type:        string(task.KindManual),
			BuroTakipNo: c.BuroTakipNo,
			Content:     priorNote,
			Source:      task.SourceAutoCompleted,
		}),
		BuroTakipNo: c.BuroTakipNo,
	}
	return persistence.NewGormTaskRepository(tx).Create(ctx, t)
}

// SetArchived flips the archive flag of a case.
func (s *CaseService) SetArchived(ctx context.Context, id int64, archived bool) error {
	return persistence.NewGormCaseRepository(s.db).SetArchived(ctx, id, archived)
}

// DeleteCase removes a case with its docket rows, tasks, timeline and
// the case-bound finance record, if one exists.
func (s *CaseService) DeleteCase(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		financeRepo := persistence.NewGormFinanceRepository(tx)
		rec, err := financeRepo.GetRecordByCase(ctx, id)
		switch {
		case err == nil:
			if err := financeRepo.DeleteRecord(ctx, rec.ID); err != nil {
				return err
			}
		case !errors.Is(err, shared.ErrNotFound):
			return err
		}
		return persistence.NewGormCaseRepository(tx).Delete(ctx, id)
	})
}

// AppendCaseEvent writes one manual entry onto a case timeline.
func (s *CaseService) AppendCaseEvent(ctx context.Context, caseID int64, kind, title, body string) error {
	if kind == "" {
		kind = timeline.KindManual
	}
	return persistence.NewGormTimelineRepository(s.db).Append(ctx, &timeline.Entry{
		Scope:   timeline.ScopeCase,
		OwnerID: caseID,
		User:    s.user,
		Kind:    kind,
		Title:   title,
		Body:    body,
	})
}

// CaseTimeline returns the audit entries of one case, newest first.
func (s *CaseService) CaseTimeline(ctx context.Context, caseID int64) ([]timeline.Entry, error) {
	return persistence.NewGormTimelineRepository(s.db).ListByOwner(ctx, timeline.ScopeCase, caseID)
}

// ===================== Status palette =====================

// ListStatuses returns the status palette.
func (s *CaseService) ListStatuses(ctx context.Context) ([]litigation.Status, error) {
	return persistence.NewGormStatusRepository(s.db).List(ctx)
}

// SaveStatus inserts or rewrites one palette entry. Names are stored
// Turkish-uppercased so the closed-case predicate stays literal.
func (s *CaseService) SaveStatus(ctx context.Context, st *litigation.Status) error {
	st.Name = litigation.NormalizeStatusName(st.Name)
	if st.Name == "" || !st.Owner.IsValid() {
		return shared.ErrInvalidInput
	}
	return persistence.NewGormStatusRepository(s.db).Save(ctx, st)
}

// DeleteStatus removes one palette entry.
func (s *CaseService) DeleteStatus(ctx context.Context, id int64) error {
	return persistence.NewGormStatusRepository(s.db).Delete(ctx, id)
}
