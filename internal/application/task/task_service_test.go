package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/litigation"
	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/domain/task"
	"github.com/takibi/backend/internal/infrastructure/migration"
	"github.com/takibi/backend/internal/infrastructure/persistence"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := persistence.NewMemoryDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.New(db.DB, zap.NewNop()).Bootstrap())
	return NewService(db.DB, "avukat", zap.NewNop()), db.DB
}

func TestNotificationMirrorLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	n := &litigation.Notification{
		CaseID:      1,
		BuroTakipNo: "2025/1",
		Institution: "X Mahkemesi",
		Content:     "Cevap dilekçesi",
		Deadline:    "2025-03-01",
	}
	require.NoError(t, svc.CreateNotification(ctx, n))

	repo := persistence.NewGormTaskRepository(db)
	mirror, err := repo.FindMirror(ctx, task.KindNotification, n.ID)
	require.NoError(t, err)
	require.NotNil(t, mirror)
	assert.Equal(t, "2025-03-01", mirror.DueDate)
	assert.Equal(t, task.SubjectNotification, mirror.Subject)

	meta, ok := task.DecodeMeta(mirror.Body)
	require.True(t, ok)
	assert.Equal(t, n.ID, meta.NotificationID)
	assert.Equal(t, "2025/1", meta.BuroTakipNo)
	assert.Equal(t, "Cevap dilekçesi", meta.Content)

	n.Deadline = "2025-03-10"
	require.NoError(t, svc.UpdateNotification(ctx, n))
	mirror, err = repo.FindMirror(ctx, task.KindNotification, n.ID)
	require.NoError(t, err)
	require.NotNil(t, mirror)
	assert.Equal(t, "2025-03-10", mirror.DueDate)

	require.NoError(t, svc.DeleteNotification(ctx, n.ID))
	mirror, err = repo.FindMirror(ctx, task.KindNotification, n.ID)
	require.NoError(t, err)
	assert.Nil(t, mirror)
}

func TestNotificationWithoutDeadlineHasNoMirror(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	n := &litigation.Notification{CaseID: 1, Institution: "X", Content: "..."}
	require.NoError(t, svc.CreateNotification(ctx, n))

	repo := persistence.NewGormTaskRepository(db)
	mirror, err := repo.FindMirror(ctx, task.KindNotification, n.ID)
	require.NoError(t, err)
	assert.Nil(t, mirror)

	// deadline appears later: the mirror follows
	n.Deadline = "2025-05-01"
	require.NoError(t, svc.UpdateNotification(ctx, n))
	mirror, err = repo.FindMirror(ctx, task.KindNotification, n.ID)
	require.NoError(t, err)
	require.NotNil(t, mirror)

	// and disappears when it is cleared again
	n.Deadline = ""
	require.NoError(t, svc.UpdateNotification(ctx, n))
	mirror, err = repo.FindMirror(ctx, task.KindNotification, n.ID)
	require.NoError(t, err)
	assert.Nil(t, mirror)
}

func TestMediationMirror(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	m := &litigation.Mediation{
		CaseID:      2,
		BuroTakipNo: "2025/2",
		Parties:     "A / B",
		MeetingDate: "2025-04-05",
		TimeSlot:    "10:30",
	}
	require.NoError(t, svc.CreateMediation(ctx, m))

	mirror, err := persistence.NewGormTaskRepository(db).FindMirror(ctx, task.KindMediation, m.ID)
	require.NoError(t, err)
	require.NotNil(t, mirror)
	assert.Equal(t, task.SubjectMediation, mirror.Subject)

	meta, ok := task.DecodeMeta(mirror.Body)
	require.True(t, ok)
	assert.Equal(t, m.ID, meta.MediationID)
	assert.Equal(t, "A / B", meta.Parties)
	assert.Equal(t, "10:30", meta.TimeSlot)
}

func TestMirrorDoneSyncsSource(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	n := &litigation.Notification{CaseID: 1, Institution: "X", Deadline: "2025-03-01"}
	require.NoError(t, svc.CreateNotification(ctx, n))

	mirror, err := persistence.NewGormTaskRepository(db).FindMirror(ctx, task.KindNotification, n.ID)
	require.NoError(t, err)
	require.NotNil(t, mirror)

	require.NoError(t, svc.SetTaskDone(ctx, mirror.ID, true))

	got, err := persistence.NewGormDocketRepository(db).GetNotification(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)
}

func TestMirrorRefusesDirectDelete(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	n := &litigation.Notification{CaseID: 1, Institution: "X", Deadline: "2025-03-01"}
	require.NoError(t, svc.CreateNotification(ctx, n))
	mirror, err := persistence.NewGormTaskRepository(db).FindMirror(ctx, task.KindNotification, n.ID)
	require.NoError(t, err)
	require.NotNil(t, mirror)

	assert.ErrorIs(t, svc.DeleteTask(ctx, mirror.ID), shared.ErrConflict)
}

func TestManualTaskLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	manual := &task.Task{Subject: "Dilekçe yaz", DueDate: "2025-03-05"}
	require.NoError(t, svc.CreateTask(ctx, manual))
	assert.Equal(t, task.KindManual, manual.Kind)
	assert.Equal(t, "avukat", manual.CreatedBy)

	manual.Subject = "Dilekçeyi gözden geçir"
	require.NoError(t, svc.UpdateTask(ctx, manual))
	require.NoError(t, svc.SetTaskDone(ctx, manual.ID, true))
	require.NoError(t, svc.DeleteTask(ctx, manual.ID))
}

func TestComputedAgendaRows(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	caseRepo := persistence.NewGormCaseRepository(db)
	open := &litigation.Case{
		BuroTakipNo: "2025/3",
		ClientName:  "Müvekkil",
		HearingDate: "2025-06-01",
		Status1:     "BİLİRKİŞİDE",
		ActionDate1: "2025-05-20",
		Note1:       "Rapor bekleniyor",
	}
	require.NoError(t, caseRepo.Create(ctx, open))

	closed := &litigation.Case{
		ClientName:  "Diğer",
		Status1:     litigation.ClosedCaseLiteral,
		HearingDate: "2025-06-02",
	}
	require.NoError(t, caseRepo.Create(ctx, closed))

	agenda, err := svc.Agenda(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, agenda.Stored)
	require.Len(t, agenda.Computed, 2)

	assert.Equal(t, task.KindStatusDeadline1, agenda.Computed[0].Kind)
	assert.Equal(t, "BİLİRKİŞİDE", agenda.Computed[0].Subject)
	assert.Equal(t, "2025-05-20", agenda.Computed[0].DueDate)

	assert.Equal(t, task.KindHearingMirror, agenda.Computed[1].Kind)
	assert.Equal(t, "2025-06-01", agenda.Computed[1].DueDate)
	assert.Equal(t, open.ID, agenda.Computed[1].CaseID)
}
