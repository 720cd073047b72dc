package litigation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appfinance "github.com/takibi/backend/internal/application/finance"
	"github.com/takibi/backend/internal/domain/litigation"
	"github.com/takibi/backend/internal/domain/shared"
	"github.com/takibi/backend/internal/domain/task"
	"github.com/takibi/backend/internal/domain/timeline"
	"github.com/takibi/backend/internal/infrastructure/migration"
	"github.com/takibi/backend/internal/infrastructure/persistence"
)

func newTestService(t *testing.T) (*CaseService, *gorm.DB) {
	t.Helper()
	db, err := persistence.NewMemoryDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.New(db.DB, zap.NewNop()).Bootstrap())

	svc := NewCaseService(db.DB, "avukat", zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, db.DB
}

func seedCase(t *testing.T, svc *CaseService) *litigation.Case {
	t.Helper()
	c := &litigation.Case{
		BuroTakipNo: "2024/17",
		EsasNo:      "2024/123",
		ClientName:  "Ahmet Yılmaz",
		ClientRole:  litigation.RolePlaintiff,
		Status1:     "DAVA AÇILDI",
		ActionDate1: "2025-02-20",
		Note1:       "Dilekçe verildi",
	}
	require.NoError(t, svc.CreateCase(context.Background(), c))
	require.NotZero(t, c.ID)
	return c
}

func TestStatusChangeClosesPriorActionDate(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := seedCase(t, svc)

	after, err := svc.UpdateCase(ctx, c.ID, map[string]any{"status_1": "DURUŞMA BEKLENİYOR"})
	require.NoError(t, err)

	assert.Equal(t, "DURUŞMA BEKLENİYOR", after.Status1)
	assert.Empty(t, after.ActionDate1)
	assert.Empty(t, after.Note1)

	tasks, err := persistence.NewGormTaskRepository(db).List(ctx, true)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	done := tasks[0]
	assert.True(t, done.Done)
	assert.Equal(t, "2025-02-20", done.DueDate)
	assert.Equal(t, "DAVA AÇILDI", done.Subject)
	assert.Equal(t, task.SystemUser, done.CreatedBy)
	assert.Equal(t, c.ID, done.CaseID)

	meta, ok := task.DecodeMeta(done.Body)
	require.True(t, ok)
	assert.Equal(t, task.SourceAutoCompleted, meta.Source)
	assert.Equal(t, "2024/17", meta.BuroTakipNo)
	assert.Equal(t, "Dilekçe verildi", meta.Content)

	entries, err := svc.CaseTimeline(ctx, c.ID)
	require.NoError(t, err)
	bodies := make([]string, 0, len(entries))
	for _, e := range entries {
		bodies = append(bodies, e.Body)
	}
	assert.Contains(t, bodies, `Durum 1 "DAVA AÇILDI" → "DURUŞMA BEKLENİYOR" olarak güncellendi`)
}

func TestClearingStatusClearsPairedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c := seedCase(t, svc)

	after, err := svc.UpdateCase(ctx, c.ID, map[string]any{"status_1": ""})
	require.NoError(t, err)
	assert.Empty(t, after.Status1)
	assert.Empty(t, after.ActionDate1)
	assert.Empty(t, after.Note1)

	entries, err := svc.CaseTimeline(ctx, c.ID)
	require.NoError(t, err)
	var cleared bool
	for _, e := range entries {
		if e.Body == "Durum 1 temizlendi" {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestEmptyDateNormalizedToNull(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c := seedCase(t, svc)

	_, err := svc.UpdateCase(ctx, c.ID, map[string]any{"durusma_tarihi": "2025-04-01"})
	require.NoError(t, err)

	after, err := svc.UpdateCase(ctx, c.ID, map[string]any{"durusma_tarihi": ""})
	require.NoError(t, err)
	assert.Empty(t, after.HearingDate)

	entries, err := svc.CaseTimeline(ctx, c.ID)
	require.NoError(t, err)
	var set, cleared bool
	for _, e := range entries {
		switch e.Body {
		case `Duruşma Tarihi "01.04.2025" olarak ayarlandı`:
			set = true
		case "Duruşma Tarihi temizlendi":
			cleared = true
		}
	}
	assert.True(t, set)
	assert.True(t, cleared)
}

func TestHearingDateChangeLeavesTasksAlone(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := seedCase(t, svc)

	_, err := svc.UpdateCase(ctx, c.ID, map[string]any{"durusma_tarihi": "2025-04-01"})
	require.NoError(t, err)

	tasks, err := persistence.NewGormTaskRepository(db).List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestStatusPaletteRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	st := &litigation.Status{Name: "icra takibi", Color: "#aa3311", Owner: litigation.OwnerUs}
	require.NoError(t, svc.SaveStatus(ctx, st))

	all, err := svc.ListStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "İCRA TAKİBİ", all[0].Name)

	require.NoError(t, svc.DeleteStatus(ctx, all[0].ID))
	all, err = svc.ListStatuses(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateCaseOpensTimeline(t *testing.T) {
	svc, _ := newTestService(t)
	c := seedCase(t, svc)

	entries, err := svc.CaseTimeline(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, timeline.KindManual, entries[0].Kind)
	assert.Equal(t, "Dosya açıldı", entries[0].Body)
}

func TestDeleteCaseRemovesFinanceRecord(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := seedCase(t, svc)

	financeSvc := appfinance.NewService(db, "avukat", zap.NewNop())
	rec, err := financeSvc.EnsureRecordForCase(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCase(ctx, c.ID))

	overview, err := financeSvc.ListOverview(ctx)
	require.NoError(t, err)
	assert.Empty(t, overview)

	_, err = financeSvc.GetContract(ctx, rec.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
