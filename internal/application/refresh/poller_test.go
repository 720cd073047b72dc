package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/takibi/backend/internal/infrastructure/migration"
	"github.com/takibi/backend/internal/infrastructure/persistence"
)

type fakeDrainer struct {
	mu       sync.Mutex
	calls    int
	sections persistence.ChangedSections
	err      error
	block    chan struct{}
}

func (f *fakeDrainer) Drain(ctx context.Context) (persistence.ChangedSections, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.sections, f.err
}

func (f *fakeDrainer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestDrainNowSignalsHandler(t *testing.T) {
	drainer := &fakeDrainer{sections: persistence.ChangedSections{Cases: true}}
	var got persistence.ChangedSections
	p := NewPoller(drainer, func(s persistence.ChangedSections) { got = s }, time.Hour, zap.NewNop())

	assert.True(t, p.DrainNow(context.Background()))
	assert.True(t, got.Cases)
	assert.Equal(t, 1, drainer.callCount())
}

func TestOverlappingDrainSuppressed(t *testing.T) {
	drainer := &fakeDrainer{block: make(chan struct{})}
	p := NewPoller(drainer, nil, time.Hour, zap.NewNop())

	first := make(chan bool)
	go func() { first <- p.DrainNow(context.Background()) }()

	// wait for the first drain to enter the drainer
	require.Eventually(t, func() bool { return drainer.callCount() == 1 },
		time.Second, time.Millisecond)

	assert.False(t, p.DrainNow(context.Background()))
	close(drainer.block)
	assert.True(t, <-first)
	assert.Equal(t, 1, drainer.callCount())
}

func TestDrainErrorSwallowed(t *testing.T) {
	drainer := &fakeDrainer{err: errors.New("locked")}
	called := false
	p := NewPoller(drainer, func(persistence.ChangedSections) { called = true }, time.Hour, zap.NewNop())

	assert.True(t, p.DrainNow(context.Background()))
	assert.False(t, called)
}

func TestStopWaitsForLoop(t *testing.T) {
	drainer := &fakeDrainer{}
	p := NewPoller(drainer, nil, time.Hour, zap.NewNop())
	p.Start(context.Background())
	p.Stop() // must not hang

	select {
	case <-p.done:
	default:
		t.Fatal("loop still running after Stop")
	}
}

func TestBackToBackDrainsReturnAllFalse(t *testing.T) {
	db, err := persistence.NewMemoryDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.New(db.DB, zap.NewNop()).Bootstrap())

	repo := persistence.NewGormChangeLogRepository(db.DB)
	ctx := context.Background()

	// bootstrap maintenance may have left markers; clear them first
	_, err = repo.Drain(ctx)
	require.NoError(t, err)

	require.NoError(t, db.DB.Exec(
		`INSERT INTO cases (client_name, archived, created_at, updated_at)
		 VALUES ('Müvekkil', 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	).Error)

	sections, err := repo.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, sections.Cases)

	sections, err = repo.Drain(ctx)
	require.NoError(t, err)
	assert.False(t, sections.Any())
}
