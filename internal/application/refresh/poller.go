package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/takibi/backend/internal/infrastructure/persistence"
)

// Drainer empties the change log and reports which sections moved.
type Drainer interface {
	Drain(ctx context.Context) (persistence.ChangedSections, error)
}

// Handler receives one changed-sections signal per drain that found
// anything. It runs on the poller goroutine.
type Handler func(persistence.ChangedSections)

// Poller drains the change log on a fixed interval and signals the
// UI-facing handler. A tick that lands while the previous drain is
// still in flight is dropped; Pause suppresses ticks without stopping
// the goroutine. Drain errors are logged and retried on the next tick.
type Poller struct {
	drainer  Drainer
	handler  Handler
	interval time.Duration
	logger   *zap.Logger

	paused   atomic.Bool
	inFlight atomic.Bool

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// NewPoller creates a poller. Intervals below one second are raised to
// the default of thirty seconds.
func NewPoller(drainer Drainer, handler Handler, interval time.Duration, logger *zap.Logger) *Poller {
	if interval < time.Second {
		interval = 30 * time.Second
	}
	return &Poller{
		drainer:  drainer,
		handler:  handler,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop. Subsequent calls are no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		go p.loop(ctx)
	})
}

// Stop ends the loop and waits for an in-flight drain to finish. A
// drain is idempotent, so letting the final iteration complete is safe.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}

// Pause suppresses polling while an interactive editor is open. It is
// advisory: a drain already in flight completes normally.
func (p *Poller) Pause() { p.paused.Store(true) }

// Resume lifts a Pause.
func (p *Poller) Resume() { p.paused.Store(false) }

// DrainNow runs one drain outside the schedule, obeying the same
// overlap suppression. It reports whether a drain actually ran.
func (p *Poller) DrainNow(ctx context.Context) bool {
	return p.tick(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.paused.Load() {
				continue
			}
			p.tick(ctx)
		}
	}
}

// tick runs one guarded drain.
func (p *Poller) tick(ctx context.Context) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer p.inFlight.Store(false)

	cycle := uuid.NewString()
	sections, err := p.drainer.Drain(ctx)
	if err != nil {
		p.logger.Warn("change-log drain failed",
			zap.String("cycle", cycle),
			zap.Error(err),
		)
		return true
	}
	if !sections.Any() {
		return true
	}
	p.logger.Debug("change-log drain",
		zap.String("cycle", cycle),
		zap.Bool("cases", sections.Cases),
		zap.Bool("tasks", sections.Tasks),
		zap.Bool("finance", sections.Finance),
	)
	if p.handler != nil {
		p.handler(sections)
	}
	return true
}
