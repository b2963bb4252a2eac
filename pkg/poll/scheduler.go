// Package poll implements the polling refresh scheduler: a reusable
// primitive that invokes a caller-supplied refresh callback at a fixed
// period while enabled, with a manual trigger for on-demand refreshes.
//
// The scheduler knows nothing about data shape. It guarantees at most one
// live timer per scheduler, always clears it on disable or Stop, and always
// invokes the latest registered callback rather than the one captured when
// the timer was installed — consumers may redefine their refresh logic
// without restarting the timer. It does not serialize ticks: a slow
// callback may overlap the next tick, so callbacks must be idempotent.
package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/atriumhq/atrium/internal/logging"
	"github.com/atriumhq/atrium/pkg/observability"
)

// Callback is a refresh action. The context is the scheduler's lifetime
// context; it is cancelled by Stop so in-flight refreshes can bail out.
type Callback func(ctx context.Context)

// Scheduler drives one poll registration. Safe for concurrent use.
type Scheduler struct {
	mu       sync.Mutex
	fn       Callback
	interval time.Duration
	enabled  bool
	ticker   *time.Ticker
	done     chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// Enabled starts the scheduler immediately instead of waiting for
// SetEnabled(true).
func Enabled() Option {
	return func(s *Scheduler) {
		s.enabled = true
	}
}

// New creates a scheduler for the given callback and period.
func New(fn Callback, interval time.Duration, opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		fn:       fn,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mu.Lock()
	if s.enabled {
		s.startLocked()
	}
	s.mu.Unlock()
	return s
}

// SetEnabled transitions the scheduler between STOPPED and RUNNING.
// Disabling always clears the timer; no further ticks fire after it
// returns. Enabling an already-running scheduler is a no-op.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = enabled
	if enabled && s.ticker == nil {
		s.startLocked()
	} else if !enabled && s.ticker != nil {
		s.stopLocked()
	}
}

// SetInterval changes the period. While running, the timer is torn down and
// reinstalled with the new period; the next tick fires one full new period
// later, with no immediate extra invocation.
func (s *Scheduler) SetInterval(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interval == s.interval {
		return
	}
	s.interval = interval
	if s.ticker != nil {
		s.stopLocked()
		s.startLocked()
	}
}

// SetCallback replaces the refresh callback. The running timer keeps its
// cadence and future ticks invoke the new callback.
func (s *Scheduler) SetCallback(fn Callback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
}

// Trigger invokes the latest callback once, synchronously, regardless of
// the timer state. Manual refresh and timer ticks share the callback;
// Trigger does not reset the tick cadence.
func (s *Scheduler) Trigger() {
	observability.PollTicks.WithLabelValues("manual").Inc()
	s.invoke()
}

// Stop disables the scheduler and cancels its context. A stopped scheduler
// cannot be restarted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.enabled = false
	if s.ticker != nil {
		s.stopLocked()
	}
	s.mu.Unlock()
	s.cancel()
}

// startLocked installs the timer. Caller holds s.mu; s.ticker must be nil.
func (s *Scheduler) startLocked() {
	s.ticker = time.NewTicker(s.interval)
	s.done = make(chan struct{})
	go s.loop(s.ticker, s.done)
}

// stopLocked clears the timer. Caller holds s.mu; s.ticker must be non-nil.
func (s *Scheduler) stopLocked() {
	s.ticker.Stop()
	close(s.done)
	s.ticker = nil
	s.done = nil
}

func (s *Scheduler) loop(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			observability.PollTicks.WithLabelValues("timer").Inc()
			// Each tick runs in its own goroutine so a slow refresh never
			// blocks the cadence. Callbacks tolerate overlap.
			go s.invoke()
		}
	}
}

func (s *Scheduler) invoke() {
	s.mu.Lock()
	fn := s.fn
	ctx := s.ctx
	s.mu.Unlock()

	if fn == nil {
		return
	}
	if err := ctx.Err(); err != nil {
		return
	}
	fn(ctx)
}
