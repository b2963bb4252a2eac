// Package suggest implements the search-as-you-type pipeline: an immediate,
// token-ordered suggestion lookup per keystroke, plus a debounced "commit
// search" action that fires only after the typist pauses.
//
// Two different delays are at play and only one of them is a debounce. The
// suggestion lookup is dispatched on every keystroke and ordered by a
// monotonically increasing token: a response is applied only if it belongs
// to the newest request, so a slow lookup for an old prefix can never
// overwrite a newer one. The commit action (the thing that updates shared
// query state and may navigate) is the debounced half, firing after a quiet
// period with the timer reset on every keystroke.
package suggest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/atriumhq/atrium/internal/logging"
	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/observability"
)

// DefaultQuietPeriod is the debounce window for the commit action.
const DefaultQuietPeriod = 300 * time.Millisecond

// LookupFunc resolves suggestions for a query. It wraps a service facade
// read, so failure arrives as an unsuccessful envelope, never a panic.
type LookupFunc func(ctx context.Context, query string) domain.Envelope[[]string]

// Fetcher consumes input-change events. Safe for concurrent use. Callbacks
// may run from a lookup goroutine or the debounce timer, so they must
// synchronize their own state; the dropdown callback is additionally
// serialized internally and must not call back into the Fetcher.
type Fetcher struct {
	lookup LookupFunc
	quiet  time.Duration
	logger *slog.Logger

	onEcho        func(string)   // immediate input feedback
	onSuggestions func([]string) // nil clears the dropdown
	onCommit      func(string)   // the debounced search action

	mu        sync.Mutex
	seq       uint64 // last suggestion token handed out
	commitSeq uint64 // generation of the pending commit
	pending   string // trimmed value awaiting commit
	timer     *time.Timer

	// applyMu serializes dropdown updates. The stale-token check and the
	// onSuggestions call happen under it as one step, so a response that
	// passed the check cannot be preempted and land after a newer
	// response's apply.
	applyMu sync.Mutex
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithQuietPeriod overrides the debounce window. Tests use a few
// milliseconds; the UI default is DefaultQuietPeriod.
func WithQuietPeriod(d time.Duration) Option {
	return func(f *Fetcher) {
		f.quiet = d
	}
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// OnEcho registers the immediate input-feedback callback.
func OnEcho(fn func(string)) Option {
	return func(f *Fetcher) {
		f.onEcho = fn
	}
}

// OnSuggestions registers the dropdown callback. It receives nil when the
// list should close.
func OnSuggestions(fn func([]string)) Option {
	return func(f *Fetcher) {
		f.onSuggestions = fn
	}
}

// OnCommit registers the committed-search callback.
func OnCommit(fn func(string)) Option {
	return func(f *Fetcher) {
		f.onCommit = fn
	}
}

// New creates a Fetcher around a suggestion source.
func New(lookup LookupFunc, opts ...Option) *Fetcher {
	f := &Fetcher{
		lookup: lookup,
		quiet:  DefaultQuietPeriod,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Input handles one keystroke's worth of raw value.
func (f *Fetcher) Input(ctx context.Context, raw string) {
	f.echo(raw)

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		// Clearing the input cancels the pending commit and orphans any
		// in-flight lookup; its response will fail the token comparison.
		f.mu.Lock()
		f.seq++
		f.commitSeq++
		f.pending = ""
		f.stopTimerLocked()
		f.mu.Unlock()
		f.publish(nil)
		return
	}

	f.mu.Lock()
	f.seq++
	token := f.seq
	f.commitSeq++
	gen := f.commitSeq
	f.pending = trimmed
	f.stopTimerLocked()
	f.timer = time.AfterFunc(f.quiet, func() {
		f.commitIfCurrent(gen)
	})
	f.mu.Unlock()

	// The lookup itself is not debounced; ordering is by token.
	go f.fetch(ctx, token, trimmed)
}

// Commit short-circuits the debounce (Enter). It fires the commit callback
// with the pending value immediately and cancels the timer. A Commit with
// nothing pending is a no-op.
func (f *Fetcher) Commit() {
	f.mu.Lock()
	gen := f.commitSeq
	f.stopTimerLocked()
	f.mu.Unlock()
	f.commitIfCurrent(gen)
}

// Select commits a chosen suggestion immediately, closing the dropdown and
// discarding any in-flight lookup.
func (f *Fetcher) Select(value string) {
	f.mu.Lock()
	f.seq++ // orphan in-flight responses
	f.commitSeq++
	f.pending = ""
	f.stopTimerLocked()
	f.mu.Unlock()

	f.publish(nil)
	if f.onCommit != nil && strings.TrimSpace(value) != "" {
		f.onCommit(value)
	}
}

// Dismiss closes the suggestion list (Escape) without touching the
// committed search state or the pending debounce.
func (f *Fetcher) Dismiss() {
	f.mu.Lock()
	f.seq++ // a late response must not reopen the list
	f.mu.Unlock()
	f.publish(nil)
}

func (f *Fetcher) fetch(ctx context.Context, token uint64, query string) {
	env := f.lookup(ctx, query)

	f.applyMu.Lock()
	defer f.applyMu.Unlock()

	f.mu.Lock()
	stale := token != f.seq
	f.mu.Unlock()
	if stale {
		observability.SuggestDiscarded.Inc()
		f.logger.Debug("discarded stale suggestion response", "query", query)
		return
	}

	if !env.Success {
		// Suggestions are best-effort: close the dropdown and keep typing.
		f.logger.Debug("suggestion lookup failed", "query", query, "reason", env.Reason())
		f.applyLocked(nil)
		return
	}
	f.applyLocked(env.Data)
}

// commitIfCurrent fires the commit callback unless a newer keystroke
// superseded the generation. A fired timer racing a fresh keystroke lands
// here with a stale generation and backs off.
func (f *Fetcher) commitIfCurrent(gen uint64) {
	f.mu.Lock()
	if gen != f.commitSeq {
		f.mu.Unlock()
		return
	}
	value := f.pending
	f.pending = ""
	f.mu.Unlock()

	if f.onCommit != nil && value != "" {
		f.onCommit(value)
	}
}

func (f *Fetcher) stopTimerLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Fetcher) echo(raw string) {
	if f.onEcho != nil {
		f.onEcho(raw)
	}
}

func (f *Fetcher) publish(suggestions []string) {
	f.applyMu.Lock()
	defer f.applyMu.Unlock()
	f.applyLocked(suggestions)
}

// applyLocked invokes the dropdown callback. Callers hold applyMu.
func (f *Fetcher) applyLocked(suggestions []string) {
	if f.onSuggestions != nil {
		f.onSuggestions(suggestions)
	}
}
