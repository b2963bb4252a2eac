package suggest_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects callback invocations behind a lock, since callbacks may
// run from lookup goroutines and timers.
type recorder struct {
	mu          sync.Mutex
	suggestions [][]string
	commits     []string
	commitTimes []time.Time
}

func (r *recorder) options() []suggest.Option {
	return []suggest.Option{
		suggest.OnSuggestions(func(s []string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.suggestions = append(r.suggestions, s)
		}),
		suggest.OnCommit(func(q string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.commits = append(r.commits, q)
			r.commitTimes = append(r.commitTimes, time.Now())
		}),
	}
}

func (r *recorder) lastSuggestions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.suggestions) == 0 {
		return nil
	}
	return r.suggestions[len(r.suggestions)-1]
}

func (r *recorder) allCommits() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commits...)
}

// blockingLookup lets the test decide when and with what each query resolves.
type blockingLookup struct {
	mu      sync.Mutex
	pending map[string]chan domain.Envelope[[]string]
}

func newBlockingLookup() *blockingLookup {
	return &blockingLookup{pending: make(map[string]chan domain.Envelope[[]string])}
}

func (b *blockingLookup) fn(ctx context.Context, query string) domain.Envelope[[]string] {
	return <-b.channel(query)
}

func (b *blockingLookup) channel(query string) chan domain.Envelope[[]string] {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.pending[query]
	if !ok {
		ch = make(chan domain.Envelope[[]string], 1)
		b.pending[query] = ch
	}
	return ch
}

func (b *blockingLookup) resolve(query string, results ...string) {
	b.channel(query) <- domain.OK(results)
}

func instant(results map[string][]string) suggest.LookupFunc {
	return func(ctx context.Context, query string) domain.Envelope[[]string] {
		return domain.OK(results[query])
	}
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 2*time.Millisecond, msg)
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	lookup := newBlockingLookup()
	rec := &recorder{}
	f := suggest.New(lookup.fn, append(rec.options(), suggest.WithQuietPeriod(time.Minute))...)
	ctx := context.Background()

	f.Input(ctx, "a")
	f.Input(ctx, "al")
	f.Input(ctx, "ali")

	// Resolve out of order: newest first, then the two stale ones.
	lookup.resolve("ali", "Alice Okafor", "Alix Fontaine")
	eventually(t, func() bool {
		return len(rec.lastSuggestions()) == 2
	}, "newest response should be applied")

	lookup.resolve("a", "Aaron")
	lookup.resolve("al", "Albert")
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, []string{"Alice Okafor", "Alix Fontaine"}, rec.lastSuggestions(),
		"late responses for older tokens must not overwrite the newest result")
}

func TestResponsesApplyInTokenOrder(t *testing.T) {
	const keystrokes = 20
	rec := &recorder{}
	// Older queries resolve later: worst-case out-of-order arrival.
	slowerWhenOlder := func(ctx context.Context, query string) domain.Envelope[[]string] {
		time.Sleep(time.Duration(keystrokes-len(query)) * 2 * time.Millisecond)
		return domain.OK([]string{query})
	}
	f := suggest.New(slowerWhenOlder, append(rec.options(), suggest.WithQuietPeriod(time.Minute))...)
	ctx := context.Background()

	query := ""
	for range keystrokes {
		query += "x"
		f.Input(ctx, query)
	}

	eventually(t, func() bool {
		s := rec.lastSuggestions()
		return len(s) == 1 && s[0] == query
	}, "dropdown should settle on the newest query")

	// Give every straggler time to arrive, then check nothing rolled back.
	time.Sleep(3 * keystrokes * time.Millisecond)
	s := rec.lastSuggestions()
	require.Len(t, s, 1)
	assert.Equal(t, query, s[0],
		"a late response for an older query must never overwrite a newer query's results")

	prev := 0
	for _, event := range rec.suggestionEvents() {
		require.Len(t, event, 1)
		assert.Greater(t, len(event[0]), prev, "applied responses must move forward, never backward")
		prev = len(event[0])
	}
}

func TestDebounceCommitsOnceAfterQuietPeriod(t *testing.T) {
	const quiet = 40 * time.Millisecond
	rec := &recorder{}
	f := suggest.New(instant(nil), append(rec.options(), suggest.WithQuietPeriod(quiet))...)
	ctx := context.Background()

	start := time.Now()
	for _, v := range []string{"e", "en", "eng", "engi", "engin"} {
		f.Input(ctx, v)
		time.Sleep(5 * time.Millisecond)
	}

	eventually(t, func() bool { return len(rec.allCommits()) == 1 }, "exactly one commit expected")
	assert.Equal(t, []string{"engin"}, rec.allCommits())

	rec.mu.Lock()
	elapsed := rec.commitTimes[0].Sub(start)
	rec.mu.Unlock()
	assert.GreaterOrEqual(t, elapsed, quiet, "commit must wait out the quiet period after the last keystroke")

	// No second commit shows up later.
	time.Sleep(3 * quiet)
	assert.Len(t, rec.allCommits(), 1)
}

func TestEnterCommitsImmediatelyAndCancelsTimer(t *testing.T) {
	const quiet = 40 * time.Millisecond
	rec := &recorder{}
	f := suggest.New(instant(nil), append(rec.options(), suggest.WithQuietPeriod(quiet))...)
	ctx := context.Background()

	f.Input(ctx, "harbourline")
	f.Commit()

	assert.Equal(t, []string{"harbourline"}, rec.allCommits(), "Enter should commit without waiting")

	time.Sleep(3 * quiet)
	assert.Len(t, rec.allCommits(), 1, "the debounce timer must not fire a second commit")
}

func TestClearingInputCancelsEverything(t *testing.T) {
	lookup := newBlockingLookup()
	rec := &recorder{}
	f := suggest.New(lookup.fn, append(rec.options(), suggest.WithQuietPeriod(20*time.Millisecond))...)
	ctx := context.Background()

	f.Input(ctx, "gr")
	f.Input(ctx, "   ")

	eventually(t, func() bool {
		return len(rec.allCommits()) == 0 && rec.lastSuggestions() == nil && len(rec.suggestionEvents()) >= 1
	}, "clearing should close the dropdown")

	// The orphaned lookup resolving later must be dropped.
	lookup.resolve("gr", "Grace Liu")
	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, rec.lastSuggestions())
	assert.Empty(t, rec.allCommits(), "a cleared input must never commit")
}

func TestSelectCommitsSuggestion(t *testing.T) {
	rec := &recorder{}
	f := suggest.New(instant(map[string][]string{"ali": {"Alice Okafor"}}),
		append(rec.options(), suggest.WithQuietPeriod(20*time.Millisecond))...)
	ctx := context.Background()

	f.Input(ctx, "ali")
	eventually(t, func() bool { return rec.lastSuggestions() != nil }, "dropdown should open first")
	f.Select("Alice Okafor")

	assert.Equal(t, []string{"Alice Okafor"}, rec.allCommits())
	assert.Nil(t, rec.lastSuggestions(), "selecting closes the dropdown")

	time.Sleep(60 * time.Millisecond)
	assert.Len(t, rec.allCommits(), 1, "the debounced commit for the typed prefix must be cancelled")
}

func TestFailedLookupClearsSuggestions(t *testing.T) {
	rec := &recorder{}
	failing := func(ctx context.Context, query string) domain.Envelope[[]string] {
		return domain.Fail[[]string]("directory unavailable")
	}
	f := suggest.New(failing, append(rec.options(), suggest.WithQuietPeriod(time.Minute))...)
	ctx := context.Background()

	f.Input(ctx, "gra")
	eventually(t, func() bool { return len(rec.suggestionEvents()) >= 1 }, "failure should publish a cleared list")
	assert.Nil(t, rec.lastSuggestions())
}

func TestDismissClosesListButKeepsPendingCommit(t *testing.T) {
	const quiet = 30 * time.Millisecond
	rec := &recorder{}
	f := suggest.New(instant(map[string][]string{"maple": {"Maple Systems"}}),
		append(rec.options(), suggest.WithQuietPeriod(quiet))...)
	ctx := context.Background()

	f.Input(ctx, "maple")
	eventually(t, func() bool { return rec.lastSuggestions() != nil }, "dropdown should open first")
	f.Dismiss()

	assert.Nil(t, rec.lastSuggestions())
	eventually(t, func() bool { return len(rec.allCommits()) == 1 },
		"Escape closes the dropdown but does not cancel the debounced commit")
	assert.Equal(t, []string{"maple"}, rec.allCommits())
}

func (r *recorder) suggestionEvents() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.suggestions...)
}
