package confirm_test

import (
	"sync"
	"testing"

	"github.com/atriumhq/atrium/pkg/confirm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptInvokesExactlyOnce(t *testing.T) {
	g := confirm.New()
	calls := 0
	g.Confirm(confirm.Request{
		Title:     "Close posting?",
		OnConfirm: func() { calls++ },
	})
	require.True(t, g.IsOpen())

	g.Accept()
	assert.Equal(t, 1, calls)
	assert.False(t, g.IsOpen())

	// Rapid second click: the gate is already idle.
	g.Accept()
	assert.Equal(t, 1, calls)
}

func TestCancelNeverInvokes(t *testing.T) {
	g := confirm.New()
	calls := 0
	g.Confirm(confirm.Request{OnConfirm: func() { calls++ }})

	g.Cancel()
	assert.Zero(t, calls)
	assert.False(t, g.IsOpen())

	// Accept after cancel is a no-op too.
	g.Accept()
	assert.Zero(t, calls)
}

func TestDismissBehavesLikeCancel(t *testing.T) {
	g := confirm.New()
	calls := 0
	g.Confirm(confirm.Request{OnConfirm: func() { calls++ }})

	g.Dismiss()
	g.Accept()
	assert.Zero(t, calls)
}

func TestReentrantConfirmLastCallWins(t *testing.T) {
	g := confirm.New()
	var got []string
	g.Confirm(confirm.Request{Title: "first", OnConfirm: func() { got = append(got, "first") }})
	g.Confirm(confirm.Request{Title: "second", OnConfirm: func() { got = append(got, "second") }})

	req, open := g.Pending()
	require.True(t, open)
	assert.Equal(t, "second", req.Title)

	g.Accept()
	assert.Equal(t, []string{"second"}, got, "the replaced request's OnConfirm must never fire")
}

func TestDefaultsApplied(t *testing.T) {
	g := confirm.New()
	g.Confirm(confirm.Request{Title: "Delete?"})

	req, open := g.Pending()
	require.True(t, open)
	assert.Equal(t, "Confirm", req.ConfirmText)
	assert.Equal(t, "Cancel", req.CancelText)
	assert.Equal(t, confirm.VariantDefault, req.Variant)
}

func TestConcurrentAcceptsInvokeOnce(t *testing.T) {
	g := confirm.New()
	var mu sync.Mutex
	calls := 0
	g.Confirm(confirm.Request{OnConfirm: func() {
		mu.Lock()
		calls++
		mu.Unlock()
	}})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Accept()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}
