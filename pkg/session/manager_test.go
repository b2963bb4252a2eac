package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/atriumhq/atrium/pkg/adapters/memory"
	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInAndActorProvider(t *testing.T) {
	m := session.NewManager(memory.NewSessionStore())
	ctx := context.Background()

	_, err := m.SignIn(ctx, "s1", "prof-0003")
	require.NoError(t, err)

	actor, err := m.ActorProvider("s1").CurrentActorID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "prof-0003", actor)
}

func TestSignInRequiresActor(t *testing.T) {
	m := session.NewManager(memory.NewSessionStore())
	_, err := m.SignIn(context.Background(), "s1", "")
	assert.ErrorIs(t, err, domain.ErrNoActor)
}

func TestActorProviderWithoutSession(t *testing.T) {
	m := session.NewManager(memory.NewSessionStore())
	_, err := m.ActorProvider("ghost").CurrentActorID(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActor)
}

func TestCommitSearchRoundTrip(t *testing.T) {
	m := session.NewManager(memory.NewSessionStore())
	ctx := context.Background()

	_, err := m.SignIn(ctx, "s1", "prof-0001")
	require.NoError(t, err)

	require.NoError(t, m.CommitSearch(ctx, "s1", "site reliability"))
	assert.Equal(t, "site reliability", m.CommittedSearch(ctx, "s1"))
	assert.Empty(t, m.CommittedSearch(ctx, "other"), "absent sessions read as empty")
}

func TestEndFiresHooksAndClearsState(t *testing.T) {
	invalidated := 0
	m := session.NewManager(memory.NewSessionStore(), session.OnEnd(func() { invalidated++ }))
	ctx := context.Background()

	_, err := m.SignIn(ctx, "s1", "prof-0001")
	require.NoError(t, err)

	require.NoError(t, m.End(ctx, "s1"))
	assert.Equal(t, 1, invalidated, "logout must fire the invalidation hook")

	_, err = m.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestConcurrentCommitsSerialize(t *testing.T) {
	m := session.NewManager(memory.NewSessionStore())
	ctx := context.Background()

	_, err := m.SignIn(ctx, "s1", "prof-0001")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.CommitSearch(ctx, "s1", "query"))
		}()
	}
	wg.Wait()

	state, err := m.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "query", state.CommittedQuery)
	assert.Equal(t, "prof-0001", state.ActorID, "actor must survive concurrent updates")
}
