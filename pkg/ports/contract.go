package ports

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunJobServiceContract runs a suite of tests to verify that a JobService
// implementation adheres to the interface contract. The service must be
// seeded with at least one open posting. The suite mutates the dataset, so
// callers should hand it a throwaway instance.
//
// This is the mode-transparency check: the memory and rest adapters both
// run it against equivalent seeded state, so any divergence in envelope
// shape or business rules fails here rather than in a UI.
func RunJobServiceContract(t *testing.T, svc JobService) {
	ctx := context.Background()
	actor := "contract-actor-" + time.Now().Format("20060102150405")

	var firstID string
	t.Run("List seeded postings", func(t *testing.T) {
		env := svc.List(ctx)
		require.True(t, env.Success, "List should succeed: %s", env.Message)
		require.NotEmpty(t, env.Data, "service must be seeded with postings")
		firstID = env.Data[0].ID
	})

	t.Run("GetByID round-trip", func(t *testing.T) {
		env := svc.GetByID(ctx, firstID)
		require.True(t, env.Success, env.Message)
		assert.Equal(t, firstID, env.Data.ID)
	})

	t.Run("GetByID unknown fails with message", func(t *testing.T) {
		env := svc.GetByID(ctx, "no-such-posting")
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Message, "business rejections must carry a message")
	})

	var created domain.JobPosting
	t.Run("Create assigns identity", func(t *testing.T) {
		env := svc.Create(ctx, domain.JobPosting{
			Title:    "Contract Verification Engineer",
			Company:  "Xylograph Labs",
			Location: "Remote",
			PostedBy: actor,
		})
		require.True(t, env.Success, env.Message)
		created = env.Data
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, domain.JobOpen, created.Status)
		assert.False(t, created.PostedAt.IsZero())

		got := svc.GetByID(ctx, created.ID)
		require.True(t, got.Success, got.Message)
		assert.Equal(t, created.Title, got.Data.Title)
	})

	t.Run("Create rejects blank title", func(t *testing.T) {
		env := svc.Create(ctx, domain.JobPosting{Company: "Nameless Inc"})
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Message)
	})

	t.Run("Update persists changes", func(t *testing.T) {
		created.Location = "Lisbon"
		env := svc.Update(ctx, created)
		require.True(t, env.Success, env.Message)

		got := svc.GetByID(ctx, created.ID)
		require.True(t, got.Success, got.Message)
		assert.Equal(t, "Lisbon", got.Data.Location)
	})

	t.Run("Search matches case-insensitively", func(t *testing.T) {
		env := svc.Search(ctx, "xylograph")
		require.True(t, env.Success, env.Message)
		require.NotEmpty(t, env.Data)
		found := false
		for _, job := range env.Data {
			if job.ID == created.ID {
				found = true
			}
		}
		assert.True(t, found, "search should find the created posting")
	})

	t.Run("Search blank query succeeds empty", func(t *testing.T) {
		env := svc.Search(ctx, "   ")
		require.True(t, env.Success, env.Message)
		assert.Empty(t, env.Data)
	})

	t.Run("Apply then HasApplied", func(t *testing.T) {
		pre := svc.HasApplied(ctx, created.ID, actor)
		require.True(t, pre.Success, pre.Message)
		assert.False(t, pre.Data)

		env := svc.Apply(ctx, created.ID, actor, "hello")
		require.True(t, env.Success, env.Message)
		assert.Equal(t, created.ID, env.Data.JobID)
		assert.Equal(t, actor, env.Data.ActorID)

		post := svc.HasApplied(ctx, created.ID, actor)
		require.True(t, post.Success, post.Message)
		assert.True(t, post.Data)
	})

	t.Run("Duplicate application is a business rejection", func(t *testing.T) {
		env := svc.Apply(ctx, created.ID, actor, "again")
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Message)
	})

	t.Run("Close stops further applications", func(t *testing.T) {
		env := svc.Close(ctx, created.ID)
		require.True(t, env.Success, env.Message)
		assert.Equal(t, domain.JobClosed, env.Data.Status)

		apply := svc.Apply(ctx, created.ID, "someone-else", "")
		assert.False(t, apply.Success)
		assert.NotEmpty(t, apply.Message)
	})
}

// RunDirectoryServiceContract verifies a DirectoryService implementation.
// The service must be seeded with at least one profile.
func RunDirectoryServiceContract(t *testing.T, svc DirectoryService) {
	ctx := context.Background()

	var sample domain.Profile
	t.Run("List seeded profiles", func(t *testing.T) {
		env := svc.List(ctx)
		require.True(t, env.Success, env.Message)
		require.NotEmpty(t, env.Data, "service must be seeded with profiles")
		sample = env.Data[0]

		names := make([]string, len(env.Data))
		for i, p := range env.Data {
			names[i] = strings.ToLower(p.Name)
		}
		assert.IsNonDecreasing(t, names, "List must sort by name")
	})

	t.Run("GetByID round-trip", func(t *testing.T) {
		env := svc.GetByID(ctx, sample.ID)
		require.True(t, env.Success, env.Message)
		assert.Equal(t, sample.Name, env.Data.Name)
	})

	t.Run("GetByID unknown fails with message", func(t *testing.T) {
		env := svc.GetByID(ctx, "no-such-profile")
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Message)
	})

	t.Run("Search finds by name fragment", func(t *testing.T) {
		fragment := sample.Name[:3]
		env := svc.Search(ctx, strings.ToUpper(fragment))
		require.True(t, env.Success, env.Message)
		found := false
		for _, p := range env.Data {
			if p.ID == sample.ID {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("Suggest prefixes and caps", func(t *testing.T) {
		env := svc.Suggest(ctx, strings.ToLower(sample.Name[:1]))
		require.True(t, env.Success, env.Message)
		require.NotEmpty(t, env.Data)
		assert.LessOrEqual(t, len(env.Data), SuggestLimit)
		for _, name := range env.Data {
			assert.True(t, strings.HasPrefix(strings.ToLower(name), strings.ToLower(sample.Name[:1])),
				"suggestion %q must share the prefix", name)
		}
	})

	t.Run("Suggest blank prefix succeeds empty", func(t *testing.T) {
		env := svc.Suggest(ctx, "  ")
		require.True(t, env.Success, env.Message)
		assert.Empty(t, env.Data)
	})
}

// RunSessionStoreContract verifies that a SessionStore implementation
// adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewSessionState(sessionID, "actor-7")
		state.CommittedQuery = "platform engineer"

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "actor-7", loaded.ActorID)
		assert.Equal(t, "platform engineer", loaded.CommittedQuery)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSessionState(sessionID, "actor-7"))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})
}
