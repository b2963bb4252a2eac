package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atriumhq/atrium/pkg/adapters/file"
	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_WritesOneJSONFilePerSession(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.NewSessionState("s1", "prof-0001")))
	require.NoError(t, store.Save(ctx, "s2", domain.NewSessionState("s2", "prof-0002")))

	_, err := os.Stat(filepath.Join(dir, "s1.json"))
	require.NoError(t, err)

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s1", "s2"}, sessions)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	state := domain.NewSessionState("s1", "prof-0001")
	require.NoError(t, store.Save(ctx, "s1", state))

	state.CommittedQuery = "data science"
	require.NoError(t, store.Save(ctx, "s1", state))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "data science", loaded.CommittedQuery)
}

func TestFileStore_ListOnMissingDirIsEmpty(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	sessions, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestFileStore_RejectsEmptySessionID(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", domain.NewSessionState("", "prof-0001")))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}
