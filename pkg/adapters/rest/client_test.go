package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atriumhq/atrium/internal/devserver"
	"github.com/atriumhq/atrium/pkg/adapters/memory"
	"github.com/atriumhq/atrium/pkg/adapters/rest"
	"github.com/atriumhq/atrium/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRemote starts a devserver over a fresh fixture dataset and returns a
// client pointed at it. This is the same seeded state the memory adapter
// contract runs against, which is what makes the contract suite a
// mode-transparency check.
func newRemote(t *testing.T, opts ...rest.Option) *rest.Client {
	t.Helper()
	ds, err := memory.NewDataset()
	require.NoError(t, err)
	srv := httptest.NewServer(devserver.NewHandler(
		memory.NewJobService(ds), memory.NewDirectoryService(ds)))
	t.Cleanup(srv.Close)
	return rest.NewClient(srv.URL, opts...)
}

func TestJobService_Contract(t *testing.T) {
	ports.RunJobServiceContract(t, newRemote(t).Jobs())
}

func TestDirectoryService_Contract(t *testing.T) {
	ports.RunDirectoryServiceContract(t, newRemote(t).Directory())
}

func TestUnreachableBackendYieldsEnvelope(t *testing.T) {
	// Nothing listens here; the request must fail fast and stay inside
	// the envelope.
	c := rest.NewClient("http://127.0.0.1:1")

	env := c.Jobs().List(context.Background())
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
	assert.Empty(t, env.Data)
}

func TestServerErrorYieldsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	env := rest.NewClient(srv.URL).Jobs().List(context.Background())
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "502")
}

func TestMalformedResponseYieldsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("<html>this is not json</html>"))
	}))
	t.Cleanup(srv.Close)

	env := rest.NewClient(srv.URL).Directory().List(context.Background())
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
}

func TestBearerTokenAttached(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := rest.NewClient(srv.URL, rest.WithTokenSource(rest.StaticToken("sekret")))
	env := c.Jobs().List(context.Background())
	require.True(t, env.Success)
	assert.Equal(t, "Bearer sekret", got)
}

func TestTokenProtectedDevserverRoundTrip(t *testing.T) {
	ds, err := memory.NewDataset()
	require.NoError(t, err)
	srv := httptest.NewServer(devserver.NewHandler(
		memory.NewJobService(ds), memory.NewDirectoryService(ds),
		devserver.WithToken("hunter2")))
	t.Cleanup(srv.Close)

	// Wrong token: the 401 envelope comes through as a failure.
	wrong := rest.NewClient(srv.URL, rest.WithTokenSource(rest.StaticToken("nope")))
	env := wrong.Jobs().List(context.Background())
	assert.False(t, env.Success)

	right := rest.NewClient(srv.URL, rest.WithTokenSource(rest.StaticToken("hunter2")))
	env = right.Jobs().List(context.Background())
	assert.True(t, env.Success, env.Message)
}
