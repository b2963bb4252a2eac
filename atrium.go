package atrium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/atriumhq/atrium/internal/logging"
	"github.com/atriumhq/atrium/pkg/adapters/file"
	"github.com/atriumhq/atrium/pkg/adapters/memory"
	redisstore "github.com/atriumhq/atrium/pkg/adapters/redis"
	"github.com/atriumhq/atrium/pkg/adapters/rest"
	"github.com/atriumhq/atrium/pkg/cache"
	"github.com/atriumhq/atrium/pkg/config"
	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/ports"
	"github.com/atriumhq/atrium/pkg/session"
	"github.com/atriumhq/atrium/pkg/suggest"
)

// Version is the library version, overridden at release time.
var Version = "0.4.0"

// hasAppliedKind is the cache kind for the "has this actor applied?"
// derived query.
const hasAppliedKind = "has_applied"

// Client is the assembled sync layer for one process. The backend mode is
// resolved exactly once, when New builds the facades; nothing downstream
// ever branches on it again.
type Client struct {
	Jobs      ports.JobService
	Directory ports.DirectoryService
	Session   *session.Manager

	applied   *cache.Cache[bool]
	sessionID string
	actor     domain.ActorProvider
	notify    domain.Notifier
	logger    *slog.Logger

	// test seams
	jobsOverride ports.JobService
	dirOverride  ports.DirectoryService
	store        ports.SessionStore
	httpClient   *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a structured logger for the whole layer.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithNotifier sets the toast/notification collaborator. Mutating calls
// surface their failure messages through it.
func WithNotifier(notify domain.Notifier) Option {
	return func(c *Client) {
		c.notify = notify
	}
}

// WithSessionStore overrides the session store chosen from configuration.
func WithSessionStore(store ports.SessionStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithHTTPClient overrides the HTTP client used in remote mode.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithJobService injects a custom job facade, bypassing mode selection.
func WithJobService(svc ports.JobService) Option {
	return func(c *Client) {
		c.jobsOverride = svc
	}
}

// WithDirectoryService injects a custom directory facade, bypassing mode
// selection.
func WithDirectoryService(svc ports.DirectoryService) Option {
	return func(c *Client) {
		c.dirOverride = svc
	}
}

// New assembles the sync layer for the mode resolved from cfg. This is the
// single factory: the mode flag is consulted here and nowhere else.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	c := &Client{
		sessionID: cfg.SessionID,
		notify:    func(string) {},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.buildFacades(cfg); err != nil {
		return nil, err
	}

	if c.store == nil {
		switch {
		case cfg.RedisAddr != "":
			c.store = redisstore.New(cfg.RedisAddr, "", 0)
		case cfg.StateDir != "":
			c.store = file.New(cfg.StateDir)
		default:
			c.store = memory.NewSessionStore()
		}
	}

	c.applied = cache.New(cache.WithLogger[bool](logging.For(c.logger, "cache")))
	c.Session = session.NewManager(c.store,
		session.WithLogger(logging.For(c.logger, "session")),
		// Logout clears every derived result; cached answers are scoped
		// to the signed-in actor.
		session.OnEnd(c.applied.InvalidateAll),
	)
	c.actor = c.Session.ActorProvider(c.sessionID)

	c.logger.Debug("sync layer ready", "mode", cfg.Mode(), "session_id", c.sessionID)
	return c, nil
}

func (c *Client) buildFacades(cfg *config.Config) error {
	if c.jobsOverride != nil || c.dirOverride != nil {
		if c.jobsOverride == nil || c.dirOverride == nil {
			return errors.New("both facades must be injected together")
		}
		c.Jobs = c.jobsOverride
		c.Directory = c.dirOverride
		return nil
	}

	switch cfg.Mode() {
	case config.ModeRemote:
		clientOpts := []rest.Option{
			rest.WithTokenSource(rest.StaticToken(cfg.Token)),
			rest.WithLogger(logging.For(c.logger, "rest")),
		}
		if c.httpClient != nil {
			clientOpts = append(clientOpts, rest.WithHTTPClient(c.httpClient))
		}
		api := rest.NewClient(cfg.BaseURL, clientOpts...)
		c.Jobs = api.Jobs()
		c.Directory = api.Directory()
	default:
		ds, err := memory.NewDataset()
		if err != nil {
			return fmt.Errorf("failed to seed simulated backend: %w", err)
		}
		c.Jobs = memory.NewJobService(ds)
		c.Directory = memory.NewDirectoryService(ds)
	}
	return nil
}

// Actor returns the current actor provider.
func (c *Client) Actor() domain.ActorProvider {
	return c.actor
}

// SessionID returns the session this client binds its state to.
func (c *Client) SessionID() string {
	return c.sessionID
}

// HasApplied answers the derived query "has the current actor applied to
// this job?" through the read-through cache. The first ask per (job, actor)
// hits the facade; repeats are served from the cache until an Apply for the
// same key invalidates it or the session ends.
func (c *Client) HasApplied(ctx context.Context, jobID string) (bool, error) {
	actorID, err := c.actor.CurrentActorID(ctx)
	if err != nil {
		return false, err
	}

	key := cache.Key{Kind: hasAppliedKind, ResourceID: jobID, ActorID: actorID}
	return c.applied.Get(ctx, key, func(ctx context.Context) (bool, error) {
		env := c.Jobs.HasApplied(ctx, jobID, actorID)
		if !env.Success {
			// Not cached; the next read retries.
			return false, errors.New(env.Reason())
		}
		return env.Data, nil
	})
}

// Apply submits an application for the current actor. On success the
// matching derived-query entry is invalidated; on failure the envelope
// message is surfaced through the notifier. Callers gate this behind a
// confirm.Gate when the UI demands an "are you sure?".
func (c *Client) Apply(ctx context.Context, jobID, note string) domain.Envelope[domain.Application] {
	actorID, err := c.actor.CurrentActorID(ctx)
	if err != nil {
		return domain.Fail[domain.Application]("Sign in to apply.")
	}

	env := c.Jobs.Apply(ctx, jobID, actorID, note)
	if env.Success {
		c.applied.Invalidate(cache.Key{Kind: hasAppliedKind, ResourceID: jobID, ActorID: actorID})
	} else {
		c.notify(env.Reason())
	}
	return env
}

// CloseJob closes a posting, surfacing failures through the notifier.
func (c *Client) CloseJob(ctx context.Context, jobID string) domain.Envelope[domain.JobPosting] {
	env := c.Jobs.Close(ctx, jobID)
	if !env.Success {
		c.notify(env.Reason())
	}
	return env
}

// NewSearchFetcher builds the debounced search-as-you-type pipeline over
// the directory's suggestion endpoint. The committed query is persisted on
// the session before the caller's onCommit runs.
func (c *Client) NewSearchFetcher(onCommit func(string), opts ...suggest.Option) *suggest.Fetcher {
	all := append([]suggest.Option{
		suggest.WithLogger(logging.For(c.logger, "suggest")),
		suggest.OnCommit(func(query string) {
			if err := c.Session.CommitSearch(context.Background(), c.sessionID, query); err != nil {
				c.logger.Warn("failed to persist committed search", "err", err)
			}
			if onCommit != nil {
				onCommit(query)
			}
		}),
	}, opts...)
	return suggest.New(c.Directory.Suggest, all...)
}

// Logout ends the session. The session.OnEnd hook clears the derived-query
// cache as a side effect.
func (c *Client) Logout(ctx context.Context) error {
	return c.Session.End(ctx, c.sessionID)
}
