package ports

import (
	"context"

	"github.com/atriumhq/atrium/pkg/domain"
)

// SessionStore persists the per-session state (actor identity, committed
// search). Unlike the service facades it speaks Go errors: it is internal
// plumbing, not a UI-facing contract.
type SessionStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.SessionState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.SessionState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error
}
