package domain

import "time"

// SessionState is the small persisted state of one signed-in session: who
// the actor is and what search they last committed. It survives in whatever
// SessionStore backs the session manager (memory during development, redis
// when shared).
type SessionState struct {
	SessionID      string    `json:"session_id"`
	ActorID        string    `json:"actor_id"`
	DisplayName    string    `json:"display_name,omitempty"`
	CommittedQuery string    `json:"committed_query,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewSessionState creates the state for a freshly signed-in actor.
func NewSessionState(sessionID, actorID string) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		ActorID:   actorID,
		UpdatedAt: time.Now().UTC(),
	}
}
