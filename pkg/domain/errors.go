package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoActor is returned when an operation needs a signed-in actor and the
// session has none.
var ErrNoActor = errors.New("no actor in session")
