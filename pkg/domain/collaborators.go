package domain

import "context"

// Notifier surfaces a short user-visible message (a toast in the reference
// UI). The sync layer only ever hands it envelope messages; it never
// formats its own prose beyond FallbackMessage.
type Notifier func(message string)

// ActorProvider yields the identity of the current actor, used for cache
// keys and application ownership. Implementations read session state; they
// return ErrNoActor when nobody is signed in.
type ActorProvider interface {
	CurrentActorID(ctx context.Context) (string, error)
}

// ActorFunc adapts a plain function to an ActorProvider.
type ActorFunc func(ctx context.Context) (string, error)

func (f ActorFunc) CurrentActorID(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticActor returns a provider that always yields the given ID. Useful in
// tests and single-user tooling.
func StaticActor(id string) ActorProvider {
	return ActorFunc(func(context.Context) (string, error) {
		if id == "" {
			return "", ErrNoActor
		}
		return id, nil
	})
}
