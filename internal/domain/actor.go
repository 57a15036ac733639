package domain

import "context"

// Actor identifies who performed an operation. It exists only to populate
// Transaction.CreatedBy; authorization lives entirely outside the core.
type Actor struct {
	ID          string
	DisplayName string
	Role        string
}

type actorKey struct{}

// SystemActor is used when no caller identity is present.
var SystemActor = Actor{ID: "system", DisplayName: "system"}

// ContextWithActor attaches an actor to the context.
func ContextWithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext returns the actor stored in ctx, or SystemActor.
func ActorFromContext(ctx context.Context) Actor {
	if a, ok := ctx.Value(actorKey{}).(Actor); ok {
		return a
	}
	return SystemActor
}
