package middleware

import (
	"context"
	"net/http"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/infrastructure/logging"
)

// Header names carrying the acting staff identity. The back office sits
// behind the venue network, so identity is asserted, not authenticated.
const (
	StaffIDHeader   = "X-Staff-ID"
	StaffNameHeader = "X-Staff-Name"
	StaffRoleHeader = "X-Staff-Role"
)

// Actor attaches the acting staff member to the request context. Requests
// without headers run as the system actor.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(StaffIDHeader)
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor := domain.Actor{
			ID:          id,
			DisplayName: r.Header.Get(StaffNameHeader),
			Role:        r.Header.Get(StaffRoleHeader),
		}
		if actor.DisplayName == "" {
			actor.DisplayName = id
		}

		ctx := domain.ContextWithActor(r.Context(), actor)
		ctx = context.WithValue(ctx, logging.ActorIDKey, actor.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
