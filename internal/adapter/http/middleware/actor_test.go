package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osteria/tillbook/internal/domain"
)

func TestActor_FromHeaders(t *testing.T) {
	var got domain.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = domain.ActorFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/shifts/open", nil)
	req.Header.Set(StaffIDHeader, "stf-1")
	req.Header.Set(StaffNameHeader, "Anna")
	req.Header.Set(StaffRoleHeader, "Manager")

	Actor(next).ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "stf-1", got.ID)
	require.Equal(t, "Anna", got.DisplayName)
	require.Equal(t, "Manager", got.Role)
}

func TestActor_NameFallsBackToID(t *testing.T) {
	var got domain.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = domain.ActorFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/shifts/open", nil)
	req.Header.Set(StaffIDHeader, "stf-2")

	Actor(next).ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "stf-2", got.DisplayName)
}

func TestActor_NoHeadersRunsAsSystem(t *testing.T) {
	var got domain.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = domain.ActorFromContext(r.Context())
	})

	Actor(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/accounts", nil))

	require.Equal(t, domain.SystemActor.ID, got.ID)
}
