package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	memoryRepo "github.com/osteria/tillbook/internal/adapter/repository/memory"
)

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"tx-1"}`))
	})

	m := NewIdempotencyMiddleware(memoryRepo.NewIdempotencyStore())
	wrapped := m.Wrap(next)

	first := httptest.NewRequest(http.MethodPost, "/transfers", nil)
	first.Header.Set(IdempotencyKeyHeader, "key-1")
	rec1 := httptest.NewRecorder()
	wrapped.ServeHTTP(rec1, first)

	require.Equal(t, http.StatusCreated, rec1.Code)
	require.Equal(t, 1, calls)

	second := httptest.NewRequest(http.MethodPost, "/transfers", nil)
	second.Header.Set(IdempotencyKeyHeader, "key-1")
	rec2 := httptest.NewRecorder()
	wrapped.ServeHTTP(rec2, second)

	require.Equal(t, 1, calls, "handler must not run twice for the same key")
	require.Equal(t, "true", rec2.Header().Get("X-Idempotency-Replay"))
	require.JSONEq(t, `{"id":"tx-1"}`, rec2.Body.String())
}

func TestIdempotencyMiddleware_DistinctKeys(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{}`))
	})

	m := NewIdempotencyMiddleware(memoryRepo.NewIdempotencyStore())
	wrapped := m.Wrap(next)

	for _, key := range []string{"key-a", "key-b"} {
		req := httptest.NewRequest(http.MethodPost, "/transfers", nil)
		req.Header.Set(IdempotencyKeyHeader, key)
		wrapped.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_SkipsReadsAndMissingKey(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	m := NewIdempotencyMiddleware(memoryRepo.NewIdempotencyStore())
	wrapped := m.Wrap(next)

	get := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	get.Header.Set(IdempotencyKeyHeader, "key-1")
	wrapped.ServeHTTP(httptest.NewRecorder(), get)
	wrapped.ServeHTTP(httptest.NewRecorder(), get)

	post := httptest.NewRequest(http.MethodPost, "/transfers", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), post)
	wrapped.ServeHTTP(httptest.NewRecorder(), post)

	require.Equal(t, 4, calls)
}

func TestIdempotencyMiddleware_ErrorsNotStored(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})

	m := NewIdempotencyMiddleware(memoryRepo.NewIdempotencyStore())
	wrapped := m.Wrap(next)

	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/transfers", nil)
		r.Header.Set(IdempotencyKeyHeader, "key-1")
		return r
	}

	rec1 := httptest.NewRecorder()
	wrapped.ServeHTTP(rec1, req())
	require.Equal(t, http.StatusInternalServerError, rec1.Code)

	// A failed attempt is retryable with the same key.
	rec2 := httptest.NewRecorder()
	wrapped.ServeHTTP(rec2, req())
	require.Equal(t, http.StatusCreated, rec2.Code)
	require.Equal(t, 2, calls)
}
