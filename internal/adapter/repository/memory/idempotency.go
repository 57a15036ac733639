package memory

import (
	"context"
	"sync"
	"time"
)

// IdempotencyStore implements usecase.IdempotencyStore in process memory,
// used in sandbox mode where no Redis is available. Entries expire lazily
// on access.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
}

type idempotencyEntry struct {
	response  []byte
	expiresAt time.Time
}

// NewIdempotencyStore creates a new in-memory IdempotencyStore.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{entries: make(map[string]idempotencyEntry)}
}

// CheckAndSet atomically checks if key exists, sets if not.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if entry, ok := s.entries[key]; ok && entry.expiresAt.After(now) {
		return true, entry.response, nil
	}

	value := response
	if value == nil {
		value = []byte("processing")
	}
	s.entries[key] = idempotencyEntry{response: value, expiresAt: now.Add(ttl)}

	return false, nil, nil
}

// Update updates an existing key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = idempotencyEntry{response: response, expiresAt: time.Now().Add(ttl)}
	return nil
}
