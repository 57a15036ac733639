package memory

import (
	"context"
	"time"

	"github.com/osteria/tillbook/internal/domain"
	"github.com/osteria/tillbook/internal/usecase"
)

// OutboxRepository implements usecase.OutboxRepository over the sandbox.
type OutboxRepository struct {
	store *Store
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

// Create creates an outbox event within a transaction.
func (r *OutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	s := stateFor(r.store, tx)

	copied := *event
	s.outbox = append(s.outbox, &copied)
	return nil
}

// GetUnpublished retrieves unpublished events oldest first.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	var events []*domain.OutboxEvent
	r.store.read(func(s *state) {
		for _, event := range s.outbox {
			if event.Published {
				continue
			}
			copied := *event
			events = append(events, &copied)
			if len(events) == limit {
				return
			}
		}
	})
	return events, nil
}

// MarkPublished marks an event as published.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	r.store.write(func(s *state) {
		for _, event := range s.outbox {
			if event.ID == id {
				event.Published = true
				event.PublishedAt = &publishedAt
				return
			}
		}
	})
	return nil
}
