package event

import (
	"context"

	domain "eventhub/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	Delete(ctx context.Context, id string) error
	ListByDate(ctx context.Context) ([]domain.Event, error)
	ListByCoordinator(ctx context.Context, coordinatorID string) ([]domain.Event, error)
}
