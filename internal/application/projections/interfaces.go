package projections

import (
	"context"

	registrationStore "eventhub/internal/adapters/storage/registration"
	domainEvent "eventhub/internal/domain/event"
	domainRegistration "eventhub/internal/domain/registration"
)

// EventStore interface for event queries.
type EventStore interface {
	GetByID(ctx context.Context, id string) (domainEvent.Event, error)
	ListByDate(ctx context.Context) ([]domainEvent.Event, error)
}

// RegistrationStore interface for registration queries.
type RegistrationStore interface {
	ListByAccount(ctx context.Context, accountID string) ([]domainRegistration.Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	ListParticipants(ctx context.Context, eventID string) ([]registrationStore.ParticipantRow, error)
}
