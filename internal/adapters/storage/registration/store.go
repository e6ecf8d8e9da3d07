package registration

import (
	"context"
	"errors"
	"time"

	domain "eventhub/internal/domain/registration"
)

// ErrDuplicate is returned by Create when the (event, account) pair already
// exists. The pair is unique; duplicates are rejected, never merged.
var ErrDuplicate = errors.New("registration already exists")

// ParticipantRow is a denormalized roster row from the event_participants view.
// Derived, not independently persisted.
type ParticipantRow struct {
	EventID      string
	AccountID    string
	Name         string
	Email        string
	Phone        string
	Department   string
	YearOfStudy  string
	College      string
	EventTitle   string
	RegisteredAt time.Time
}

// Store persists Registration state.
type Store interface {
	Create(ctx context.Context, value domain.Registration) error
	Get(ctx context.Context, eventID, accountID string) (domain.Registration, error)
	Delete(ctx context.Context, eventID, accountID string) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	ListParticipants(ctx context.Context, eventID string) ([]ParticipantRow, error)
}
