package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	registrationStore "eventhub/internal/adapters/storage/registration"
	"eventhub/internal/domain/event"
	"eventhub/internal/domain/registration"
)

// EventLookup defines the minimal event read needed by registration orchestrators.
type EventLookup interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// RegistrationStoreForOrchestrator defines the store interface needed by
// registration orchestrators.
type RegistrationStoreForOrchestrator interface {
	Create(ctx context.Context, r registration.Registration) error
	Get(ctx context.Context, eventID, accountID string) (registration.Registration, error)
	Delete(ctx context.Context, eventID, accountID string) error
}

var (
	ErrAlreadyRegistered = errors.New("you are already registered for this event")
	ErrNotRegistered     = errors.New("no registration found for this event")
	ErrEventNotFound     = errors.New("event not found")
	ErrCancelWindowOver  = errors.New("cancellation is no longer permitted for this registration")
)

// --- Register ---

// RegisterInput carries input for the register orchestrator.
type RegisterInput struct {
	EventID   string
	AccountID string // From the session, never from user input
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	RegistrationStore RegistrationStoreForOrchestrator
	Events            EventLookup
	Now               func() time.Time
}

// ExecuteRegister records the caller's registration for an event. The store's
// uniqueness constraint is the authority on duplicates; its violation maps to
// ErrAlreadyRegistered rather than a generic failure.
// PRE: Event exists; caller authenticated
// POST: Exactly one registration exists for the (event, account) pair
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (registration.Registration, error) {
	r := registration.Registration{
		EventID:      input.EventID,
		AccountID:    input.AccountID,
		RegisteredAt: deps.Now(),
	}
	if err := r.Validate(); err != nil {
		return registration.Registration{}, err
	}

	if _, err := deps.Events.GetByID(ctx, input.EventID); err != nil {
		return registration.Registration{}, ErrEventNotFound
	}

	if err := deps.RegistrationStore.Create(ctx, r); err != nil {
		if errors.Is(err, registrationStore.ErrDuplicate) {
			slog.Info("registration_event", "event", "duplicate_register", "event_id", input.EventID, "account_id", input.AccountID)
			return registration.Registration{}, ErrAlreadyRegistered
		}
		return registration.Registration{}, err
	}

	slog.Info("registration_event", "event", "registered", "event_id", input.EventID, "account_id", input.AccountID)
	return r, nil
}

// --- Cancel ---

// CancelInput carries input for the cancel orchestrator.
type CancelInput struct {
	EventID   string
	AccountID string // From the session, never from user input
}

// CancelDeps holds dependencies for Cancel.
type CancelDeps struct {
	RegistrationStore RegistrationStoreForOrchestrator
	Now               func() time.Time
}

// ExecuteCancel removes the caller's registration while the eligibility window
// is still open. The window closes exactly two days of elapsed time after
// registering; the check is server-side, not a client convenience.
// PRE: Registration exists; window still open
// POST: The (event, account) pair is removed
func ExecuteCancel(ctx context.Context, input CancelInput, deps CancelDeps) error {
	if input.EventID == "" || input.AccountID == "" {
		return ErrNotRegistered
	}

	r, err := deps.RegistrationStore.Get(ctx, input.EventID, input.AccountID)
	if err != nil {
		return ErrNotRegistered
	}

	if !r.CanCancel(deps.Now()) {
		slog.Info("registration_event", "event", "cancel_denied", "event_id", input.EventID, "account_id", input.AccountID, "registered_at", r.RegisteredAt)
		return ErrCancelWindowOver
	}

	if err := deps.RegistrationStore.Delete(ctx, input.EventID, input.AccountID); err != nil {
		return err
	}

	slog.Info("registration_event", "event", "cancelled", "event_id", input.EventID, "account_id", input.AccountID)
	return nil
}
