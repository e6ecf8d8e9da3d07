package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventhub/internal/domain/account"
	"eventhub/internal/domain/event"
)

// EventStoreForAuthoring defines the store interface needed by event authoring.
type EventStoreForAuthoring interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	Save(ctx context.Context, e event.Event) error
	Delete(ctx context.Context, id string) error
	ListByCoordinator(ctx context.Context, coordinatorID string) ([]event.Event, error)
}

var (
	ErrNotCoordinator = errors.New("only coordinators may author events")
	ErrNotEventOwner  = errors.New("event belongs to another coordinator")
)

// EventFields carries the user-editable fields of an event. All are required;
// validation runs before any store call.
type EventFields struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
}

// --- Create Event ---

// CreateEventInput carries input for the create event orchestrator.
type CreateEventInput struct {
	Fields EventFields
	// Caller identity comes from the session, never from user input.
	CallerID   string
	CallerRole string
}

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	EventStore EventStoreForAuthoring
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateEvent creates a new event owned by the calling coordinator.
// PRE: Caller is a coordinator; all fields non-empty
// POST: Event persisted with generated ID and the caller as owner
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps CreateEventDeps) (event.Event, error) {
	if input.CallerRole != account.RoleCoordinator {
		return event.Event{}, ErrNotCoordinator
	}

	e := event.Event{
		ID:            deps.GenerateID(),
		Title:         input.Fields.Title,
		Description:   input.Fields.Description,
		Date:          input.Fields.Date,
		Time:          input.Fields.Time,
		Location:      input.Fields.Location,
		CoordinatorID: input.CallerID,
		CreatedAt:     deps.Now(),
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_created", "event_id", e.ID, "coordinator_id", input.CallerID)
	return e, nil
}

// --- Update Event ---

// UpdateEventInput carries input for the update event orchestrator.
type UpdateEventInput struct {
	EventID    string
	Fields     EventFields
	CallerID   string
	CallerRole string
}

// UpdateEventDeps holds dependencies for UpdateEvent.
type UpdateEventDeps struct {
	EventStore EventStoreForAuthoring
}

// ExecuteUpdateEvent replaces the editable fields of an event the caller owns.
// Ownership is enforced here, not merely hidden in a client.
// PRE: Caller is the owning coordinator; all fields non-empty
// POST: Event fields updated; owner and creation time unchanged
func ExecuteUpdateEvent(ctx context.Context, input UpdateEventInput, deps UpdateEventDeps) (event.Event, error) {
	if input.CallerRole != account.RoleCoordinator {
		return event.Event{}, ErrNotCoordinator
	}
	if input.EventID == "" {
		return event.Event{}, errors.New("event ID is required")
	}

	// Validate fields before touching the store with the write.
	candidate := event.Event{
		ID:            input.EventID,
		Title:         input.Fields.Title,
		Description:   input.Fields.Description,
		Date:          input.Fields.Date,
		Time:          input.Fields.Time,
		Location:      input.Fields.Location,
		CoordinatorID: input.CallerID,
	}
	if err := candidate.Validate(); err != nil {
		return event.Event{}, err
	}

	existing, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return event.Event{}, err
	}
	if !existing.IsOwnedBy(input.CallerID) {
		slog.Warn("event_event", "event", "update_denied", "event_id", input.EventID, "caller_id", input.CallerID)
		return event.Event{}, ErrNotEventOwner
	}

	existing.Title = input.Fields.Title
	existing.Description = input.Fields.Description
	existing.Date = input.Fields.Date
	existing.Time = input.Fields.Time
	existing.Location = input.Fields.Location

	if err := deps.EventStore.Save(ctx, existing); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_updated", "event_id", existing.ID, "coordinator_id", input.CallerID)
	return existing, nil
}

// --- Delete Event ---

// DeleteEventInput carries input for the delete event orchestrator.
type DeleteEventInput struct {
	EventID    string
	CallerID   string
	CallerRole string
}

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	EventStore EventStoreForAuthoring
}

// ExecuteDeleteEvent removes an event the caller owns. Registrations are
// removed by the store's cascade. Irreversible; the client confirms first.
// PRE: Caller is the owning coordinator
// POST: Event and its registrations are gone
func ExecuteDeleteEvent(ctx context.Context, input DeleteEventInput, deps DeleteEventDeps) error {
	if input.CallerRole != account.RoleCoordinator {
		return ErrNotCoordinator
	}
	if input.EventID == "" {
		return errors.New("event ID is required")
	}

	existing, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return err
	}
	if !existing.IsOwnedBy(input.CallerID) {
		slog.Warn("event_event", "event", "delete_denied", "event_id", input.EventID, "caller_id", input.CallerID)
		return ErrNotEventOwner
	}

	if err := deps.EventStore.Delete(ctx, input.EventID); err != nil {
		return err
	}

	slog.Info("event_event", "event", "event_deleted", "event_id", input.EventID, "coordinator_id", input.CallerID)
	return nil
}

// --- List Own Events ---

// ListOwnEventsDeps holds dependencies for ListOwnEvents.
type ListOwnEventsDeps struct {
	EventStore EventStoreForAuthoring
}

// ExecuteListOwnEvents returns the caller's events, newest first.
// PRE: Caller is a coordinator
// POST: Returns only events owned by the caller
func ExecuteListOwnEvents(ctx context.Context, callerID, callerRole string, deps ListOwnEventsDeps) ([]event.Event, error) {
	if callerRole != account.RoleCoordinator {
		return nil, ErrNotCoordinator
	}
	return deps.EventStore.ListByCoordinator(ctx, callerID)
}
